package namepop

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoYears is returned by NameReport when the requested-years set is
// empty. The minimum requested year bounds the history lookup, so an empty
// set has no meaningful answer and is rejected up front.
var ErrNoYears = errors.New("no years requested")

// YearGenderStats is one gender's share of one year for a reported name.
// TotalBirths counts both genders combined for that year.
type YearGenderStats struct {
	TotalBirths int
	Info        NameInfo
	Ratio       float64
}

// PeakYear records the year a name's count topped out for one gender.
type PeakYear struct {
	Year  int
	Count int
}

// Report is the aggregate answer for one name over a set of requested
// years. Peak slots, TypicalGender, and GenderRatio are nil when the name
// never had a positive count of the relevant gender across the processed
// years.
type Report struct {
	Years         map[int]GenderMap[YearGenderStats]
	Peak          GenderMap[*PeakYear]
	TypicalGender *Gender
	GenderRatio   *float64
}

// NameReport computes name's per-year birth shares, per-gender peak years,
// and overall typical-gender classification across the requested years.
//
// Requested years are deduplicated and processed in ascending order. Years
// with no record for the name contribute nothing and produce no per-year
// entry. Peaks keep the entry with the strictly larger count, so the first
// year seen wins ties. When male and female totals tie, the typical gender
// resolves to male.
//
// The name must already be normalized (see NormalizeName).
func (q *Queries) NameReport(name string, years []int) (*Report, error) {
	if len(years) == 0 {
		return nil, ErrNoYears
	}
	requested := slices.Clone(years)
	slices.Sort(requested)
	requested = slices.Compact(requested)

	// One lookup from the minimum year covers every requested year.
	history, err := q.NameHistory(name, requested[0])
	if err != nil {
		return nil, fmt.Errorf("name report %q: %w", name, err)
	}

	report := &Report{Years: make(map[int]GenderMap[YearGenderStats], len(requested))}
	var totals GenderMap[int]
	var peak GenderMap[*PeakYear]

	for _, year := range requested {
		info, ok := history[year]
		if !ok {
			continue
		}
		stats, err := q.YearStats(year)
		if err != nil {
			return nil, fmt.Errorf("name report %q: %w", name, err)
		}
		totalBirths := Sum(stats)

		report.Years[year] = MapItems(info, func(g Gender, gi NameInfo) YearGenderStats {
			totals.Set(g, totals.Get(g)+gi.Count)
			if current := peak.Get(g); gi.Count > 0 && (current == nil || gi.Count > current.Count) {
				peak.Set(g, &PeakYear{Year: year, Count: gi.Count})
			}
			var ratio float64
			if totalBirths > 0 {
				ratio = float64(gi.Count) / float64(totalBirths)
			}
			return YearGenderStats{TotalBirths: totalBirths, Info: gi, Ratio: ratio}
		})
	}

	report.Peak = peak
	if grandTotal := Sum(totals); grandTotal > 0 {
		typical := Male
		if totals.Female > totals.Male {
			typical = Female
		}
		ratio := float64(totals.Get(typical)) / float64(grandTotal)
		report.TypicalGender = &typical
		report.GenderRatio = &ratio
	}
	return report, nil
}
