// Package ingest is the offline batch loader: it parses raw yearly count
// files, validates them, computes dense per-gender popularity ranks, and
// commits each year to the store as one transaction.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jward/namepop"
	"github.com/jward/namepop/internal/store"
)

// Fatal ingestion errors. Any of these aborts the whole year's load with no
// partial count or rank data persisted.
var (
	ErrMalformedRow   = errors.New("malformed row")
	ErrDuplicateEntry = errors.New("duplicate gender entry")
	ErrNegativeCount  = errors.New("negative count")
)

// Summary describes one successfully loaded year.
type Summary struct {
	Year         int
	Names        int
	TotalMales   int
	TotalFemales int
}

// tally accumulates both gender counts for one name while parsing a year.
type tally struct {
	counts namepop.GenderMap[int]
	seen   namepop.GenderMap[bool]
}

// LoadYearFile parses and loads one raw year file into s.
func LoadYearFile(s *store.Store, year int, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("load year %d: %w", year, err)
	}
	defer f.Close()
	return LoadYear(s, year, f)
}

// LoadYear parses one year's rows from r, validates them, ranks the names,
// and commits the year. Parsing completes before anything touches the
// store, so a fatal row error leaves the database untouched.
func LoadYear(s *store.Store, year int, r io.Reader) (Summary, error) {
	tallies, err := readYear(r)
	if err != nil {
		return Summary{}, fmt.Errorf("load year %d: %w", year, err)
	}

	totals := store.YearTotals{Year: year}
	for _, t := range tallies {
		totals.TotalMales += t.counts.Male
		totals.TotalFemales += t.counts.Female
	}

	records := buildRecords(tallies)
	if err := s.CommitYear(totals, records); err != nil {
		return Summary{}, fmt.Errorf("load year %d: %w", year, err)
	}
	return Summary{
		Year:         year,
		Names:        len(records),
		TotalMales:   totals.TotalMales,
		TotalFemales: totals.TotalFemales,
	}, nil
}

// readYear parses comma-separated name,genderTag,count rows, accumulating
// one tally per normalized name. Each name may appear at most once per
// gender; counts must be non-negative base-10 integers.
func readYear(r io.Reader) (map[string]*tally, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	tallies := make(map[string]*tally)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: %v", row, ErrMalformedRow, err)
		}

		name := namepop.NormalizeName(strings.TrimSpace(record[0]))
		if name == "" {
			return nil, fmt.Errorf("row %d: %w: empty name", row, ErrMalformedRow)
		}
		gender, err := namepop.ParseGender(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: %v", row, ErrMalformedRow, err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: count %q", row, ErrMalformedRow, record[2])
		}
		if count < 0 {
			return nil, fmt.Errorf("row %d: %w: %d for %q", row, ErrNegativeCount, count, name)
		}

		t, ok := tallies[name]
		if !ok {
			t = &tally{}
			tallies[name] = t
		}
		if t.seen.Get(gender) {
			return nil, fmt.Errorf("row %d: %w: %q already has a %s count", row, ErrDuplicateEntry, name, gender)
		}
		t.seen.Set(gender, true)
		t.counts.Set(gender, count)
	}
	return tallies, nil
}

// buildRecords assigns dense per-gender ranks and produces one record per
// name that appeared in the source.
func buildRecords(tallies map[string]*tally) []store.NameRecord {
	names := make([]string, 0, len(tallies))
	for name := range tallies {
		names = append(names, name)
	}
	sort.Strings(names)

	ranks := namepop.NewGenderMap(
		rankNames(names, tallies, namepop.Male),
		rankNames(names, tallies, namepop.Female),
	)

	records := make([]store.NameRecord, 0, len(names))
	for _, name := range names {
		t := tallies[name]
		records = append(records, store.NameRecord{
			Name:        name,
			MaleCount:   t.counts.Male,
			FemaleCount: t.counts.Female,
			MaleRank:    lookupRank(ranks.Male, name),
			FemaleRank:  lookupRank(ranks.Female, name),
		})
	}
	return records
}

// rankNames assigns dense ranks 1..K over the names with a positive count
// of gender g, ordered by count descending then name ascending. The
// secondary alphabetical order makes ranking deterministic under count
// ties. Names with a zero count receive no rank.
func rankNames(names []string, tallies map[string]*tally, g namepop.Gender) map[string]int {
	ranked := make([]string, 0, len(names))
	for _, name := range names {
		if tallies[name].counts.Get(g) > 0 {
			ranked = append(ranked, name)
		}
	}
	// names is already sorted alphabetically, and sort.SliceStable keeps
	// that order within equal counts.
	sort.SliceStable(ranked, func(i, j int) bool {
		return tallies[ranked[i]].counts.Get(g) > tallies[ranked[j]].counts.Get(g)
	})

	ranks := make(map[string]int, len(ranked))
	for i, name := range ranked {
		ranks[name] = i + 1
	}
	return ranks
}

// lookupRank returns a pointer to the assigned rank, or nil when the name
// was not ranked for the gender.
func lookupRank(ranks map[string]int, name string) *int {
	rank, ok := ranks[name]
	if !ok {
		return nil
	}
	return &rank
}
