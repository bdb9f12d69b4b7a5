package namepop

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/jward/namepop/internal/cache"
	"github.com/jward/namepop/internal/store"
)

// ErrEmptyDatabase is returned by KnownYearRange when no years have been
// loaded yet.
var ErrEmptyDatabase = errors.New("no years loaded")

// yearStatsCacheSize bounds the per-year totals cache. The full dataset is a
// century and change of years, so in practice everything fits; the bound
// keeps an adversarial stream of distinct unknown years from growing memory.
const yearStatsCacheSize = 4096

// NameInfo is one gender's standing for a name in a single year. A zero
// Rank means the name had no births of that gender that year (stored as
// NULL); assigned ranks are always positive.
type NameInfo struct {
	Rank  int
	Count int
}

// YearRange is the inclusive span of loaded years.
type YearRange struct {
	Earliest int
	Latest   int
}

// Queries is the read-side API over the store. It owns all query caches and
// is safe for concurrent use by any number of callers.
//
// The year range and name list are computed once per handle. Years are
// append-only, so the only way either goes stale is loading new data into
// the same database from the same process; after that, open a fresh handle.
type Queries struct {
	store *store.Store

	yearRange func() (YearRange, error)
	names     func() ([]string, error)
	yearStats *cache.FIFO[int, GenderMap[int]]
}

// NewQueries builds a query handle over s.
func NewQueries(s *store.Store) *Queries {
	q := &Queries{
		store:     s,
		yearStats: cache.NewFIFO[int, GenderMap[int]](yearStatsCacheSize),
	}
	q.yearRange = sync.OnceValues(q.loadYearRange)
	q.names = sync.OnceValues(q.loadNames)
	return q
}

// KnownYearRange returns the inclusive [earliest, latest] loaded years,
// or ErrEmptyDatabase when nothing has been loaded.
func (q *Queries) KnownYearRange() (YearRange, error) {
	return q.yearRange()
}

func (q *Queries) loadYearRange() (YearRange, error) {
	earliest, latest, ok, err := q.store.YearBounds()
	if err != nil {
		return YearRange{}, fmt.Errorf("known year range: %w", err)
	}
	if !ok {
		return YearRange{}, ErrEmptyDatabase
	}
	return YearRange{Earliest: earliest, Latest: latest}, nil
}

// KnownNames returns every distinct name, sorted. The returned slice is an
// independent copy on every call; mutating it never affects cached state.
func (q *Queries) KnownNames() ([]string, error) {
	names, err := q.names()
	if err != nil {
		return nil, err
	}
	return slices.Clone(names), nil
}

func (q *Queries) loadNames() ([]string, error) {
	names, err := q.store.DistinctNames()
	if err != nil {
		return nil, fmt.Errorf("known names: %w", err)
	}
	return names, nil
}

// YearStats returns the per-gender total births for year. Unknown years
// resolve to zero totals, never an error. This is the hottest read path
// (once per requested year per report), so results go through the bounded
// FIFO cache.
func (q *Queries) YearStats(year int) (GenderMap[int], error) {
	return q.yearStats.GetOrCompute(year, func() (GenderMap[int], error) {
		totals, err := q.store.YearTotals(year)
		if err != nil {
			return GenderMap[int]{}, fmt.Errorf("year stats %d: %w", year, err)
		}
		if totals == nil {
			return GenderMap[int]{}, nil
		}
		return NewGenderMap(totals.TotalMales, totals.TotalFemales), nil
	})
}

// NameHistory returns name's per-year counts and ranks for every year >=
// startYear, keyed by year. Years with no record for the name are absent
// from the map: absence means zero births and no rank, not an error. The
// name must already be normalized (see NormalizeName).
func (q *Queries) NameHistory(name string, startYear int) (map[int]GenderMap[NameInfo], error) {
	rows, err := q.store.NameHistory(name, startYear)
	if err != nil {
		return nil, err
	}
	history := make(map[int]GenderMap[NameInfo], len(rows))
	for _, row := range rows {
		history[row.Year] = NewGenderMap(
			NameInfo{Rank: row.MaleRank, Count: row.MaleCount},
			NameInfo{Rank: row.FemaleRank, Count: row.FemaleCount},
		)
	}
	return history, nil
}
