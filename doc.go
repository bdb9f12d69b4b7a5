// Package namepop tracks historical name-popularity statistics: for each
// calendar year and registered name, the count of births of each gender and
// that name's popularity rank among all names of that gender for the year.
//
// # Pipeline
//
// Data moves through two phases:
//
//  1. Load: an offline batch pass reads one raw count file per year
//     (yobNNNN.txt, rows of name,genderTag,count), aggregates counts per
//     name, assigns dense per-gender popularity ranks, and commits the whole
//     year to SQLite in a single transaction.
//
//  2. Query: a read-only, concurrency-safe API answers lookups over the
//     loaded data (known year range, known names, per-year totals, per-name
//     time series) with per-concern caches in front of the store.
//
// # Usage
//
// Open a database, load data, and query:
//
//	db, err := namepop.Open("data/names.sqlite")
//	if err != nil { ... }
//	defer db.Close()
//
//	q := db.Queries()
//	report, err := q.NameReport("Alex", []int{1990, 1991, 1992})
//
// # Query API
//
// The [Queries] handle returned by [DB.Queries] provides four lookups plus
// the aggregate report:
//
//   - [Queries.KnownYearRange]: inclusive earliest/latest loaded year.
//   - [Queries.KnownNames]: every distinct name, sorted.
//   - [Queries.YearStats]: per-gender total births for a year (zero-valued
//     for unknown years, never an error).
//   - [Queries.NameHistory]: per-year counts and ranks for a name.
//   - [Queries.NameReport]: per-year birth shares, per-gender peak years,
//     and typical-gender classification for a name.
//
// # Caching
//
// The year range and name list are computed once per handle; new data loaded
// into the same file afterward is not visible until a fresh handle is opened.
// Per-year totals sit behind a bounded FIFO cache so repeated queries over a
// working set of years avoid store round-trips.
package namepop
