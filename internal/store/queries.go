package store

import (
	"database/sql"
	"fmt"
)

// YearBounds returns the earliest and latest loaded year. ok is false when
// no years have been loaded yet.
func (s *Store) YearBounds() (earliest, latest int, ok bool, err error) {
	var minYear, maxYear sql.NullInt64
	err = s.db.QueryRow("SELECT MIN(year), MAX(year) FROM years").Scan(&minYear, &maxYear)
	if err != nil {
		return 0, 0, false, fmt.Errorf("year bounds: %w", err)
	}
	if !minYear.Valid || !maxYear.Valid {
		return 0, 0, false, nil
	}
	return int(minYear.Int64), int(maxYear.Int64), true, nil
}

// DistinctNames returns every name in the dictionary, sorted by name.
func (s *Store) DistinctNames() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT name FROM names ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("distinct names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("distinct names: scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("distinct names: rows: %w", err)
	}
	return names, nil
}

// YearTotals returns the totals row for year, or nil when the year has not
// been loaded. Absence is data here, not an error.
func (s *Store) YearTotals(year int) (*YearTotals, error) {
	t := &YearTotals{Year: year}
	err := s.db.QueryRow(
		"SELECT total_males, total_females FROM years WHERE year = ?", year,
	).Scan(&t.TotalMales, &t.TotalFemales)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("year totals %d: %w", year, err)
	}
	return t, nil
}

// NameHistory returns all count rows for name with year >= startYear,
// ordered by year ascending. Years with no row for the name are simply
// absent. Stored ranks must be positive where present; anything else is a
// data-integrity bug and surfaces as an error.
func (s *Store) NameHistory(name string, startYear int) ([]NameCountRow, error) {
	rows, err := s.db.Query(
		`SELECT name_counts.year, male_count, female_count, male_rank, female_rank
		 FROM name_counts
		 INNER JOIN names ON name_counts.name_id = names.id
		 WHERE names.name = ? AND name_counts.year >= ?
		 ORDER BY name_counts.year`,
		name, startYear,
	)
	if err != nil {
		return nil, fmt.Errorf("name history %q: %w", name, err)
	}
	defer rows.Close()

	var history []NameCountRow
	for rows.Next() {
		var row NameCountRow
		var maleRank, femaleRank sql.NullInt64
		if err := rows.Scan(&row.Year, &row.MaleCount, &row.FemaleCount, &maleRank, &femaleRank); err != nil {
			return nil, fmt.Errorf("name history %q: scan: %w", name, err)
		}
		if row.MaleRank, err = rankValue(maleRank); err != nil {
			return nil, fmt.Errorf("name history %q year %d: male rank: %w", name, row.Year, err)
		}
		if row.FemaleRank, err = rankValue(femaleRank); err != nil {
			return nil, fmt.Errorf("name history %q year %d: female rank: %w", name, row.Year, err)
		}
		history = append(history, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("name history %q: rows: %w", name, err)
	}
	return history, nil
}

// rankValue maps a stored rank to its in-memory form: NULL becomes 0, and a
// non-positive stored value is rejected rather than coerced.
func rankValue(rank sql.NullInt64) (int, error) {
	if !rank.Valid {
		return 0, nil
	}
	if rank.Int64 <= 0 {
		return 0, fmt.Errorf("stored rank %d is not positive", rank.Int64)
	}
	return int(rank.Int64), nil
}
