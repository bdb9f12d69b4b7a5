package store

import (
	"database/sql"
	"fmt"
)

// CommitYear writes one year's aggregate totals and all of its ranked name
// records in a single transaction: either the whole year becomes visible or
// none of it does. Name dictionary entries are created lazily for names
// appearing for the first time across any year.
//
// The years primary key makes re-loading an already committed year fail and
// roll back, so a year can never be duplicated by running the loader twice.
func (s *Store) CommitYear(totals YearTotals, records []NameRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("commit year %d: begin: %w", totals.Year, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO years (year, total_males, total_females) VALUES (?, ?, ?)",
		totals.Year, totals.TotalMales, totals.TotalFemales,
	); err != nil {
		return fmt.Errorf("commit year %d: insert totals: %w", totals.Year, err)
	}

	insertName, err := tx.Prepare("INSERT OR IGNORE INTO names (name) VALUES (?)")
	if err != nil {
		return fmt.Errorf("commit year %d: prepare name insert: %w", totals.Year, err)
	}
	defer insertName.Close()

	selectName, err := tx.Prepare("SELECT id FROM names WHERE name = ?")
	if err != nil {
		return fmt.Errorf("commit year %d: prepare name select: %w", totals.Year, err)
	}
	defer selectName.Close()

	insertCount, err := tx.Prepare(
		`INSERT INTO name_counts (year, name_id, male_count, female_count, male_rank, female_rank)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("commit year %d: prepare count insert: %w", totals.Year, err)
	}
	defer insertCount.Close()

	for _, rec := range records {
		nameID, err := ensureName(insertName, selectName, rec.Name)
		if err != nil {
			return fmt.Errorf("commit year %d: name %q: %w", totals.Year, rec.Name, err)
		}
		if _, err := insertCount.Exec(
			totals.Year, nameID, rec.MaleCount, rec.FemaleCount,
			nullableRank(rec.MaleRank), nullableRank(rec.FemaleRank),
		); err != nil {
			return fmt.Errorf("commit year %d: insert counts for %q: %w", totals.Year, rec.Name, err)
		}
	}

	return tx.Commit()
}

// ensureName returns the stable surrogate id for name, creating the
// dictionary entry on first appearance.
func ensureName(insert, sel *sql.Stmt, name string) (int64, error) {
	if _, err := insert.Exec(name); err != nil {
		return 0, fmt.Errorf("insert name: %w", err)
	}
	var id int64
	if err := sel.QueryRow(name).Scan(&id); err != nil {
		return 0, fmt.Errorf("select name id: %w", err)
	}
	return id, nil
}

// nullableRank converts a *int rank to its SQL representation (NULL when
// the name had no births of that gender).
func nullableRank(rank *int) any {
	if rank == nil {
		return nil
	}
	return *rank
}
