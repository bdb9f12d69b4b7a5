package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the three name-statistics
// tables. Writes go through CommitYear only; everything else is read-only.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the three tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// name_counts deliberately has no unique (year, name_id) index: it doubles
// the database size for an invariant the year-batch loader already enforces.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS names (
  id              INTEGER PRIMARY KEY AUTOINCREMENT,
  name            TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS years (
  year            INTEGER PRIMARY KEY,
  total_males     INTEGER NOT NULL,
  total_females   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS name_counts (
  year            INTEGER NOT NULL REFERENCES years(year),
  name_id         INTEGER NOT NULL REFERENCES names(id),
  male_count      INTEGER NOT NULL,
  female_count    INTEGER NOT NULL,
  male_rank       INTEGER,
  female_rank     INTEGER
);

CREATE INDEX IF NOT EXISTS idx_name_counts_name ON name_counts(name_id);
CREATE INDEX IF NOT EXISTS idx_name_counts_year ON name_counts(year);
`
