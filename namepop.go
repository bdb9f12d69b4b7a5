package namepop

import (
	"fmt"

	"github.com/jward/namepop/internal/store"
)

// DB owns the SQLite store handle for one names database. It is constructed
// once at process start and passed explicitly to whatever needs it; there is
// no ambient global handle.
type DB struct {
	store   *store.Store
	queries *Queries
}

// Open opens (creating and migrating if needed) the names database at path.
func Open(path string) (*DB, error) {
	s, err := store.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("namepop: open store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("namepop: migrate: %w", err)
	}
	return &DB{store: s, queries: NewQueries(s)}, nil
}

// Close releases the database connection.
func (d *DB) Close() error {
	return d.store.Close()
}

// Store returns the underlying store for the batch loader.
func (d *DB) Store() *store.Store {
	return d.store
}

// Queries returns the read-side API. The handle is shared and safe for
// concurrent use.
func (d *DB) Queries() *Queries {
	return d.queries
}
