package db

import (
	"database/sql"

	"github.com/hoplol/hoplol/internal/bookmark"
)

// Store adapts the query layer to the interface the resolution pipeline
// consumes (resolve.Store).
type Store struct {
	db *sql.DB
}

// NewStore wraps a database handle for the resolver.
func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

// FindByCommand resolves a normalized command string. A miss is (nil, nil).
func (s *Store) FindByCommand(command string) (*bookmark.Bookmark, error) {
	return FindByCommand(s.db, command)
}

// ListCommands returns the full command namespace with bookmark projections.
func (s *Store) ListCommands() ([]bookmark.Command, error) {
	return ListCommands(s.db)
}

// IncrementUseCount durably adds 1 to a bookmark's use count.
func (s *Store) IncrementUseCount(bookmarkID string) error {
	return IncrementUseCount(s.db, bookmarkID)
}
