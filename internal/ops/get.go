package ops

import (
	"database/sql"
	"strings"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/errors"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	ID string
}

// Get retrieves a bookmark by ID, with its aliases.
func Get(database *sql.DB, input GetInput) (*bookmark.Bookmark, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	return db.GetByID(database, id)
}
