package ops

import (
	"database/sql"
	"strings"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/errors"
)

// UpdateInput contains parameters for the Update operation.
// Nil fields are left unchanged.
type UpdateInput struct {
	ID          string
	Name        *string
	URL         *string
	Description *string
}

// Update modifies a bookmark's name, URL, or description. A renamed
// bookmark keeps its aliases; the new name is collision-checked against the
// namespace inside the db transaction.
func Update(database *sql.DB, input UpdateInput) (*bookmark.Bookmark, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	if input.Name == nil && input.URL == nil && input.Description == nil {
		return nil, errors.NewInvalidRequest("nothing to update")
	}

	current, err := db.GetByID(database, id)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if input.Name != nil {
		name, err = normalizeName(*input.Name, "name")
		if err != nil {
			return nil, err
		}
	}

	urlTemplate := current.URL
	if input.URL != nil {
		if err := validateURL(*input.URL); err != nil {
			return nil, err
		}
		urlTemplate = *input.URL
	}

	description := current.Description
	if input.Description != nil {
		description = *input.Description
	}

	if err := db.UpdateBookmark(database, id, name, urlTemplate, description); err != nil {
		return nil, err
	}

	return db.GetByID(database, id)
}
