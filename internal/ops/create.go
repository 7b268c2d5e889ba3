package ops

import (
	"database/sql"
	"time"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/errors"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Name        string   // required, normalized before storage
	URL         string   // required, may contain %s markers
	Description string   // optional
	Aliases     []string // optional, normalized before storage
}

// CreateOutput contains the result of the Create operation.
type CreateOutput struct {
	Bookmark bookmark.Bookmark `json:"bookmark"`
}

// Create stores a new bookmark with its aliases. The name and every alias
// are normalized and checked against the whole command namespace inside one
// transaction, so a partial create never survives a collision.
func Create(database *sql.DB, input CreateInput) (*CreateOutput, error) {
	name, err := normalizeName(input.Name, "name")
	if err != nil {
		return nil, err
	}
	if err := validateURL(input.URL); err != nil {
		return nil, err
	}
	aliases, err := normalizeAliases(input.Aliases, name)
	if err != nil {
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	now := time.Now().Unix()

	b := &bookmark.Bookmark{
		ID:          id,
		Name:        name,
		URL:         input.URL,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	aliasRows := make([]bookmark.Alias, len(aliases))
	for i, a := range aliases {
		aliasID, err := generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		aliasRows[i] = bookmark.Alias{
			ID:         aliasID,
			Alias:      a,
			BookmarkID: id,
			CreatedAt:  now,
		}
	}

	if err := db.CreateBookmark(database, b, aliasRows); err != nil {
		return nil, err
	}

	b.Aliases = aliases
	return &CreateOutput{Bookmark: *b}, nil
}
