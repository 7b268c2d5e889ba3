package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/errors"
)

// AddAliasInput contains parameters for the AddAlias operation.
type AddAliasInput struct {
	BookmarkID string
	Alias      string
}

// AddAlias attaches an additional lookup key to an existing bookmark. The
// alias is normalized and must be free in the whole namespace, including
// bookmark names.
func AddAlias(database *sql.DB, input AddAliasInput) (*bookmark.Alias, error) {
	bookmarkID := strings.TrimSpace(input.BookmarkID)
	if bookmarkID == "" {
		return nil, errors.NewInvalidRequest("bookmark_id is required")
	}
	alias, err := normalizeName(input.Alias, "alias")
	if err != nil {
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	a := &bookmark.Alias{
		ID:         id,
		Alias:      alias,
		BookmarkID: bookmarkID,
		CreatedAt:  time.Now().Unix(),
	}

	if err := db.AddAlias(database, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RemoveAliasInput contains parameters for the RemoveAlias operation.
// Address the alias by ID (API) or by its string (CLI); exactly one.
type RemoveAliasInput struct {
	AliasID string
	Alias   string
}

// RemoveAliasOutput contains the result of the RemoveAlias operation.
type RemoveAliasOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// RemoveAlias deletes a single alias. The bookmark itself is untouched.
func RemoveAlias(database *sql.DB, input RemoveAliasInput) (*RemoveAliasOutput, error) {
	id := strings.TrimSpace(input.AliasID)
	if id == "" {
		alias := bookmark.Normalize(input.Alias)
		if alias == "" {
			return nil, errors.NewInvalidRequest("alias id or alias string is required")
		}
		a, err := db.FindAlias(database, alias)
		if err != nil {
			return nil, err
		}
		id = a.ID
	}

	if err := db.DeleteAlias(database, id); err != nil {
		return nil, err
	}
	return &RemoveAliasOutput{Deleted: true, ID: id}, nil
}
