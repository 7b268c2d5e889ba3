package ops

import (
	"database/sql"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/db"
)

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []bookmark.Bookmark `json:"items"`
	Total int                 `json:"total"`
}

// List returns all bookmarks ordered by use count (most used first), then
// name. The management UI and the API share this ordering.
func List(database *sql.DB) (*ListOutput, error) {
	items, err := db.ListBookmarks(database)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []bookmark.Bookmark{}
	}
	return &ListOutput{Items: items, Total: len(items)}, nil
}
