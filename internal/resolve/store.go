// Package resolve implements the query resolution pipeline: parsing a raw
// browser query into command and arguments, resolving the command against
// the bookmark namespace, substituting arguments into the URL template, and
// falling back to fuzzy suggestions on a miss.
package resolve

import "github.com/hoplol/hoplol/internal/bookmark"

// Store is the storage surface the resolution pipeline needs. The database
// layer implements it; tests substitute fakes.
type Store interface {
	// FindByCommand resolves a normalized command string to its bookmark.
	// A miss is (nil, nil), not an error.
	FindByCommand(command string) (*bookmark.Bookmark, error)

	// ListCommands returns every lookup string in the namespace paired with
	// its owning bookmark's projection.
	ListCommands() ([]bookmark.Command, error)

	// IncrementUseCount durably adds exactly 1 to a bookmark's use count.
	IncrementUseCount(bookmarkID string) error
}
