// Package bookmark defines the core data types for the command namespace:
// bookmarks, their aliases, and fuzzy-match suggestions.
package bookmark

// Bookmark is a named URL template with usage statistics.
// The URL may contain the %s marker zero or more times; every occurrence
// is replaced with the query arguments at redirect time.
type Bookmark struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"` // normalized, unique across names and aliases
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	UseCount    int      `json:"use_count"`
	Aliases     []string `json:"aliases,omitempty"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}

// Alias is an additional lookup key pointing to exactly one bookmark.
// Alias strings live in the same namespace as bookmark names.
type Alias struct {
	ID         string `json:"id"`
	Alias      string `json:"alias"` // normalized
	BookmarkID string `json:"bookmark_id"`
	CreatedAt  int64  `json:"created_at"`
}

// Command pairs a lookup string (a bookmark name or an alias) with a
// projection of its owning bookmark. The fuzzy engine scores queries
// against these.
type Command struct {
	Command     string `json:"command"`
	BookmarkID  string `json:"bookmark_id"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	UseCount    int    `json:"use_count"`
}

// Suggestion is a fuzzy match for a command that had no exact match.
type Suggestion struct {
	Command     string `json:"command"` // the name or alias that matched
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Score       int    `json:"score"` // similarity, 0-100
	UseCount    int    `json:"use_count"`
	BookmarkID  string `json:"bookmark_id"`
}
