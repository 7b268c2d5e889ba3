// Package seed populates a fresh database with a starter set of bookmarks
// so a new install resolves something useful on day one.
package seed

import (
	"database/sql"

	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/errors"
	"github.com/hoplol/hoplol/internal/ops"
)

// Entry describes one starter bookmark.
type Entry struct {
	Name        string
	URL         string
	Description string
	Aliases     []string
}

// Defaults returns the starter bookmark set. The hoplol entry points back at
// the management UI so "hoplol" is itself a command.
func Defaults() []Entry {
	return []Entry{
		{"hoplol", "http://localhost:8080/manage", "Hoplol bookmark management", []string{"manage", "list"}},
		{"google", "https://www.google.com/search?q=%s", "Google search", []string{"g"}},
		{"github", "https://github.com/search?q=%s", "GitHub search", []string{"gh"}},
		{"youtube", "https://www.youtube.com/results?search_query=%s", "YouTube search", []string{"yt"}},
		{"wikipedia", "https://en.wikipedia.org/wiki/Special:Search?search=%s", "Wikipedia search", []string{"wiki", "w"}},
		{"stackoverflow", "https://stackoverflow.com/search?q=%s", "Stack Overflow search", []string{"so", "stack"}},
		{"reddit", "https://www.reddit.com/search?q=%s", "Reddit search", []string{"r"}},
		{"twitter", "https://twitter.com/search?q=%s", "Twitter search", []string{"tw"}},
		{"amazon", "https://www.amazon.com/s?k=%s", "Amazon product search", []string{"amz"}},
		{"chatgpt", "https://chat.openai.com/", "ChatGPT by OpenAI", []string{"gpt", "openai"}},
		{"claude", "https://claude.ai/", "Claude by Anthropic", []string{"anthropic"}},
		{"gemini", "https://gemini.google.com/", "Gemini by Google", []string{"bard"}},
	}
}

// Run inserts the default bookmarks. Entries whose name or aliases are
// already taken are skipped rather than failing the whole run, so re-seeding
// an existing database is safe. Returns the number of bookmarks created.
func Run(database *sql.DB) (int, error) {
	created := 0
	for _, e := range Defaults() {
		_, err := ops.Create(database, ops.CreateInput{
			Name:        e.Name,
			URL:         e.URL,
			Description: e.Description,
			Aliases:     e.Aliases,
		})
		if err != nil {
			if errors.Is(err, errors.ErrCommandTaken) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// EnsureSeeded seeds the database only when it holds no bookmarks at all.
// Called on startup so a first run works out of the box.
func EnsureSeeded(database *sql.DB) (int, error) {
	count, err := db.CountBookmarks(database)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return Run(database)
}
