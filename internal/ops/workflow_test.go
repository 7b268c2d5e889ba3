package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/errors"
	"github.com/hoplol/hoplol/internal/resolve"
)

// TestFullWorkflow exercises the complete bookmark lifecycle:
// create → resolve → get → update → alias add → resolve by alias →
// alias remove → delete → get (not found)
func TestFullWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	require.NoError(t, err)
	defer database.Close()

	// 1. Create
	created, err := Create(database, CreateInput{
		Name:        "Google",
		URL:         "https://www.google.com/search?q=%s",
		Description: "web search",
	})
	require.NoError(t, err)
	id := created.Bookmark.ID
	require.NotEmpty(t, id)
	require.Equal(t, "google", created.Bookmark.Name)

	// 2. Resolve by name, with arguments
	resolver := resolve.NewResolver(db.NewStore(database), nil)
	out, err := resolver.Process("google hello world")
	require.NoError(t, err)
	require.True(t, out.Redirect())
	require.Equal(t, "https://www.google.com/search?q=hello+world", out.URL)

	// 3. Get - resolution bumped the use count
	fetched, err := Get(database, GetInput{ID: id})
	require.NoError(t, err)
	require.Equal(t, 1, fetched.UseCount)

	// 4. Update the URL template
	updated, err := Update(database, UpdateInput{
		ID:  id,
		URL: strPtr("https://www.google.com/search?q=%s&hl=en"),
	})
	require.NoError(t, err)
	require.Equal(t, "https://www.google.com/search?q=%s&hl=en", updated.URL)

	// 5. Add an alias and resolve through it
	alias, err := AddAlias(database, AddAliasInput{BookmarkID: id, Alias: "g"})
	require.NoError(t, err)

	out, err = resolver.Process("g cats")
	require.NoError(t, err)
	require.Equal(t, "https://www.google.com/search?q=cats&hl=en", out.URL)

	// 6. Remove the alias; resolving through it no longer redirects
	_, err = RemoveAlias(database, RemoveAliasInput{AliasID: alias.ID})
	require.NoError(t, err)

	out, err = resolver.Process("g cats")
	require.NoError(t, err)
	require.True(t, out.NoMatch())

	// 7. Delete
	del, err := Delete(database, DeleteInput{ID: id})
	require.NoError(t, err)
	require.True(t, del.Deleted)

	// 8. Get - gone
	_, err = Get(database, GetInput{ID: id})
	var herr *errors.Error
	require.ErrorAs(t, err, &herr)
	require.Equal(t, errors.ErrNotFound, herr.Code)
}
