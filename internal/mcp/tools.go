package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var resolveToolDef = mcp.NewTool("hoplol_resolve",
	mcp.WithDescription("Resolve a bang-style query (e.g. \"g golang generics\") to its target URL. A hit bumps the bookmark's use count; a miss returns fuzzy suggestions instead."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Raw query: a command followed by optional arguments"),
	),
)

var suggestToolDef = mcp.NewTool("hoplol_suggest",
	mcp.WithDescription("Return fuzzy command suggestions for a misspelled command without resolving or counting anything."),
	mcp.WithString("command",
		mcp.Required(),
		mcp.Description("The (possibly misspelled) command to match against known names and aliases"),
	),
)

var createToolDef = mcp.NewTool("bookmark_create",
	mcp.WithDescription("Create a bookmark. The name and aliases share one command namespace; collisions fail the whole create."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Command name, a single word (normalized to lowercase)"),
	),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("Target URL template; %s marks where query arguments are substituted"),
	),
	mcp.WithString("description",
		mcp.Description("Optional human-readable description"),
	),
	mcp.WithArray("aliases",
		mcp.Description("Optional alternative command names"),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var getToolDef = mcp.NewTool("bookmark_get",
	mcp.WithDescription("Fetch a bookmark by ID, including its aliases and use count."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Bookmark ID (ULID)"),
	),
)

var listToolDef = mcp.NewTool("bookmark_list",
	mcp.WithDescription("List all bookmarks ordered by use count, then name."),
)

var updateToolDef = mcp.NewTool("bookmark_update",
	mcp.WithDescription("Update a bookmark's name, URL template, or description. Omitted fields are left unchanged; renames keep the aliases."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Bookmark ID (ULID)"),
	),
	mcp.WithString("name",
		mcp.Description("New command name"),
	),
	mcp.WithString("url",
		mcp.Description("New URL template"),
	),
	mcp.WithString("description",
		mcp.Description("New description"),
	),
)

var deleteToolDef = mcp.NewTool("bookmark_delete",
	mcp.WithDescription("Delete a bookmark and all of its aliases."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Bookmark ID (ULID)"),
	),
)

var aliasAddToolDef = mcp.NewTool("alias_add",
	mcp.WithDescription("Attach an additional command name to an existing bookmark."),
	mcp.WithString("bookmark_id",
		mcp.Required(),
		mcp.Description("Bookmark ID (ULID)"),
	),
	mcp.WithString("alias",
		mcp.Required(),
		mcp.Description("Alias to add, a single word (normalized to lowercase)"),
	),
)

var aliasRemoveToolDef = mcp.NewTool("alias_remove",
	mcp.WithDescription("Remove an alias by ID or by its string. The bookmark itself is untouched."),
	mcp.WithString("id",
		mcp.Description("Alias ID (ULID)"),
	),
	mcp.WithString("alias",
		mcp.Description("Alias string, used when the ID is not known"),
	),
)
