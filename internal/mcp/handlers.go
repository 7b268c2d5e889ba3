package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/config"
	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/errors"
	"github.com/hoplol/hoplol/internal/ops"
	"github.com/hoplol/hoplol/internal/resolve"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	resolver *resolve.Resolver
	matcher  *resolve.Matcher
}

// NewHandlers creates a new Handlers instance with its own resolution
// pipeline over the shared database.
func NewHandlers(database *sql.DB, cfg *config.Config) *Handlers {
	store := db.NewStore(database)
	var matcher *resolve.Matcher
	if !cfg.DisableFuzzy {
		matcher = resolve.NewMatcher(store, cfg.FuzzyThreshold, cfg.FuzzyLimit, cfg.FuzzyCacheTTL())
	}
	return &Handlers{
		db:       database,
		cfg:      cfg,
		resolver: resolve.NewResolver(store, matcher),
		matcher:  matcher,
	}
}

// invalidate drops the fuzzy snapshot after a write.
func (h *Handlers) invalidate() {
	if h.matcher != nil {
		h.matcher.Invalidate()
	}
}

// Request types for each tool

// ResolveRequest represents the arguments for hoplol_resolve.
type ResolveRequest struct {
	Query string `json:"query"`
}

// SuggestRequest represents the arguments for hoplol_suggest.
type SuggestRequest struct {
	Command string `json:"command"`
}

// CreateRequest represents the arguments for bookmark_create.
type CreateRequest struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

// GetRequest represents the arguments for bookmark_get.
type GetRequest struct {
	ID string `json:"id"`
}

// UpdateRequest represents the arguments for bookmark_update.
type UpdateRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DeleteRequest represents the arguments for bookmark_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// AliasAddRequest represents the arguments for alias_add.
type AliasAddRequest struct {
	BookmarkID string `json:"bookmark_id"`
	Alias      string `json:"alias"`
}

// AliasRemoveRequest represents the arguments for alias_remove.
type AliasRemoveRequest struct {
	ID    string `json:"id,omitempty"`
	Alias string `json:"alias,omitempty"`
}

// Handler implementations

// HandleResolve handles the hoplol_resolve tool call.
func (h *Handlers) HandleResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ResolveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	outcome, err := h.resolver.Process(input.Query)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"url":         outcome.URL,
		"suggestions": outcome.Suggestions,
		"matched":     outcome.Redirect(),
	})
}

// HandleSuggest handles the hoplol_suggest tool call.
func (h *Handlers) HandleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SuggestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	suggestions := []bookmark.Suggestion{}
	if h.matcher != nil {
		suggestions = h.matcher.Suggest(input.Command)
	}
	if suggestions == nil {
		suggestions = []bookmark.Suggestion{}
	}

	return successResult(map[string]any{"suggestions": suggestions})
}

// HandleCreate handles the bookmark_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Create(h.db, ops.CreateInput{
		Name:        input.Name,
		URL:         input.URL,
		Description: input.Description,
		Aliases:     input.Aliases,
	})
	if err != nil {
		return errorResult(err), nil
	}

	h.invalidate()
	return successResult(result.Bookmark)
}

// HandleGet handles the bookmark_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	b, err := ops.Get(h.db, ops.GetInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(b)
}

// HandleList handles the bookmark_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.List(h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the bookmark_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	b, err := ops.Update(h.db, ops.UpdateInput{
		ID:          input.ID,
		Name:        input.Name,
		URL:         input.URL,
		Description: input.Description,
	})
	if err != nil {
		return errorResult(err), nil
	}

	h.invalidate()
	return successResult(b)
}

// HandleDelete handles the bookmark_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.db, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	h.invalidate()
	return successResult(result)
}

// HandleAliasAdd handles the alias_add tool call.
func (h *Handlers) HandleAliasAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AliasAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	a, err := ops.AddAlias(h.db, ops.AddAliasInput{
		BookmarkID: input.BookmarkID,
		Alias:      input.Alias,
	})
	if err != nil {
		return errorResult(err), nil
	}

	h.invalidate()
	return successResult(a)
}

// HandleAliasRemove handles the alias_remove tool call.
func (h *Handlers) HandleAliasRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AliasRemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RemoveAlias(h.db, ops.RemoveAliasInput{
		AliasID: input.ID,
		Alias:   input.Alias,
	})
	if err != nil {
		return errorResult(err), nil
	}

	h.invalidate()
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if herr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    herr.Code,
			"message": herr.Message,
			"status":  herr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if herr.Code != errors.ErrInternal && herr.Details != nil {
			errorObj["details"] = herr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
