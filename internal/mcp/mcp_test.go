package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hoplol/hoplol/internal/config"
	"github.com/hoplol/hoplol/internal/db"
)

// testSetup creates a temporary database and handlers for testing.
func testSetup(t *testing.T) *Handlers {
	t.Helper()

	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	return NewHandlers(database, cfg)
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultJSON unmarshals a tool result's text content.
func resultJSON(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(text.Text), &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	return out
}

// mustCreate creates a bookmark through the MCP handler and returns its ID.
func mustCreate(t *testing.T, h *Handlers, name, url string, aliases ...string) string {
	t.Helper()
	args := map[string]any{"name": name, "url": url}
	if len(aliases) > 0 {
		anyAliases := make([]any, len(aliases))
		for i, a := range aliases {
			anyAliases[i] = a
		}
		args["aliases"] = anyAliases
	}
	res, err := h.HandleCreate(context.Background(), makeRequest(args))
	if err != nil {
		t.Fatalf("HandleCreate: %v", err)
	}
	if res.IsError {
		t.Fatalf("HandleCreate returned error result: %v", resultJSON(t, res))
	}
	id, _ := resultJSON(t, res)["id"].(string)
	if id == "" {
		t.Fatal("created bookmark has no id")
	}
	return id
}

func TestHandleResolve_Hit(t *testing.T) {
	h := testSetup(t)
	mustCreate(t, h, "google", "https://www.google.com/search?q=%s", "g")

	res, err := h.HandleResolve(context.Background(), makeRequest(map[string]any{
		"query": "g hello world",
	}))
	if err != nil {
		t.Fatalf("HandleResolve: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %v", resultJSON(t, res))
	}

	out := resultJSON(t, res)
	if out["url"] != "https://www.google.com/search?q=hello+world" {
		t.Errorf("url = %v, want substituted URL", out["url"])
	}
	if out["matched"] != true {
		t.Errorf("matched = %v, want true", out["matched"])
	}
}

func TestHandleResolve_MissWithSuggestions(t *testing.T) {
	h := testSetup(t)
	mustCreate(t, h, "google", "https://www.google.com/search?q=%s")

	res, err := h.HandleResolve(context.Background(), makeRequest(map[string]any{
		"query": "googl something",
	}))
	if err != nil {
		t.Fatalf("HandleResolve: %v", err)
	}

	out := resultJSON(t, res)
	if out["matched"] != false {
		t.Errorf("matched = %v, want false", out["matched"])
	}
	suggestions, ok := out["suggestions"].([]any)
	if !ok || len(suggestions) == 0 {
		t.Fatalf("suggestions = %v, want non-empty list", out["suggestions"])
	}
}

func TestHandleSuggest(t *testing.T) {
	h := testSetup(t)
	mustCreate(t, h, "github", "https://github.com/search?q=%s", "gh")

	res, err := h.HandleSuggest(context.Background(), makeRequest(map[string]any{
		"command": "githb",
	}))
	if err != nil {
		t.Fatalf("HandleSuggest: %v", err)
	}

	out := resultJSON(t, res)
	suggestions, ok := out["suggestions"].([]any)
	if !ok || len(suggestions) == 0 {
		t.Fatalf("suggestions = %v, want non-empty list", out["suggestions"])
	}
	first := suggestions[0].(map[string]any)
	if first["command"] != "github" {
		t.Errorf("command = %v, want github", first["command"])
	}
}

func TestHandleCreate_Collision(t *testing.T) {
	h := testSetup(t)
	mustCreate(t, h, "google", "https://google.com")

	res, err := h.HandleCreate(context.Background(), makeRequest(map[string]any{
		"name": "google",
		"url":  "https://example.com",
	}))
	if err != nil {
		t.Fatalf("HandleCreate: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result for duplicate name")
	}

	out := resultJSON(t, res)
	errObj := out["error"].(map[string]any)
	if errObj["code"] != "COMMAND_TAKEN" {
		t.Errorf("code = %v, want COMMAND_TAKEN", errObj["code"])
	}
}

func TestHandleGet_NotFound(t *testing.T) {
	h := testSetup(t)

	res, err := h.HandleGet(context.Background(), makeRequest(map[string]any{
		"id": "01MISSING",
	}))
	if err != nil {
		t.Fatalf("HandleGet: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result for missing bookmark")
	}

	out := resultJSON(t, res)
	errObj := out["error"].(map[string]any)
	if errObj["code"] != "NOT_FOUND" {
		t.Errorf("code = %v, want NOT_FOUND", errObj["code"])
	}
}

func TestHandleUpdateAndList(t *testing.T) {
	h := testSetup(t)
	id := mustCreate(t, h, "google", "https://google.com")

	res, err := h.HandleUpdate(context.Background(), makeRequest(map[string]any{
		"id":  id,
		"url": "https://www.google.com/search?q=%s",
	}))
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %v", resultJSON(t, res))
	}
	if got := resultJSON(t, res)["url"]; got != "https://www.google.com/search?q=%s" {
		t.Errorf("url = %v, want updated template", got)
	}

	listRes, err := h.HandleList(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleList: %v", err)
	}
	out := resultJSON(t, listRes)
	if out["total"] != float64(1) {
		t.Errorf("total = %v, want 1", out["total"])
	}
}

func TestHandleDelete(t *testing.T) {
	h := testSetup(t)
	id := mustCreate(t, h, "google", "https://google.com")

	res, err := h.HandleDelete(context.Background(), makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("HandleDelete: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %v", resultJSON(t, res))
	}

	getRes, err := h.HandleGet(context.Background(), makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("HandleGet: %v", err)
	}
	if !getRes.IsError {
		t.Fatal("expected error result after delete")
	}
}

func TestHandleAliasAddRemove(t *testing.T) {
	h := testSetup(t)
	id := mustCreate(t, h, "google", "https://www.google.com/search?q=%s")

	res, err := h.HandleAliasAdd(context.Background(), makeRequest(map[string]any{
		"bookmark_id": id,
		"alias":       "g",
	}))
	if err != nil {
		t.Fatalf("HandleAliasAdd: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %v", resultJSON(t, res))
	}

	// The alias resolves immediately (snapshot invalidated by the write)
	resolveRes, err := h.HandleResolve(context.Background(), makeRequest(map[string]any{
		"query": "g cats",
	}))
	if err != nil {
		t.Fatalf("HandleResolve: %v", err)
	}
	if got := resultJSON(t, resolveRes)["url"]; got != "https://www.google.com/search?q=cats" {
		t.Errorf("url = %v, want resolved via alias", got)
	}

	rmRes, err := h.HandleAliasRemove(context.Background(), makeRequest(map[string]any{
		"alias": "g",
	}))
	if err != nil {
		t.Fatalf("HandleAliasRemove: %v", err)
	}
	if rmRes.IsError {
		t.Fatalf("unexpected error result: %v", resultJSON(t, rmRes))
	}
	if got := resultJSON(t, rmRes)["deleted"]; got != true {
		t.Errorf("deleted = %v, want true", got)
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"hoplol_resolve", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v, want [bogus_tool]", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Errorf("len = %d, want %d", len(names), len(toolRegistry))
	}
}
