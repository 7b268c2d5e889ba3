package web

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/config"
	"github.com/hoplol/hoplol/internal/errors"
	"github.com/hoplol/hoplol/internal/ops"
	"github.com/hoplol/hoplol/internal/resolve"
)

// Handlers contains HTTP route handlers for the web surface.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
	resolver *resolve.Resolver
	matcher  *resolve.Matcher
}

// invalidate drops the fuzzy matcher's command snapshot after a write so the
// next miss sees fresh data.
func (h *Handlers) invalidate() {
	if h.matcher != nil {
		h.matcher.Invalidate()
	}
}

// HandleResolve handles GET / — the redirect endpoint. The browser search
// bar sends the raw query in ?q=; a hit 302s to the substituted URL, a miss
// with candidates shows the suggestions page, and anything else falls
// through to the configured search engine.
func (h *Handlers) HandleResolve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	out, err := h.resolver.Process(query)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if out.Redirect() {
		http.Redirect(w, r, out.URL, http.StatusFound)
		return
	}

	if len(out.Suggestions) > 0 {
		h.renderer.renderPage(w, "suggestions", SuggestionsPageData{
			PageData: PageData{
				Title:   "Did you mean?",
				Version: h.renderer.version,
			},
			Query:       query,
			Suggestions: out.Suggestions,
		})
		return
	}

	// No match at all: hand the query to the fallback search engine
	http.Redirect(w, r, resolve.Substitute(h.cfg.FallbackURL, query), http.StatusFound)
}

// HandleManage handles GET /manage — the bookmark list page.
func (h *Handlers) HandleManage(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "manage", ManagePageData{
		PageData: PageData{
			Title:   "Bookmarks",
			Version: h.renderer.version,
			Nav:     "manage",
		},
		Items: result.Items,
		Total: result.Total,
	})
}

// HandleNewForm handles GET /manage/new — empty bookmark form.
func (h *Handlers) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "form", FormPageData{
		PageData: PageData{
			Title:   "New Bookmark",
			Version: h.renderer.version,
			Nav:     "new",
		},
	})
}

// HandleCreateForm handles POST /manage/new.
func (h *Handlers) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	_, err := ops.Create(h.db, ops.CreateInput{
		Name:        r.FormValue("name"),
		URL:         r.FormValue("url"),
		Description: r.FormValue("description"),
		Aliases:     splitAliases(r.FormValue("aliases")),
	})
	if err != nil {
		h.renderFormError(w, nil, err)
		return
	}

	h.invalidate()
	http.Redirect(w, r, "/manage", http.StatusFound)
}

// HandleEditForm handles GET /manage/edit/{id} — form pre-filled with an
// existing bookmark.
func (h *Handlers) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	b, err := ops.Get(h.db, ops.GetInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "form", FormPageData{
		PageData: PageData{
			Title:   "Edit " + b.Name,
			Version: h.renderer.version,
			Nav:     "manage",
		},
		Bookmark: b,
	})
}

// HandleUpdateForm handles POST /manage/edit/{id}.
func (h *Handlers) HandleUpdateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	id := r.PathValue("id")
	name := r.FormValue("name")
	url := r.FormValue("url")
	description := r.FormValue("description")

	_, err := ops.Update(h.db, ops.UpdateInput{
		ID:          id,
		Name:        &name,
		URL:         &url,
		Description: &description,
	})
	if err != nil {
		current, getErr := ops.Get(h.db, ops.GetInput{ID: id})
		if getErr != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		h.renderFormError(w, current, err)
		return
	}

	h.invalidate()
	http.Redirect(w, r, "/manage", http.StatusFound)
}

// HandleDeleteForm handles POST /manage/delete/{id}.
func (h *Handlers) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Delete(h.db, ops.DeleteInput{ID: r.PathValue("id")}); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.invalidate()
	http.Redirect(w, r, "/manage", http.StatusFound)
}

// renderFormError re-renders the bookmark form with the failure message so
// the user keeps their input context.
func (h *Handlers) renderFormError(w http.ResponseWriter, b *bookmark.Bookmark, err error) {
	var herr *errors.Error
	if !stderrors.As(err, &herr) {
		herr = errors.NewInternal(err)
	}

	title := "New Bookmark"
	nav := "new"
	if b != nil {
		title = "Edit " + b.Name
		nav = "manage"
	}

	h.renderer.renderPageStatus(w, herr.Status, "form", FormPageData{
		PageData: PageData{
			Title:   title,
			Version: h.renderer.version,
			Nav:     nav,
		},
		Bookmark: b,
		Error:    herr.Message,
	})
}

// --- JSON API ---

// createRequest is the POST /api/bookmarks body.
type createRequest struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
}

// updateRequest is the PUT /api/bookmarks/{id} body. Absent fields are left
// unchanged.
type updateRequest struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

// aliasRequest is the POST /api/bookmarks/{id}/aliases body.
type aliasRequest struct {
	Alias string `json:"alias"`
}

// HandleAPIList handles GET /api/bookmarks.
func (h *Handlers) HandleAPIList(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAPICreate handles POST /api/bookmarks.
func (h *Handlers) HandleAPICreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.Create(h.db, ops.CreateInput{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Aliases:     req.Aliases,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.invalidate()
	renderJSON(w, http.StatusCreated, result.Bookmark)
}

// HandleAPIGet handles GET /api/bookmarks/{id}.
func (h *Handlers) HandleAPIGet(w http.ResponseWriter, r *http.Request) {
	b, err := ops.Get(h.db, ops.GetInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, b)
}

// HandleAPIUpdate handles PUT /api/bookmarks/{id}.
func (h *Handlers) HandleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	b, err := ops.Update(h.db, ops.UpdateInput{
		ID:          r.PathValue("id"),
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.invalidate()
	renderJSON(w, http.StatusOK, b)
}

// HandleAPIDelete handles DELETE /api/bookmarks/{id}.
func (h *Handlers) HandleAPIDelete(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Delete(h.db, ops.DeleteInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.invalidate()
	renderJSON(w, http.StatusOK, result)
}

// HandleAPIAddAlias handles POST /api/bookmarks/{id}/aliases.
func (h *Handlers) HandleAPIAddAlias(w http.ResponseWriter, r *http.Request) {
	var req aliasRequest
	if err := decodeJSON(r, &req); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	a, err := ops.AddAlias(h.db, ops.AddAliasInput{
		BookmarkID: r.PathValue("id"),
		Alias:      req.Alias,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.invalidate()
	renderJSON(w, http.StatusCreated, a)
}

// HandleAPIDeleteAlias handles DELETE /api/aliases/{id}.
func (h *Handlers) HandleAPIDeleteAlias(w http.ResponseWriter, r *http.Request) {
	result, err := ops.RemoveAlias(h.db, ops.RemoveAliasInput{AliasID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.invalidate()
	renderJSON(w, http.StatusOK, result)
}

// decodeJSON decodes a JSON request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewInvalidRequest("invalid JSON body: " + err.Error())
	}
	return nil
}

// splitAliases splits a comma-separated alias field into a slice.
func splitAliases(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
