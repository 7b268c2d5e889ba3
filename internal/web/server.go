// Package web serves the browser-facing side of hoplol: the redirect
// endpoint the browser's search bar talks to, the management UI, and a small
// JSON API over the same operations.
package web

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hoplol/hoplol/internal/config"
	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/resolve"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server.
func NewServer(database *sql.DB, cfg *config.Config, version, bind string, port int) *http.Server {
	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	renderer := NewRenderer(templateSub, version)

	store := db.NewStore(database)
	var matcher *resolve.Matcher
	if !cfg.DisableFuzzy {
		matcher = resolve.NewMatcher(store, cfg.FuzzyThreshold, cfg.FuzzyLimit, cfg.FuzzyCacheTTL())
	}

	h := &Handlers{
		db:       database,
		cfg:      cfg,
		renderer: renderer,
		resolver: resolve.NewResolver(store, matcher),
		matcher:  matcher,
	}

	mux := http.NewServeMux()

	// The redirect endpoint the browser search bar points at
	mux.HandleFunc("GET /{$}", h.HandleResolve)

	// Management UI
	mux.HandleFunc("GET /manage", h.HandleManage)
	mux.HandleFunc("GET /manage/new", h.HandleNewForm)
	mux.HandleFunc("POST /manage/new", h.HandleCreateForm)
	mux.HandleFunc("GET /manage/edit/{id}", h.HandleEditForm)
	mux.HandleFunc("POST /manage/edit/{id}", h.HandleUpdateForm)
	mux.HandleFunc("POST /manage/delete/{id}", h.HandleDeleteForm)

	// JSON API
	mux.HandleFunc("GET /api/bookmarks", h.HandleAPIList)
	mux.HandleFunc("POST /api/bookmarks", h.HandleAPICreate)
	mux.HandleFunc("GET /api/bookmarks/{id}", h.HandleAPIGet)
	mux.HandleFunc("PUT /api/bookmarks/{id}", h.HandleAPIUpdate)
	mux.HandleFunc("DELETE /api/bookmarks/{id}", h.HandleAPIDelete)
	mux.HandleFunc("POST /api/bookmarks/{id}/aliases", h.HandleAPIAddAlias)
	mux.HandleFunc("DELETE /api/aliases/{id}", h.HandleAPIDeleteAlias)

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	// Wrap with security headers
	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("hoplol running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
