package seed

import (
	"database/sql"
	"testing"

	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/ops"
	"github.com/hoplol/hoplol/internal/resolve"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestRun(t *testing.T) {
	database := testDB(t)

	created, err := Run(database)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := len(Defaults()); created != want {
		t.Errorf("created = %d, want %d", created, want)
	}

	// Seeded commands resolve
	resolver := resolve.NewResolver(db.NewStore(database), nil)
	out, err := resolver.Process("g cats")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if out.URL != "https://www.google.com/search?q=cats" {
		t.Errorf("URL = %q, want google search", out.URL)
	}
}

func TestRun_SkipsTakenCommands(t *testing.T) {
	database := testDB(t)

	// The user already claimed "google"
	_, err := ops.Create(database, ops.CreateInput{
		Name: "google",
		URL:  "https://example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created, err := Run(database)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := len(Defaults()) - 1; created != want {
		t.Errorf("created = %d, want %d (google skipped)", created, want)
	}

	// The user's bookmark wins
	b, err := db.FindByCommand(database, "google")
	if err != nil {
		t.Fatalf("FindByCommand failed: %v", err)
	}
	if b == nil || b.URL != "https://example.com" {
		t.Errorf("google = %+v, want the pre-existing bookmark", b)
	}
}

func TestEnsureSeeded(t *testing.T) {
	database := testDB(t)

	created, err := EnsureSeeded(database)
	if err != nil {
		t.Fatalf("EnsureSeeded failed: %v", err)
	}
	if created == 0 {
		t.Error("created = 0, want seeded defaults")
	}

	// Second run is a no-op
	created, err = EnsureSeeded(database)
	if err != nil {
		t.Fatalf("EnsureSeeded failed: %v", err)
	}
	if created != 0 {
		t.Errorf("created = %d, want 0 on non-empty database", created)
	}
}

func TestEnsureSeeded_NonEmptySkipsEntirely(t *testing.T) {
	database := testDB(t)

	_, err := ops.Create(database, ops.CreateInput{Name: "mine", URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created, err := EnsureSeeded(database)
	if err != nil {
		t.Fatalf("EnsureSeeded failed: %v", err)
	}
	if created != 0 {
		t.Errorf("created = %d, want 0 (user already has bookmarks)", created)
	}
}
