package resolve

import (
	"errors"
	"testing"
	"time"
)

func TestProcessHitRedirects(t *testing.T) {
	s := seededStore()
	r := NewResolver(s, NewMatcher(s, 60, 3, time.Minute))

	outcome, err := r.Process("google hello world")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !outcome.Redirect() {
		t.Fatalf("outcome = %+v, want redirect", outcome)
	}
	if outcome.URL != "https://google.com/search?q=hello+world" {
		t.Errorf("URL = %q", outcome.URL)
	}
	if s.increments["b1"] != 1 {
		t.Errorf("increments[b1] = %d, want 1", s.increments["b1"])
	}
}

func TestProcessHitViaAlias(t *testing.T) {
	s := seededStore()
	r := NewResolver(s, nil)

	outcome, err := r.Process("gh flask")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if outcome.URL != "https://github.com/search?q=flask" {
		t.Errorf("URL = %q", outcome.URL)
	}
	if s.increments["b2"] != 1 {
		t.Errorf("increments[b2] = %d, want 1", s.increments["b2"])
	}
}

func TestProcessCommandCaseInsensitive(t *testing.T) {
	s := seededStore()
	r := NewResolver(s, nil)

	outcome, err := r.Process("GOOGLE Test Case")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	// Command is normalized, args keep their case
	if outcome.URL != "https://google.com/search?q=Test+Case" {
		t.Errorf("URL = %q", outcome.URL)
	}
}

func TestProcessEmptyQuery(t *testing.T) {
	s := seededStore()
	r := NewResolver(s, NewMatcher(s, 60, 3, time.Minute))

	for _, q := range []string{"", "   ", "\t\n"} {
		outcome, err := r.Process(q)
		if err != nil {
			t.Fatalf("Process(%q) failed: %v", q, err)
		}
		if !outcome.NoMatch() {
			t.Errorf("Process(%q) = %+v, want no-match", q, outcome)
		}
	}
	if len(s.increments) != 0 {
		t.Errorf("empty queries incremented usage: %v", s.increments)
	}
}

func TestProcessMissWithSuggestions(t *testing.T) {
	s := seededStore()
	r := NewResolver(s, NewMatcher(s, 60, 3, time.Minute))

	outcome, err := r.Process("googl cats")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(outcome.Suggestions) == 0 {
		t.Fatal("want suggestions for near-miss")
	}
	if outcome.Suggestions[0].Command != "google" {
		t.Errorf("top suggestion = %q, want google", outcome.Suggestions[0].Command)
	}
	// No increment on a miss, even though the suggestion points at the
	// bookmark the user meant
	if len(s.increments) != 0 {
		t.Errorf("miss incremented usage: %v", s.increments)
	}
}

func TestProcessMissFuzzyDisabled(t *testing.T) {
	s := seededStore()
	r := NewResolver(s, nil)

	outcome, err := r.Process("googl")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !outcome.NoMatch() {
		t.Errorf("outcome = %+v, want no-match with fuzzy disabled", outcome)
	}
	if len(s.increments) != 0 {
		t.Errorf("miss incremented usage: %v", s.increments)
	}
}

func TestProcessMissNoSuggestions(t *testing.T) {
	s := seededStore()
	r := NewResolver(s, NewMatcher(s, 60, 3, time.Minute))

	outcome, err := r.Process("zzzzzzz")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !outcome.NoMatch() {
		t.Errorf("outcome = %+v, want no-match", outcome)
	}
}

func TestProcessLookupFailureSurfaces(t *testing.T) {
	s := seededStore()
	s.findErr = errors.New("database is locked")
	r := NewResolver(s, nil)

	if _, err := r.Process("google"); err == nil {
		t.Error("exact-lookup failure must surface as an error")
	}
}

func TestProcessIncrementFailureSurfaces(t *testing.T) {
	s := seededStore()
	s.incErr = errors.New("disk full")
	r := NewResolver(s, nil)

	outcome, err := r.Process("google hello")
	if err == nil {
		t.Error("increment failure must surface as an error")
	}
	if outcome.Redirect() {
		t.Errorf("outcome = %+v, want no redirect on failed increment", outcome)
	}
}

func TestProcessFuzzyFailureDegrades(t *testing.T) {
	s := seededStore()
	s.listErr = errors.New("storage down")
	r := NewResolver(s, NewMatcher(s, 60, 3, time.Minute))

	// Lookup path still works; only suggestions degrade
	outcome, err := r.Process("googl")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !outcome.NoMatch() {
		t.Errorf("outcome = %+v, want no-match when fuzzy degrades", outcome)
	}
}
