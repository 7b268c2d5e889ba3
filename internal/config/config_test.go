package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FuzzyThreshold != 60 {
		t.Errorf("FuzzyThreshold = %d, want 60", cfg.FuzzyThreshold)
	}
	if cfg.FuzzyLimit != 3 {
		t.Errorf("FuzzyLimit = %d, want 3", cfg.FuzzyLimit)
	}
	if cfg.FuzzyCacheTTLSeconds != 60 {
		t.Errorf("FuzzyCacheTTLSeconds = %d, want 60", cfg.FuzzyCacheTTLSeconds)
	}
	if cfg.FallbackURL != "https://www.google.com/search?q=%s" {
		t.Errorf("FallbackURL = %q", cfg.FallbackURL)
	}
	if cfg.DisableFuzzy {
		t.Error("DisableFuzzy should default to false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Should fall back to defaults
	if cfg.FuzzyThreshold != 60 {
		t.Errorf("FuzzyThreshold = %d, want 60", cfg.FuzzyThreshold)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"fuzzy_threshold": 80, "disable_fuzzy": true, "disabled_tools": ["bookmark_delete"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.FuzzyThreshold != 80 {
		t.Errorf("FuzzyThreshold = %d, want 80", cfg.FuzzyThreshold)
	}
	if !cfg.DisableFuzzy {
		t.Error("DisableFuzzy should be true")
	}
	// Unset scalars keep defaults
	if cfg.FuzzyLimit != 3 {
		t.Errorf("FuzzyLimit = %d, want 3", cfg.FuzzyLimit)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "bookmark_delete" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{
		FuzzyLimit:     5,
		FallbackURL:    "https://duckduckgo.com/?q=%s",
		DBMaxOpenConns: 1,
		DisabledTools:  []string{"a", "a", " b "},
	}

	merged := Merge(base, overlay)

	if merged.FuzzyLimit != 5 {
		t.Errorf("FuzzyLimit = %d, want 5", merged.FuzzyLimit)
	}
	if merged.FuzzyThreshold != 60 {
		t.Errorf("FuzzyThreshold = %d, want base 60", merged.FuzzyThreshold)
	}
	if merged.FallbackURL != "https://duckduckgo.com/?q=%s" {
		t.Errorf("FallbackURL = %q", merged.FallbackURL)
	}
	if merged.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", merged.DBMaxOpenConns)
	}
	if len(merged.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want deduplicated pair", merged.DisabledTools)
	}
}

func TestFuzzyCacheTTL(t *testing.T) {
	cfg := &Config{FuzzyCacheTTLSeconds: 90}
	if cfg.FuzzyCacheTTL() != 90*time.Second {
		t.Errorf("FuzzyCacheTTL = %v, want 90s", cfg.FuzzyCacheTTL())
	}
}
