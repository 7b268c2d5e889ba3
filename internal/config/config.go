package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	// FuzzyThreshold is the minimum similarity score (0-100) for a fuzzy
	// suggestion to be returned.
	FuzzyThreshold int `json:"fuzzy_threshold"`

	// FuzzyLimit is the maximum number of fuzzy suggestions to return.
	FuzzyLimit int `json:"fuzzy_limit"`

	// FuzzyCacheTTLSeconds controls how long the fuzzy engine's command
	// snapshot stays valid before being rebuilt from storage.
	FuzzyCacheTTLSeconds int `json:"fuzzy_cache_ttl_seconds"`

	// DisableFuzzy turns off fuzzy suggestions entirely. Misses then fall
	// straight through to the fallback search redirect.
	DisableFuzzy bool `json:"disable_fuzzy,omitempty"`

	// FallbackURL is the search-engine template used when a query matches
	// nothing. The full raw query is substituted for %s.
	FallbackURL string `json:"fallback_url"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FuzzyThreshold:       60,
		FuzzyLimit:           3,
		FuzzyCacheTTLSeconds: 60,
		FallbackURL:          "https://www.google.com/search?q=%s",
	}
}

// FuzzyCacheTTL returns the snapshot TTL as a duration.
func (c *Config) FuzzyCacheTTL() time.Duration {
	return time.Duration(c.FuzzyCacheTTLSeconds) * time.Second
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.hoplol.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.FuzzyThreshold = overlay.FuzzyThreshold
	if result.FuzzyThreshold == 0 {
		result.FuzzyThreshold = base.FuzzyThreshold
	}

	result.FuzzyLimit = overlay.FuzzyLimit
	if result.FuzzyLimit == 0 {
		result.FuzzyLimit = base.FuzzyLimit
	}

	result.FuzzyCacheTTLSeconds = overlay.FuzzyCacheTTLSeconds
	if result.FuzzyCacheTTLSeconds == 0 {
		result.FuzzyCacheTTLSeconds = base.FuzzyCacheTTLSeconds
	}

	result.FallbackURL = overlay.FallbackURL
	if result.FallbackURL == "" {
		result.FallbackURL = base.FallbackURL
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	// Booleans: overlay wins if true, else base
	result.DisableFuzzy = base.DisableFuzzy || overlay.DisableFuzzy

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
