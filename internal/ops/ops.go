// Package ops implements the write-boundary operations for managing
// bookmarks and aliases. All normalization and namespace collision checking
// happens here (or in the transactions the db layer runs for us); the
// resolution pipeline only ever reads canonical data.
package ops

import (
	"crypto/rand"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/errors"
)

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// validateURL checks that a bookmark URL template is usable: non-empty and
// parseable with a scheme. The %s marker is legal anywhere; url.Parse
// tolerates it in query and path positions.
func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.NewInvalidRequest("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.NewInvalidRequest("url is not valid: " + err.Error())
	}
	if u.Scheme == "" {
		return errors.NewInvalidRequest("url must include a scheme (https://...)")
	}
	return nil
}

// normalizeName validates and canonicalizes a bookmark name or alias.
func normalizeName(raw, field string) (string, error) {
	norm := bookmark.Normalize(raw)
	if norm == "" {
		return "", errors.NewInvalidRequest(field + " is required")
	}
	if strings.ContainsFunc(norm, func(r rune) bool { return r == ' ' || r == '\t' }) {
		return "", errors.NewInvalidRequest(field + " must be a single word (it is the first token of a query)")
	}
	return norm, nil
}

// normalizeAliases canonicalizes an alias list, dropping empties and
// duplicates while preserving order. Collisions with the wider namespace
// are the db transaction's job; collisions within the list are caught here.
func normalizeAliases(raw []string, name string) ([]string, error) {
	seen := map[string]bool{name: true}
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		if bookmark.Normalize(a) == "" {
			continue
		}
		norm, err := normalizeName(a, "alias")
		if err != nil {
			return nil, err
		}
		if seen[norm] {
			return nil, errors.NewCommandTaken(norm)
		}
		seen[norm] = true
		out = append(out, norm)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
