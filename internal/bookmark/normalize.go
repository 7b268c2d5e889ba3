package bookmark

import "strings"

// Normalize canonicalizes a command or alias string:
// trim surrounding whitespace, then lowercase. Every write path and every
// lookup goes through this, so the namespace only ever holds canonical forms.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
