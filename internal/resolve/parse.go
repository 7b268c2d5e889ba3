package resolve

import (
	"strings"
	"unicode"
)

// ParseQuery splits a raw query like "gh flask issues" into its command
// token and the argument remainder. The input is trimmed, then split on the
// first run of whitespace. The command is lowercased; the remainder keeps
// its internal spacing and case verbatim. Any input, including empty,
// produces a valid pair.
func ParseQuery(query string) (command, args string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ""
	}

	i := strings.IndexFunc(query, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(query), ""
	}

	command = strings.ToLower(query[:i])
	args = strings.TrimLeftFunc(query[i:], unicode.IsSpace)
	return command, args
}
