package resolve

import (
	"net/url"
	"strings"
)

// Marker is the substitution marker in bookmark URL templates.
const Marker = "%s"

// Substitute replaces every occurrence of the %s marker in a URL template
// with the form-encoded arguments (space becomes +, reserved and non-ASCII
// characters are percent-encoded). Empty args erase the marker. A template
// without the marker passes through unchanged. Pure function, never errors.
func Substitute(template, args string) string {
	if args == "" {
		return strings.ReplaceAll(template, Marker, "")
	}
	return strings.ReplaceAll(template, Marker, url.QueryEscape(args))
}
