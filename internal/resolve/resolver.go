package resolve

import "github.com/hoplol/hoplol/internal/bookmark"

// Outcome is the result of processing one query. Exactly one shape holds:
// a redirect URL, a non-empty suggestion list, or neither (no match).
// The caller decides what a no-match becomes (fallback search, 404, ...).
type Outcome struct {
	URL         string                `json:"url,omitempty"`
	Suggestions []bookmark.Suggestion `json:"suggestions,omitempty"`
}

// Redirect reports whether the outcome is a direct redirect.
func (o Outcome) Redirect() bool { return o.URL != "" }

// NoMatch reports whether the query matched nothing, exactly or fuzzily.
func (o Outcome) NoMatch() bool { return o.URL == "" && len(o.Suggestions) == 0 }

// Resolver orchestrates the pipeline: parse, exact lookup, usage increment,
// template substitution, fuzzy fallback. One call per incoming request; the
// only side effect is the use-count increment on a hit.
type Resolver struct {
	store   Store
	matcher *Matcher // nil disables fuzzy suggestions
}

// NewResolver creates a resolver. Pass a nil matcher to disable fuzzy
// matching; misses then always come back as no-match.
func NewResolver(store Store, matcher *Matcher) *Resolver {
	return &Resolver{store: store, matcher: matcher}
}

// Process resolves a raw query to an outcome.
//
// On a hit the bookmark's use count is incremented before the outcome is
// returned, so the new count is observable by any subsequent read. A failed
// exact lookup or a failed increment is returned as an error — silently
// redirecting without the recorded use would be misleading. Fuzzy-engine
// failures are not errors; they degrade to no-match inside the Matcher.
// Empty or whitespace-only input is a no-match, never an error.
func (r *Resolver) Process(rawQuery string) (Outcome, error) {
	command, args := ParseQuery(rawQuery)
	if command == "" {
		return Outcome{}, nil
	}

	b, err := r.store.FindByCommand(command)
	if err != nil {
		return Outcome{}, err
	}

	if b != nil {
		if err := r.store.IncrementUseCount(b.ID); err != nil {
			return Outcome{}, err
		}
		return Outcome{URL: Substitute(b.URL, args)}, nil
	}

	// Miss: no increment happens from here on, even if a suggestion points
	// at the bookmark the user meant.
	if r.matcher != nil {
		if suggestions := r.matcher.Suggest(command); len(suggestions) > 0 {
			return Outcome{Suggestions: suggestions}, nil
		}
	}

	return Outcome{}, nil
}
