package resolve

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/xrash/smetrics"

	"github.com/hoplol/hoplol/internal/bookmark"
)

// Matcher finds near-miss commands for queries that had no exact match.
// It scores the query against a snapshot of the full command namespace,
// cached with a TTL so the table isn't re-read on every miss.
type Matcher struct {
	store     Store
	threshold int // minimum similarity score, 0-100
	limit     int // maximum suggestions returned
	ttl       time.Duration

	mu   sync.RWMutex // guards snap
	snap *snapshot

	rebuildMu sync.Mutex // at most one rebuild at a time
}

// snapshot is a point-in-time view of the command namespace. Snapshots are
// immutable once published; staleness is decided by builtAt.
type snapshot struct {
	commands []bookmark.Command
	builtAt  time.Time
}

// NewMatcher creates a fuzzy matcher over the given store.
// threshold is the minimum similarity (0-100), limit caps the number of
// suggestions (0 or negative yields no results), ttl bounds snapshot age.
func NewMatcher(store Store, threshold, limit int, ttl time.Duration) *Matcher {
	return &Matcher{
		store:     store,
		threshold: threshold,
		limit:     limit,
		ttl:       ttl,
	}
}

// Suggest returns up to limit commands similar to the missed command,
// ordered by score descending then use_count descending, deduplicated by
// bookmark. It never fails: storage errors and an empty namespace both
// degrade to an empty result so the redirect path stays responsive.
func (m *Matcher) Suggest(missedCommand string) []bookmark.Suggestion {
	if m.limit <= 0 {
		return nil
	}

	snap := m.snapshot()
	if snap == nil || len(snap.commands) == 0 {
		return nil
	}

	query := bookmark.Normalize(missedCommand)

	matches := make([]bookmark.Suggestion, 0, len(snap.commands))
	for _, c := range snap.commands {
		score := Ratio(query, c.Command)
		if score < m.threshold {
			continue
		}
		matches = append(matches, bookmark.Suggestion{
			Command:     c.Command,
			URL:         c.URL,
			Description: c.Description,
			Score:       score,
			UseCount:    c.UseCount,
			BookmarkID:  c.BookmarkID,
		})
	}

	// Stable sort keeps snapshot order for full ties, so results are
	// deterministic across calls against the same snapshot.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].UseCount > matches[j].UseCount
	})

	// Deduplicate by bookmark, keeping the highest-ranked occurrence
	seen := make(map[string]bool, len(matches))
	unique := make([]bookmark.Suggestion, 0, m.limit)
	for _, match := range matches {
		if seen[match.BookmarkID] {
			continue
		}
		seen[match.BookmarkID] = true
		unique = append(unique, match)
		if len(unique) >= m.limit {
			break
		}
	}

	return unique
}

// Invalidate discards the cached snapshot so the next Suggest rebuilds it.
// Called after namespace writes; the TTL would catch up anyway, this just
// makes fresh bookmarks suggestible immediately.
func (m *Matcher) Invalidate() {
	m.mu.Lock()
	m.snap = nil
	m.mu.Unlock()
}

// snapshot returns the current snapshot, rebuilding it when absent or older
// than the TTL. Readers are never blocked on a rebuild: if another goroutine
// is already rebuilding, or the rebuild fails, the stale snapshot (or nil)
// is served instead.
func (m *Matcher) snapshot() *snapshot {
	m.mu.RLock()
	s := m.snap
	m.mu.RUnlock()

	if s != nil && time.Since(s.builtAt) < m.ttl {
		return s
	}

	if !m.rebuildMu.TryLock() {
		// Rebuild in progress elsewhere; serve what we have.
		return s
	}
	defer m.rebuildMu.Unlock()

	commands, err := m.store.ListCommands()
	if err != nil {
		// Degrade to the stale snapshot rather than failing the request.
		return s
	}

	fresh := &snapshot{
		commands: aggregateCommands(commands),
		builtAt:  time.Now(),
	}

	m.mu.Lock()
	m.snap = fresh
	m.mu.Unlock()

	return fresh
}

// aggregateCommands collapses duplicate command strings last-write-wins
// while preserving first-seen order. Names and aliases are unique by
// invariant, so this only matters if the namespace is mid-migration.
func aggregateCommands(commands []bookmark.Command) []bookmark.Command {
	index := make(map[string]int, len(commands))
	out := make([]bookmark.Command, 0, len(commands))
	for _, c := range commands {
		if i, ok := index[c.Command]; ok {
			out[i] = c
			continue
		}
		index[c.Command] = len(out)
		out = append(out, c)
	}
	return out
}

// Ratio computes a symmetric similarity between two strings on a 0-100
// scale: 100 for identical strings, 0 for nothing in common. It is the
// indel ratio — edit distance with substitutions costing two (a delete plus
// an insert) normalized by the combined length.
func Ratio(a, b string) int {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	distance := smetrics.WagnerFischer(a, b, 1, 1, 2)
	total := len(a) + len(b)
	return int(math.Round(100 * float64(total-distance) / float64(total)))
}
