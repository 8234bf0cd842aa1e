// Package mastery records which command verbs a user has typed and reports
// progress against the command catalog.
package mastery

import (
	"math"
	"strings"
	"sync"
)

// Tracker is notified with the lower-cased verb of every submitted line.
type Tracker interface {
	Record(verb string)
}

// Nop is a Tracker that discards everything.
type Nop struct{}

// Record does nothing.
func (Nop) Record(string) {}

// Memory is an in-process Tracker. It is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	verbs []string
	seen  map[string]struct{}
}

// NewMemory creates an empty in-memory tracker.
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

// Record adds verb unless it is empty or already known.
func (m *Memory) Record(verb string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(verb)
}

// add reports whether verb was new. The caller holds mu.
func (m *Memory) add(verb string) bool {
	verb = normalize(verb)
	if verb == "" {
		return false
	}
	if m.seen == nil {
		m.seen = make(map[string]struct{})
	}
	if _, ok := m.seen[verb]; ok {
		return false
	}
	m.seen[verb] = struct{}{}
	m.verbs = append(m.verbs, verb)
	return true
}

// Mastered returns the recorded verbs in first-seen order.
func (m *Memory) Mastered() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.verbs))
	copy(out, m.verbs)
	return out
}

// Reset forgets every recorded verb.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verbs = nil
	m.seen = make(map[string]struct{})
}

// Percentage returns mastered verbs as a rounded share of total, capped at 100.
func Percentage(mastered []string, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(len(mastered)) / float64(total) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// IsMastered reports whether the leading verb of a catalog template such as
// "git status" has been recorded.
func IsMastered(template string, mastered []string) bool {
	verb := leadingVerb(template)
	if verb == "" {
		return false
	}
	for _, m := range mastered {
		if m == verb {
			return true
		}
	}
	return false
}

func leadingVerb(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func normalize(verb string) string {
	return strings.ToLower(strings.TrimSpace(verb))
}
