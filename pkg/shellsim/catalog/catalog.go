// Package catalog holds the static command reference data. It is read-only:
// the interpreter consults it only to describe commands it does not simulate.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
)

//go:embed catalog.yaml
var defaultData []byte

// Categories lists the catalog categories in display order.
var Categories = []string{
	"Essential",
	"File System",
	"Network & Wifi",
	"System Admin",
	"Git & Version Control",
	"Docker & Containers",
	"Kubernetes & Orch",
	"Cloud & CLI",
	"Database & Data",
	"DevOps & CI/CD",
	"Security & Perms",
	"Package Management",
	"Process Management",
	"Search & Text",
	"Compression",
	"Platform Specific",
}

// Entry is one documented command.
type Entry struct {
	Cmd      string        `yaml:"cmd"`
	Desc     string        `yaml:"desc"`
	Category string        `yaml:"category"`
	Platform core.Platform `yaml:"platform"`
}

// Verb returns the lower-cased leading token of the command template.
func (e Entry) Verb() string {
	fields := strings.Fields(e.Cmd)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Catalog is an ordered, immutable list of entries.
type Catalog struct {
	entries []Entry
}

type document struct {
	Entries []Entry `yaml:"entries"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(strings.NewReader(string(defaultData)))
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// New creates a catalog from entries, kept in the given order.
func New(entries ...Entry) *Catalog {
	return &Catalog{entries: append([]Entry(nil), entries...)}
}

// Load decodes a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	for i, e := range doc.Entries {
		if e.Verb() == "" {
			return nil, fmt.Errorf("catalog entry %d has an empty command", i)
		}
		plat, err := core.ParsePlatform(string(e.Platform))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.Cmd, err)
		}
		doc.Entries[i].Platform = plat
	}
	return New(doc.Entries...), nil
}

// Entries returns a copy of all entries.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup finds the first entry whose leading verb equals verb and which
// applies to the active platform.
func (c *Catalog) Lookup(verb string, active core.Platform) (Entry, bool) {
	verb = strings.ToLower(verb)
	for _, e := range c.entries {
		if e.Verb() == verb && e.Platform.Matches(active) {
			return e, true
		}
	}
	return Entry{}, false
}

// ForPlatform returns the entries that apply to the active platform.
func (c *Catalog) ForPlatform(active core.Platform) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Platform.Matches(active) {
			out = append(out, e)
		}
	}
	return out
}

// Query filters a catalog listing. Zero fields do not filter.
type Query struct {
	Text     string
	Platform core.Platform
	Category string
}

// Search returns the entries matching q. A non-empty Text matches the
// command or description case-insensitively and overrides Category.
func (c *Catalog) Search(q Query) []Entry {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	var out []Entry
	for _, e := range c.entries {
		if q.Platform != "" && !e.Platform.Matches(q.Platform) {
			continue
		}
		if text != "" {
			if !strings.Contains(strings.ToLower(e.Cmd), text) && !strings.Contains(strings.ToLower(e.Desc), text) {
				continue
			}
		} else if q.Category != "" && !strings.EqualFold(e.Category, q.Category) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CategoriesFor returns, in display order, the categories that have at least
// one entry in entries.
func CategoriesFor(entries []Entry) []string {
	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e.Category] = true
	}
	var out []string
	for _, cat := range Categories {
		if seen[cat] {
			out = append(out, cat)
		}
	}
	return out
}
