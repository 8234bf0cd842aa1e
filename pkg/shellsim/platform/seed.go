package platform

import (
	"fmt"
	"strings"

	"github.com/gammazero/toposort"

	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

// SeedEntry declares one node of a profile's initial tree. Path is
// slash-separated from the synthetic root.
type SeedEntry struct {
	Path    string
	Dir     bool
	Content string
}

// Dir declares a seed directory.
func Dir(path string) SeedEntry {
	return SeedEntry{Path: path, Dir: true}
}

// File declares a seed file.
func File(path, content string) SeedEntry {
	return SeedEntry{Path: path, Content: content}
}

const seedRoot = ""

// BuildTree turns flat seed entries into a tree. Entries may be declared in
// any order; every parent must itself be declared as a directory. Siblings
// keep their declaration order.
func BuildTree(entries []SeedEntry) (*vfs.Tree, error) {
	byPath := make(map[string]SeedEntry, len(entries))
	children := make(map[string][]string)
	edges := make([]toposort.Edge, 0, len(entries))

	for _, e := range entries {
		p := strings.Trim(e.Path, "/")
		if p == "" {
			return nil, fmt.Errorf("seed entry has an empty path")
		}
		if _, dup := byPath[p]; dup {
			return nil, fmt.Errorf("seed entry %q declared twice", p)
		}
		if !vfs.ValidName(baseOf(p)) {
			return nil, fmt.Errorf("seed entry %q: %w", p, vfs.ErrInvalidName)
		}
		e.Path = p
		byPath[p] = e
		parent := parentOf(p)
		children[parent] = append(children[parent], p)
		// Element 0 comes before element 1: a child is built before its parent.
		edges = append(edges, toposort.Edge{p, parent})
	}

	for parent := range children {
		if parent == seedRoot {
			continue
		}
		e, ok := byPath[parent]
		if !ok {
			return nil, fmt.Errorf("seed parent %q is not declared", parent)
		}
		if !e.Dir {
			return nil, fmt.Errorf("seed parent %q: %w", parent, vfs.ErrNotADirectory)
		}
	}

	order, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to order seed entries: %w", err)
	}

	built := make(map[string]*vfs.Node, len(entries))
	kidsOf := func(p string) []vfs.Child {
		kids := make([]vfs.Child, 0, len(children[p]))
		for _, c := range children[p] {
			kids = append(kids, vfs.Child{Name: baseOf(c), Node: built[c]})
		}
		return kids
	}

	for _, v := range order {
		p := v.(string)
		if p == seedRoot {
			continue
		}
		e := byPath[p]
		if e.Dir {
			built[p] = vfs.NewDir(kidsOf(p)...)
		} else {
			built[p] = vfs.NewFile(e.Content)
		}
	}

	return vfs.NewTree(kidsOf(seedRoot)...), nil
}

// SeedTree builds the profile's initial filesystem.
func (p *Profile) SeedTree() (*vfs.Tree, error) {
	tree, err := BuildTree(p.Seed)
	if err != nil {
		return nil, fmt.Errorf("%s seed: %w", p.Name, err)
	}
	return tree, nil
}

func parentOf(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i]
	}
	return seedRoot
}

func baseOf(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}
