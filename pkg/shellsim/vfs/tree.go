// Package vfs implements the in-memory filesystem behind a simulated terminal.
//
// A Tree is persistent: every mutation returns a new Tree that shares all
// untouched subtrees with its predecessor, so an older Tree stays valid until
// the caller decides to replace it.
package vfs

import (
	"strings"
)

// Path is a sequence of segments from the synthetic root.
type Path []string

// String renders the path with forward slashes.
func (p Path) String() string {
	return "/" + strings.Join(p, "/")
}

// Join returns a new path with name appended. p is not modified.
func (p Path) Join(name string) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, name)
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return append(Path{}, p[:len(p)-1]...)
}

// Base returns the last segment, or "" for the root.
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	return append(Path{}, p...)
}

// Tree is an immutable filesystem rooted at a synthetic directory.
type Tree struct {
	root *Node
}

// NewTree creates a tree whose root directory holds the given children.
func NewTree(children ...Child) *Tree {
	return &Tree{root: NewDir(children...)}
}

// NewTreeFromRoot wraps an existing directory node. A nil or file root yields
// an empty tree.
func NewTreeFromRoot(root *Node) *Tree {
	if root == nil || !root.IsDir() {
		root = NewDir()
	}
	return &Tree{root: root}
}

// Root returns the synthetic root directory.
func (t *Tree) Root() *Node {
	return t.root
}

// Resolve walks p from the root.
func (t *Tree) Resolve(p Path) (*Node, error) {
	n, err := walk(t.root, p)
	if err != nil {
		return nil, &PathError{Op: "resolve", Path: p.String(), Err: err}
	}
	return n, nil
}

// List returns the children of the directory at p in insertion order.
func (t *Tree) List(p Path) ([]Entry, error) {
	n, err := walk(t.root, p)
	if err == nil && !n.IsDir() {
		err = ErrNotADirectory
	}
	if err != nil {
		return nil, &PathError{Op: "list", Path: p.String(), Err: err}
	}
	return n.Entries(), nil
}

// ReadFile returns the content of the file at p.
func (t *Tree) ReadFile(p Path) (string, error) {
	n, err := walk(t.root, p)
	if err == nil && n.IsDir() {
		err = ErrIsADirectory
	}
	if err != nil {
		return "", &PathError{Op: "read", Path: p.String(), Err: err}
	}
	return n.content, nil
}

// Mkdir binds name in the directory at parent to a new empty directory. An
// existing entry of the same name is replaced.
func (t *Tree) Mkdir(parent Path, name string) (*Tree, error) {
	return t.put("mkdir", parent, name, NewDir())
}

// CreateFile binds name in the directory at parent to a new file. An existing
// entry of the same name is replaced.
func (t *Tree) CreateFile(parent Path, name, content string) (*Tree, error) {
	return t.put("create", parent, name, NewFile(content))
}

// Remove deletes name and its whole subtree from the directory at parent.
func (t *Tree) Remove(parent Path, name string) (*Tree, error) {
	root, err := rebuild(t.root, parent, func(dir *Node) (*Node, error) {
		if _, ok := dir.children[name]; !ok {
			return nil, ErrNotFound
		}
		return dir.withoutChild(name), nil
	})
	if err != nil {
		return nil, &PathError{Op: "remove", Path: parent.Join(name).String(), Err: err}
	}
	return &Tree{root: root}, nil
}

func (t *Tree) put(op string, parent Path, name string, node *Node) (*Tree, error) {
	if !ValidName(name) {
		return nil, &PathError{Op: op, Path: parent.Join(name).String(), Err: ErrInvalidName}
	}
	root, err := rebuild(t.root, parent, func(dir *Node) (*Node, error) {
		return dir.withChild(name, node), nil
	})
	if err != nil {
		return nil, &PathError{Op: op, Path: parent.Join(name).String(), Err: err}
	}
	return &Tree{root: root}, nil
}

func walk(n *Node, p Path) (*Node, error) {
	for _, seg := range p {
		if !n.IsDir() {
			return nil, ErrNotADirectory
		}
		child, ok := n.children[seg]
		if !ok {
			return nil, ErrNotFound
		}
		n = child
	}
	return n, nil
}

// rebuild copies the directories along p and applies fn to the directory at
// its end. Nothing is copied when fn or the walk fails.
func rebuild(n *Node, p Path, fn func(dir *Node) (*Node, error)) (*Node, error) {
	if !n.IsDir() {
		return nil, ErrNotADirectory
	}
	if len(p) == 0 {
		return fn(n)
	}
	child, ok := n.children[p[0]]
	if !ok {
		return nil, ErrNotFound
	}
	updated, err := rebuild(child, p[1:], fn)
	if err != nil {
		return nil, err
	}
	return n.withChild(p[0], updated), nil
}
