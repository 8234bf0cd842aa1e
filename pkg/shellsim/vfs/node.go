package vfs

import (
	"strings"
)

// Kind is the type of a node in the tree.
type Kind int

const (
	// KindFile is a leaf holding text content.
	KindFile Kind = iota
	// KindDir owns named children.
	KindDir
)

// String returns the string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return "unknown"
	}
}

// Node is an immutable file or directory. Directories remember the order in
// which their children were first inserted.
type Node struct {
	kind     Kind
	content  string
	names    []string
	children map[string]*Node
}

// Child binds a name to a node when constructing a directory.
type Child struct {
	Name string
	Node *Node
}

// Entry describes one child of a directory listing.
type Entry struct {
	Name string
	Kind Kind
	// Size is the content length in bytes; zero for directories.
	Size int
}

// NewFile creates a file node with the given content.
func NewFile(content string) *Node {
	return &Node{kind: KindFile, content: content}
}

// NewDir creates a directory node. A repeated name replaces the earlier child
// in place; nil nodes are treated as empty directories.
func NewDir(children ...Child) *Node {
	n := &Node{kind: KindDir, children: make(map[string]*Node, len(children))}
	for _, c := range children {
		child := c.Node
		if child == nil {
			child = NewDir()
		}
		if _, exists := n.children[c.Name]; !exists {
			n.names = append(n.names, c.Name)
		}
		n.children[c.Name] = child
	}
	return n
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.kind == KindDir }

// Content returns the file content. It is empty for directories.
func (n *Node) Content() string { return n.content }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.names) }

// Child returns the named child of a directory.
func (n *Node) Child(name string) (*Node, bool) {
	if n.kind != KindDir {
		return nil, false
	}
	c, ok := n.children[name]
	return c, ok
}

// Entries lists the children in insertion order.
func (n *Node) Entries() []Entry {
	entries := make([]Entry, 0, len(n.names))
	for _, name := range n.names {
		c := n.children[name]
		entries = append(entries, Entry{Name: name, Kind: c.kind, Size: len(c.content)})
	}
	return entries
}

// withChild returns a copy of directory n with name bound to child. Unchanged
// siblings are shared with n.
func (n *Node) withChild(name string, child *Node) *Node {
	cp := &Node{kind: KindDir, children: make(map[string]*Node, len(n.children)+1)}
	for k, v := range n.children {
		cp.children[k] = v
	}
	cp.names = append(make([]string, 0, len(n.names)+1), n.names...)
	if _, exists := cp.children[name]; !exists {
		cp.names = append(cp.names, name)
	}
	cp.children[name] = child
	return cp
}

// withoutChild returns a copy of directory n without name.
func (n *Node) withoutChild(name string) *Node {
	cp := &Node{kind: KindDir, children: make(map[string]*Node, len(n.children))}
	for k, v := range n.children {
		if k != name {
			cp.children[k] = v
		}
	}
	cp.names = make([]string, 0, len(n.names))
	for _, k := range n.names {
		if k != name {
			cp.names = append(cp.names, k)
		}
	}
	return cp
}

// ValidName reports whether name can label a node.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
