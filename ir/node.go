// Package ir holds the normalized document tree representation the diff
// engine operates on. Trees are built by the caller (or treeio), finalized
// with NewTree, and are read-only once a diff starts.
package ir

import (
	"strings"
)

// TextKind is the Kind of text leaf nodes.
const TextKind = "#text"

// Attr is one attribute key/value pair. Attribute order is kept as
// inserted for display; lookups go by key.
type Attr struct {
	Key   string
	Value string
}

type Node struct {
	Kind     string
	Attrs    []Attr
	Text     string
	Children []*Node

	Parent      *Node
	ParentIndex int

	// ID is the node's index in its Tree arena, in document (pre-)order.
	// End is the ID just past the node's last descendant, so a subtree is
	// the half-open ID range [ID, End). Both are assigned by NewTree.
	ID  int
	End int

	// Sig is the content fingerprint, populated by sig.Compute.
	Sig uint64
}

// Elem builds an element node.
func Elem(kind string, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// Text builds a text leaf.
func Text(s string) *Node {
	return &Node{Kind: TextKind, Text: s}
}

// WithAttr appends an attribute and returns the node.
func (n *Node) WithAttr(key, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Append adds children and returns the node.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) Attr(key string) (string, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			return n.Attrs[i].Value, true
		}
	}
	return "", false
}

func (n *Node) IsText() bool {
	return n.Kind == TextKind
}

// OwnText is the node's directly held text: the text itself for a text
// leaf, otherwise the node's Text joined with the text of its direct text
// children. Whitespace is normalized. Descendant element text is not
// included; structural similarity accounts for it via the children.
func (n *Node) OwnText() string {
	if n.IsText() {
		return NormText(n.Text)
	}
	parts := make([]string, 0, 1+len(n.Children))
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	for _, c := range n.Children {
		if c.IsText() && c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return NormText(strings.Join(parts, " "))
}

// NormText collapses whitespace runs to a single space and trims.
func NormText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Visit walks the subtree in depth-first order, calling f twice per node:
// once pre-order (post=false) and once post-order (post=true). Returning
// false from the pre-order call skips the node's children.
func (n *Node) Visit(f func(n *Node, post bool) bool) {
	dive := f(n, false)
	if dive {
		for _, c := range n.Children {
			c.Visit(f)
		}
	}
	f(n, true)
}

// PostOrder returns the subtree's nodes in post-order (children before
// parents), the order the matcher resolves nodes in.
func PostOrder(root *Node) []*Node {
	var res []*Node
	root.Visit(func(n *Node, post bool) bool {
		if post {
			res = append(res, n)
		}
		return true
	})
	return res
}
