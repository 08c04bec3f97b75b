package ir

import "fmt"

// Tree owns a root node and an arena index over its nodes. Nodes is in
// document (pre-)order and Node.ID indexes into it, so side tables keyed
// by ID are cheap and tie-breaks on document order are just ID compares.
type Tree struct {
	Root  *Node
	Nodes []*Node
}

// NewTree wires parent references, assigns IDs in document order, and
// validates the structure. A node reachable through two paths (a cycle or
// a shared child) fails with ErrInvalidInput; the tree is never repaired.
func NewTree(root *Node) (*Tree, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidInput)
	}
	t := &Tree{Root: root}
	seen := make(map[*Node]bool)
	var index func(n, parent *Node, pos int) error
	index = func(n, parent *Node, pos int) error {
		if seen[n] {
			return fmt.Errorf("%w: node %s reachable twice", ErrInvalidInput, n.Path())
		}
		seen[n] = true
		n.Parent = parent
		n.ParentIndex = pos
		n.ID = len(t.Nodes)
		t.Nodes = append(t.Nodes, n)
		for i, c := range n.Children {
			if c == nil {
				return fmt.Errorf("%w: nil child under %s", ErrInvalidInput, n.Path())
			}
			if err := index(c, n, i); err != nil {
				return err
			}
		}
		n.End = len(t.Nodes)
		return nil
	}
	if err := index(root, nil, 0); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) Size() int {
	return len(t.Nodes)
}

// Contains reports whether n lies in the subtree rooted at anc, by ID
// range. Both nodes must belong to this tree.
func (t *Tree) Contains(anc, n *Node) bool {
	return n.ID >= anc.ID && n.ID < anc.End
}
