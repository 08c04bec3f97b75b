package markdowndiff

import (
	"github.com/AutoriteDeLaConcurrence/markdowndiff/debug"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/lcs"
)

// alignment records, per matched pair, which children kept their relative
// order and which matched nodes changed parents. It is derived from the
// match table; the input trees stay untouched.
type alignment struct {
	// moved marks new-tree nodes whose counterpart lives under a parent
	// that is not the counterpart of the node's own parent.
	moved map[*ir.Node]bool
	// reordered marks new-tree nodes outside the longest common
	// subsequence of their parent pair's matched children.
	reordered map[*ir.Node]bool
}

func alignTrees(m *matches, newTree *ir.Tree) *alignment {
	al := &alignment{
		moved:     make(map[*ir.Node]bool),
		reordered: make(map[*ir.Node]bool),
	}
	for _, rn := range newTree.Nodes {
		ln := m.left(rn)
		if ln == nil {
			continue
		}
		if ln.Parent != nil && rn.Parent != nil && m.right(ln.Parent) != rn.Parent {
			al.moved[rn] = true
			if debug.Align() {
				debug.Logf("align: moved %s (from %s)\n", rn.Path(), ln.Path())
			}
		}
		if len(rn.Children) > 0 {
			al.alignChildren(m, ln, rn)
		}
	}
	return al
}

// alignChildren runs LCS over the children matched across the (lp, rp)
// pair. In-LCS children keep "no reorder" status; matched children
// outside it are reordered within the parent. Unmatched children are not
// part of the subsequence computation at all.
func (al *alignment) alignChildren(m *matches, lp, rp *ir.Node) {
	var lkids, rkids []*ir.Node
	for _, c := range lp.Children {
		if r := m.right(c); r != nil && r.Parent == rp {
			lkids = append(lkids, c)
		}
	}
	for _, c := range rp.Children {
		if l := m.left(c); l != nil && l.Parent == lp {
			rkids = append(rkids, c)
		}
	}
	if len(lkids) == 0 || len(rkids) == 0 {
		return
	}
	pairs := lcs.Longest(len(lkids), len(rkids), func(i, j int) bool {
		return m.right(lkids[i]) == rkids[j]
	})
	inOrder := make(map[*ir.Node]bool, len(pairs))
	for _, p := range pairs {
		inOrder[rkids[p.Right]] = true
	}
	for _, c := range rkids {
		if !inOrder[c] {
			al.reordered[c] = true
			if debug.Align() {
				debug.Logf("align: reordered %s\n", c.Path())
			}
		}
	}
}
