package markdowndiff

import (
	"sort"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/debug"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
)

type OpKind int

const (
	OpAlign OpKind = iota
	OpInsert
	OpDelete
	OpUpdate
	OpMove
)

func (k OpKind) String() string {
	switch k {
	case OpAlign:
		return "align"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpUpdate:
		return "update"
	case OpMove:
		return "move"
	}
	return "<unknown op>"
}

type AttrDeltaKind int

const (
	AttrSet AttrDeltaKind = iota
	AttrAdd
	AttrDelete
)

// AttrDelta is one attribute change on an Update (or Move) operation.
type AttrDelta struct {
	Kind AttrDeltaKind
	Key  string
	Old  string
	New  string
}

type TextDelta struct {
	Old string
	New string
}

// Op is one edit operation. Node references the new tree for Insert,
// Update, Move and Align, and the old tree for Delete; Counterpart is the
// matched node in the other tree when one exists. Positions are child
// indices in the new tree, whose document order is the canonical display
// order. A Move may carry attribute and text deltas as well.
type Op struct {
	Kind        OpKind
	Node        *ir.Node
	Counterpart *ir.Node
	Parent      *ir.Node
	Pos         int

	// Move only: origin in the old tree.
	SrcParent *ir.Node
	SrcPos    int
	// Reordered marks a move within the same parent.
	Reordered bool

	Attrs []AttrDelta
	Text  *TextDelta
}

// Changed reports whether the op represents an actual edit.
func (op *Op) Changed() bool {
	return op.Kind != OpAlign
}

// Result is the annotated diff: operations in new-tree document order,
// with Deletes for old-only nodes appended parents-first. Ops reference
// nodes of the input trees by relation; the trees themselves are not
// modified.
type Result struct {
	Ops []*Op

	byNode map[*ir.Node]*Op
}

// OpFor returns the operation annotating a node of either input tree.
func (r *Result) OpFor(n *ir.Node) *Op {
	return r.byNode[n]
}

// Changed reports whether any operation is not an Align.
func (r *Result) Changed() bool {
	for _, op := range r.Ops {
		if op.Changed() {
			return true
		}
	}
	return false
}

// buildScript walks the new tree in document order emitting one operation
// per node, then the old tree for deletions.
func buildScript(m *matches, al *alignment, oldTree, newTree *ir.Tree) *Result {
	res := &Result{
		byNode: make(map[*ir.Node]*Op, oldTree.Size()+newTree.Size()),
	}
	for _, rn := range newTree.Nodes {
		op := opFor(m, al, rn)
		res.Ops = append(res.Ops, op)
		res.byNode[rn] = op
		if op.Counterpart != nil {
			res.byNode[op.Counterpart] = op
		}
		if debug.Script() && op.Changed() {
			debug.Logf("script: %s %s\n", op.Kind, op.Node.Path())
		}
	}
	for _, ln := range oldTree.Nodes {
		if m.right(ln) != nil {
			continue
		}
		op := &Op{
			Kind:   OpDelete,
			Node:   ln,
			Parent: ln.Parent,
			Pos:    ln.ParentIndex,
		}
		res.Ops = append(res.Ops, op)
		res.byNode[ln] = op
		if debug.Script() {
			debug.Logf("script: delete %s\n", ln.Path())
		}
	}
	return res
}

func opFor(m *matches, al *alignment, rn *ir.Node) *Op {
	ln := m.left(rn)
	if ln == nil {
		return &Op{
			Kind:   OpInsert,
			Node:   rn,
			Parent: rn.Parent,
			Pos:    rn.ParentIndex,
		}
	}
	op := &Op{
		Kind:        OpAlign,
		Node:        rn,
		Counterpart: ln,
		Parent:      rn.Parent,
		Pos:         rn.ParentIndex,
	}
	op.Attrs = attrDeltas(ln, rn)
	if ln.Text != rn.Text {
		op.Text = &TextDelta{Old: ln.Text, New: rn.Text}
	}
	if al.moved[rn] || al.reordered[rn] {
		op.Kind = OpMove
		op.SrcParent = ln.Parent
		op.SrcPos = ln.ParentIndex
		op.Reordered = al.reordered[rn] && !al.moved[rn]
	} else if len(op.Attrs) > 0 || op.Text != nil {
		op.Kind = OpUpdate
	}
	return op
}

// attrDeltas lists attribute changes between counterparts: changed keys
// first, then added, then removed, each sorted by key so scripts are
// reproducible.
func attrDeltas(ln, rn *ir.Node) []AttrDelta {
	var changed, added, removed []AttrDelta
	for _, a := range rn.Attrs {
		old, ok := ln.Attr(a.Key)
		switch {
		case !ok:
			added = append(added, AttrDelta{Kind: AttrAdd, Key: a.Key, New: a.Value})
		case old != a.Value:
			changed = append(changed, AttrDelta{Kind: AttrSet, Key: a.Key, Old: old, New: a.Value})
		}
	}
	for _, a := range ln.Attrs {
		if _, ok := rn.Attr(a.Key); !ok {
			removed = append(removed, AttrDelta{Kind: AttrDelete, Key: a.Key, Old: a.Value})
		}
	}
	byKey := func(ds []AttrDelta) {
		sort.Slice(ds, func(i, j int) bool { return ds[i].Key < ds[j].Key })
	}
	byKey(changed)
	byKey(added)
	byKey(removed)
	res := append(changed, added...)
	return append(res, removed...)
}
