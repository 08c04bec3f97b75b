package markdowndiff

import (
	"testing"
)

func TestAlignSwappedSiblings(t *testing.T) {
	old := mustTree(t, `
kind: doc
children:
- kind: paragraph
  children:
  - text: first paragraph apple banana
- kind: paragraph
  children:
  - text: second paragraph cherry date
- kind: paragraph
  children:
  - text: third paragraph elder fig
`)
	new := mustTree(t, `
kind: doc
children:
- kind: paragraph
  children:
  - text: second paragraph cherry date
- kind: paragraph
  children:
  - text: first paragraph apple banana
- kind: paragraph
  children:
  - text: third paragraph elder fig
`)
	res, err := Diff(old, new)
	if err != nil {
		t.Fatal(err)
	}
	counts := countKinds(res)
	if counts[OpInsert] != 0 || counts[OpDelete] != 0 || counts[OpUpdate] != 0 {
		t.Fatalf("swap produced non-move ops: %v", counts)
	}
	// one of the swapped pair stays in the longest aligned run, the
	// other is flagged; the untouched third paragraph always aligns
	if counts[OpMove] != 1 {
		t.Fatalf("want 1 move for a sibling swap, got %v", counts)
	}
	third := new.Root.Children[2]
	op := res.OpFor(third)
	if op == nil || op.Kind != OpAlign {
		t.Errorf("untouched trailing paragraph should align, got %v", op)
	}
	for _, op := range res.Ops {
		if op.Kind != OpMove {
			continue
		}
		if !op.Reordered {
			t.Errorf("sibling swap at %s should be a reorder", op.Node.Path())
		}
		if op.Parent != op.Node.Parent {
			t.Errorf("move parent mismatch at %s", op.Node.Path())
		}
	}
}

func TestAlignCrossParentMove(t *testing.T) {
	old := mustTree(t, `
kind: doc
children:
- kind: section
  attrs: {id: one}
  children:
  - kind: paragraph
    children:
    - text: wandering paragraph lorem ipsum dolor
- kind: section
  attrs: {id: two}
  children:
  - kind: paragraph
    children:
    - text: resident paragraph sit amet
`)
	new := mustTree(t, `
kind: doc
children:
- kind: section
  attrs: {id: one}
- kind: section
  attrs: {id: two}
  children:
  - kind: paragraph
    children:
    - text: resident paragraph sit amet
  - kind: paragraph
    children:
    - text: wandering paragraph lorem ipsum dolor
`)
	res, err := Diff(old, new)
	if err != nil {
		t.Fatal(err)
	}
	counts := countKinds(res)
	if counts[OpInsert] != 0 || counts[OpDelete] != 0 {
		t.Fatalf("cross-parent move produced insert/delete: %v", counts)
	}
	wanderer := new.Root.Children[1].Children[1]
	op := res.OpFor(wanderer)
	if op == nil {
		t.Fatal("no op for moved paragraph")
	}
	if op.Kind != OpMove {
		t.Fatalf("want move for relocated paragraph, got %s", op.Kind)
	}
	if op.Reordered {
		t.Error("cross-parent move flagged as reorder")
	}
	if id, _ := op.SrcParent.Attr("id"); id != "one" {
		t.Errorf("move source parent id = %q, want \"one\"", id)
	}
	if id, _ := op.Parent.Attr("id"); id != "two" {
		t.Errorf("move parent id = %q, want \"two\"", id)
	}
	if op.Pos != 1 {
		t.Errorf("move position = %d, want 1", op.Pos)
	}
}

func TestAlignMoveKeepsDescendants(t *testing.T) {
	// descendants of a moved subtree stay put relative to their parent
	old := mustTree(t, `
kind: doc
children:
- kind: list
  children:
  - kind: item
    children:
    - text: alpha beta gamma
- kind: paragraph
  children:
  - text: trailing text here
`)
	new := mustTree(t, `
kind: doc
children:
- kind: paragraph
  children:
  - text: trailing text here
- kind: list
  children:
  - kind: item
    children:
    - text: alpha beta gamma
`)
	res, err := Diff(old, new)
	if err != nil {
		t.Fatal(err)
	}
	moves := 0
	for _, op := range res.Ops {
		switch op.Kind {
		case OpMove:
			moves++
			if op.Node.Parent != new.Root {
				t.Errorf("descendant %s flagged as move", op.Node.Path())
			}
		case OpInsert, OpDelete, OpUpdate:
			t.Errorf("unexpected %s at %s", op.Kind, op.Node.Path())
		}
	}
	if moves != 1 {
		t.Errorf("want 1 move, got %d", moves)
	}
}
