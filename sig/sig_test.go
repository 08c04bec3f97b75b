package sig

import (
	"fmt"
	"testing"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
)

func mustTree(t *testing.T, root *ir.Node) *ir.Tree {
	t.Helper()
	tree, err := ir.NewTree(root)
	if err != nil {
		t.Fatal(err)
	}
	Compute(tree)
	return tree
}

func sampleDoc() *ir.Node {
	return ir.Elem("doc",
		ir.Elem("heading", ir.Text("Title")).WithAttr("level", "1"),
		ir.Elem("paragraph", ir.Text("Some body text.")),
		ir.Elem("list",
			ir.Elem("item", ir.Text("one")),
			ir.Elem("item", ir.Text("two"))))
}

func TestComputeEqualTrees(t *testing.T) {
	a := mustTree(t, sampleDoc())
	b := mustTree(t, sampleDoc())
	if a.Root.Sig != b.Root.Sig {
		t.Error("identical trees got different root signatures")
	}
	for i := range a.Nodes {
		if a.Nodes[i].Sig != b.Nodes[i].Sig {
			t.Errorf("node %d signatures differ", i)
		}
	}
}

func TestComputeAttrOrderIndependent(t *testing.T) {
	a := mustTree(t, ir.Elem("section").WithAttr("id", "x").WithAttr("class", "y"))
	b := mustTree(t, ir.Elem("section").WithAttr("class", "y").WithAttr("id", "x"))
	if a.Root.Sig != b.Root.Sig {
		t.Error("attribute order changed the signature")
	}
}

func TestComputeDistinguishes(t *testing.T) {
	base := func() *ir.Node {
		return ir.Elem("section",
			ir.Elem("paragraph", ir.Text("alpha")),
			ir.Elem("paragraph", ir.Text("beta")))
	}
	orig := mustTree(t, base())
	for name, variant := range map[string]*ir.Node{
		"child order": ir.Elem("section",
			ir.Elem("paragraph", ir.Text("beta")),
			ir.Elem("paragraph", ir.Text("alpha"))),
		"kind": ir.Elem("div",
			ir.Elem("paragraph", ir.Text("alpha")),
			ir.Elem("paragraph", ir.Text("beta"))),
		"text": ir.Elem("section",
			ir.Elem("paragraph", ir.Text("alpha")),
			ir.Elem("paragraph", ir.Text("gamma"))),
		"attr value": base().WithAttr("id", "x"),
		"extra child": ir.Elem("section",
			ir.Elem("paragraph", ir.Text("alpha")),
			ir.Elem("paragraph", ir.Text("beta")),
			ir.Elem("paragraph")),
	} {
		if mustTree(t, variant).Root.Sig == orig.Root.Sig {
			t.Errorf("%s change kept the signature", name)
		}
	}
}

func TestComputeNormalizesWhitespace(t *testing.T) {
	a := mustTree(t, ir.Elem("paragraph", ir.Text("Hello   world")))
	b := mustTree(t, ir.Elem("paragraph", ir.Text(" Hello world ")))
	if a.Root.Sig != b.Root.Sig {
		t.Error("whitespace runs changed the signature")
	}
}

func TestComputeParallelMatchesSequential(t *testing.T) {
	section := func() *ir.Node {
		s := ir.Elem("section")
		for i := 0; i < 700; i++ {
			s.Append(ir.Elem("paragraph", ir.Text(fmt.Sprintf("paragraph number %d", i))))
		}
		return s
	}
	// over the parallel cutoff: root children hash concurrently
	big := mustTree(t, ir.Elem("doc", section(), section(), section()))
	if big.Size() < parallelAt {
		t.Fatalf("test tree too small: %d nodes", big.Size())
	}
	// a lone section stays under the cutoff and hashes sequentially
	small := mustTree(t, section())
	for _, c := range big.Root.Children {
		if c.Sig != small.Root.Sig {
			t.Error("parallel subtree signature differs from sequential")
		}
	}
}
