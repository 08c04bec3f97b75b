// Package sig computes content fingerprints for document trees. Two nodes
// with equal signatures are treated as content-identical subtrees, which
// lets the matcher resolve unchanged regions without pairwise comparison.
package sig

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"sort"
	"sync"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/debug"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
)

// Subtrees under the root are hashed concurrently past this node count.
// Each subtree is independent, so the result is identical either way.
const parallelAt = 2048

// Compute populates Node.Sig on every node of the tree, bottom-up in one
// pass. A leaf hashes its kind and normalized text; an internal node
// hashes its kind, attributes sorted by key, and the ordered sequence of
// child signatures.
func Compute(t *ir.Tree) {
	if t.Size() >= parallelAt && len(t.Root.Children) > 1 {
		var wg sync.WaitGroup
		for _, c := range t.Root.Children {
			wg.Add(1)
			go func(c *ir.Node) {
				defer wg.Done()
				compute(c)
			}(c)
		}
		wg.Wait()
		t.Root.Sig = fingerprint(t.Root)
	} else {
		compute(t.Root)
	}
	if debug.Sig() {
		debug.Logf("sig: %d nodes, root %016x\n", t.Size(), t.Root.Sig)
	}
}

func compute(n *ir.Node) {
	for _, c := range n.Children {
		compute(c)
	}
	n.Sig = fingerprint(n)
}

func fingerprint(n *ir.Node) uint64 {
	h := fnv.New64a()
	io.WriteString(h, n.Kind)
	h.Write([]byte{0})
	io.WriteString(h, ir.NormText(n.Text))
	h.Write([]byte{0})
	if len(n.Attrs) > 0 {
		attrs := make([]ir.Attr, len(n.Attrs))
		copy(attrs, n.Attrs)
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
		for _, a := range attrs {
			io.WriteString(h, a.Key)
			h.Write([]byte{1})
			io.WriteString(h, a.Value)
			h.Write([]byte{0})
		}
	}
	var buf [8]byte
	for _, c := range n.Children {
		binary.LittleEndian.PutUint64(buf[:], c.Sig)
		h.Write(buf[:])
	}
	return h.Sum64()
}
