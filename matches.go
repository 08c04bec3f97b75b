package markdowndiff

import (
	"fmt"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
)

// matches is the side table holding the partial one-to-one correspondence
// between the two trees. The input trees themselves are never annotated.
type matches struct {
	l2r map[*ir.Node]*ir.Node
	r2l map[*ir.Node]*ir.Node
}

func newMatchTable(size int) *matches {
	return &matches{
		l2r: make(map[*ir.Node]*ir.Node, size),
		r2l: make(map[*ir.Node]*ir.Node, size),
	}
}

// add records a match. The relation is injective both ways; a duplicate
// on either side is a fatal engine defect.
func (m *matches) add(l, r *ir.Node) error {
	if prev, ok := m.l2r[l]; ok {
		return fmt.Errorf("%w: %s already matched to %s, refusing %s",
			ErrInternal, l.Path(), prev.Path(), r.Path())
	}
	if prev, ok := m.r2l[r]; ok {
		return fmt.Errorf("%w: %s already matched to %s, refusing %s",
			ErrInternal, r.Path(), prev.Path(), l.Path())
	}
	m.l2r[l] = r
	m.r2l[r] = l
	return nil
}

// remove drops a recorded match; the re-match pass uses it to steal.
func (m *matches) remove(l, r *ir.Node) {
	delete(m.l2r, l)
	delete(m.r2l, r)
}

func (m *matches) right(l *ir.Node) *ir.Node {
	return m.l2r[l]
}

func (m *matches) left(r *ir.Node) *ir.Node {
	return m.r2l[r]
}
