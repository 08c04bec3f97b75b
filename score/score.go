// Package score computes bounded similarity between two candidate nodes,
// combining text similarity, attribute overlap, and the weight of already
// matched descendants. Ratio is pure: it never writes match state.
package score

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
)

// AttrKey names an attribute that uniquely identifies a node, optionally
// scoped to a kind. When such a key is present on either candidate, the
// similarity is decided by that value alone.
type AttrKey struct {
	Kind string
	Key  string
}

type Scorer struct {
	// RightOf reports the established counterpart of an old-tree node,
	// LeftOf of a new-tree node. Structural similarity depends on the
	// match state built so far, which is why matching proceeds bottom-up.
	RightOf     func(*ir.Node) *ir.Node
	LeftOf      func(*ir.Node) *ir.Node
	UniqueAttrs []AttrKey

	dmp *diffmatchpatch.DiffMatchPatch
}

func New(rightOf, leftOf func(*ir.Node) *ir.Node, uniqueAttrs []AttrKey) *Scorer {
	dmp := diffmatchpatch.New()
	// no diff deadline: scores must not depend on timing
	dmp.DiffTimeout = 0
	return &Scorer{
		RightOf:     rightOf,
		LeftOf:      leftOf,
		UniqueAttrs: uniqueAttrs,
		dmp:         dmp,
	}
}

// Ratio is the similarity of left and right in [0, 1]. Nodes of different
// kinds never match and score 0.
func (s *Scorer) Ratio(left, right *ir.Node) float64 {
	if left.Kind != right.Kind {
		return 0
	}
	for _, ua := range s.UniqueAttrs {
		if ua.Kind != "" && ua.Kind != left.Kind {
			continue
		}
		lv, lok := left.Attr(ua.Key)
		rv, rok := right.Attr(ua.Key)
		if !lok && !rok {
			continue
		}
		if lok && rok && lv == rv {
			return 1
		}
		return 0
	}
	leafW, leaf := s.leafRatio(left, right)
	childW, child, ok := s.childRatio(left, right)
	if !ok {
		return leaf
	}
	return (leafW*leaf + childW*child) / (leafW + childW)
}

// leafRatio scores the nodes' own content: directly held text plus
// attribute overlap, weighted so that longer text dominates a couple of
// attributes and vice versa.
func (s *Scorer) leafRatio(left, right *ir.Node) (weight, ratio float64) {
	lt, rt := left.OwnText(), right.OwnText()
	var textW, textR float64
	switch {
	case lt == "" && rt == "":
		textW, textR = 1, 1
	case lt == "" || rt == "":
		textW, textR = float64(max(len(lt), len(rt))), 0
	default:
		textW = float64(max(len(lt), len(rt)))
		textR = s.textRatio(lt, rt)
	}
	union, same := attrOverlap(left, right)
	if union == 0 {
		return textW, textR
	}
	attrW := float64(union)
	attrR := float64(same) / float64(union)
	return textW + attrW, (textW*textR + attrW*attrR) / (textW + attrW)
}

// textRatio diffs word tokens rather than characters. Tokens are encoded
// as runes so the generic diff runs over short sequences, and the score is
// one minus the normalized token-level Levenshtein distance.
func (s *Scorer) textRatio(a, b string) float64 {
	ta, tb := Tokens(a), Tokens(b)
	ra, rb := tokensToRunes(ta, tb)
	diffs := s.dmp.DiffMainRunes(ra, rb, false)
	total := max(len(ra), len(rb))
	if total == 0 {
		return 1
	}
	lev := s.dmp.DiffLevenshtein(diffs)
	return 1 - float64(lev)/float64(total)
}

func attrOverlap(left, right *ir.Node) (union, same int) {
	keys := make(map[string]bool, len(left.Attrs)+len(right.Attrs))
	for _, a := range left.Attrs {
		keys[a.Key] = true
	}
	for _, a := range right.Attrs {
		keys[a.Key] = true
	}
	union = len(keys)
	for _, a := range left.Attrs {
		if rv, ok := right.Attr(a.Key); ok && rv == a.Value {
			same++
		}
	}
	return union, same
}

// childRatio is the weight of matched child pairs over the total child
// weight. A child matched into some other parent is left out entirely:
// its content is explained as a move elsewhere and carries no evidence
// for or against this pair, and counting it would pull a moved subtree's
// old parent toward the destination parent. ok is false when no child
// contributes.
func (s *Scorer) childRatio(left, right *ir.Node) (weight, ratio float64, ok bool) {
	var total, matched float64
	for _, lc := range left.Children {
		rc := s.matchRight(lc)
		if rc != nil && rc.Parent != right {
			continue
		}
		w := nodeWeight(lc)
		total += w
		if rc != nil {
			matched += w
		}
	}
	for _, rc := range right.Children {
		lc := s.matchLeft(rc)
		if lc != nil && lc.Parent != left {
			continue
		}
		w := nodeWeight(rc)
		total += w
		if lc != nil {
			matched += w
		}
	}
	if total == 0 {
		return 0, 0, false
	}
	return total / 2, matched / total, true
}

func (s *Scorer) matchRight(n *ir.Node) *ir.Node {
	if s.RightOf == nil {
		return nil
	}
	return s.RightOf(n)
}

func (s *Scorer) matchLeft(n *ir.Node) *ir.Node {
	if s.LeftOf == nil {
		return nil
	}
	return s.LeftOf(n)
}

// nodeWeight values a child by its directly held text, plus one for the
// node itself, so empty structural nodes still count.
func nodeWeight(n *ir.Node) float64 {
	return 1 + float64(len(n.OwnText()))
}
