package markdowndiff

import (
	"runtime"
	"sync"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/debug"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/score"
)

// Candidate scoring fans out over a worker pool past this many
// candidates. Selection happens afterwards, sequentially, so parallel
// scoring cannot change the result.
const parallelScoreAt = 32

type matcher struct {
	cfg      *DiffConfig
	old, new *ir.Tree
	m        *matches
	scorer   *score.Scorer

	// per-kind candidates in document order, roots excluded
	newByKind map[string][]*ir.Node
	oldByKind map[string][]*ir.Node
}

func newMatcher(cfg *DiffConfig, oldTree, newTree *ir.Tree) *matcher {
	mm := &matcher{
		cfg:       cfg,
		old:       oldTree,
		new:       newTree,
		m:         newMatchTable(min(oldTree.Size(), newTree.Size())),
		newByKind: make(map[string][]*ir.Node),
		oldByKind: make(map[string][]*ir.Node),
	}
	mm.scorer = score.New(mm.m.right, mm.m.left, cfg.UniqueAttrs)
	for _, n := range newTree.Nodes[1:] {
		mm.newByKind[n.Kind] = append(mm.newByKind[n.Kind], n)
	}
	for _, n := range oldTree.Nodes[1:] {
		mm.oldByKind[n.Kind] = append(mm.oldByKind[n.Kind], n)
	}
	return mm
}

// run produces the node correspondence: exact signature matching first,
// then roots, then threshold similarity matching bottom-up, then a
// top-down re-match of children under matched pairs.
func (mm *matcher) run() error {
	if err := mm.exactPass(); err != nil {
		return err
	}
	// The roots always correspond; matching them before the similarity
	// pass gives the locality heuristic an anchor.
	if mm.m.right(mm.old.Root) == nil && mm.m.left(mm.new.Root) == nil {
		if err := mm.m.add(mm.old.Root, mm.new.Root); err != nil {
			return err
		}
	}
	if err := mm.similarityPass(); err != nil {
		return err
	}
	return mm.rematchPass()
}

// exactPass groups unmatched non-root nodes by signature, bottom-up. A
// signature held by exactly one node on each side is an unambiguous
// identical subtree. Ambiguous groups prefer candidates whose nearest
// matched ancestors already correspond, then pair left to right in
// document order.
func (mm *matcher) exactPass() error {
	rBySig := make(map[uint64][]*ir.Node)
	for _, n := range mm.new.Nodes[1:] {
		rBySig[n.Sig] = append(rBySig[n.Sig], n)
	}
	lBySig := make(map[uint64][]*ir.Node)
	for _, n := range mm.old.Nodes[1:] {
		lBySig[n.Sig] = append(lBySig[n.Sig], n)
	}

	done := make(map[uint64]bool)
	for _, ln := range ir.PostOrder(mm.old.Root) {
		if ln == mm.old.Root || done[ln.Sig] {
			continue
		}
		done[ln.Sig] = true
		lcands := mm.unmatchedLeft(lBySig[ln.Sig])
		rcands := mm.unmatchedRight(rBySig[ln.Sig])
		if len(lcands) == 0 || len(rcands) == 0 {
			continue
		}
		if len(lcands) == 1 && len(rcands) == 1 {
			if err := mm.matchSubtrees(lcands[0], rcands[0]); err != nil {
				return err
			}
			continue
		}
		used := make([]bool, len(rcands))
		for _, a := range lcands {
			if mm.m.right(a) != nil {
				// resolved by a containing subtree pairing
				continue
			}
			pick := -1
			for j, b := range rcands {
				if used[j] || mm.m.left(b) != nil {
					continue
				}
				if mm.ancestorsCorrespond(a, b) {
					pick = j
					break
				}
			}
			if pick < 0 {
				for j, b := range rcands {
					if !used[j] && mm.m.left(b) == nil {
						pick = j
						break
					}
				}
			}
			if pick < 0 {
				break
			}
			used[pick] = true
			if err := mm.matchSubtrees(a, rcands[pick]); err != nil {
				return err
			}
		}
	}
	return nil
}

// matchSubtrees pairs two subtrees with equal signatures: structure is
// identical, so descendants correspond positionally. Descendants already
// matched elsewhere keep their match.
func (mm *matcher) matchSubtrees(a, b *ir.Node) error {
	if mm.m.right(a) == nil && mm.m.left(b) == nil {
		if err := mm.m.add(a, b); err != nil {
			return err
		}
		if debug.Match() {
			debug.Logf("match: exact %s = %s\n", a.Path(), b.Path())
		}
	}
	for i := range a.Children {
		if i >= len(b.Children) {
			break
		}
		if err := mm.matchSubtrees(a.Children[i], b.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// ancestorsCorrespond reports whether the nearest matched ancestors of a
// and b are counterparts of each other.
func (mm *matcher) ancestorsCorrespond(a, b *ir.Node) bool {
	var la *ir.Node
	for p := a.Parent; p != nil; p = p.Parent {
		if mm.m.right(p) != nil {
			la = p
			break
		}
	}
	if la == nil {
		return false
	}
	for p := b.Parent; p != nil; p = p.Parent {
		if mm.m.left(p) != nil {
			return mm.m.right(la) == p
		}
	}
	return false
}

// similarityPass resolves the remaining left nodes bottom-up, so each
// node's structural similarity sees its children's match state.
func (mm *matcher) similarityPass() error {
	hint := 0
	for _, ln := range ir.PostOrder(mm.old.Root) {
		if ln == mm.old.Root || mm.m.right(ln) != nil {
			continue
		}
		cands := mm.candidates(ln)
		if len(cands) == 0 {
			continue
		}
		best, bestScore := mm.selectBest(ln, cands, hint)
		if best == nil || bestScore < mm.cfg.F {
			continue
		}
		if !mm.mutuallyBest(ln, best, bestScore) {
			continue
		}
		if err := mm.m.add(ln, best); err != nil {
			return err
		}
		hint = best.ID
		if debug.Match() {
			debug.Logf("match: %.3f %s ~ %s\n", bestScore, ln.Path(), best.Path())
		}
	}
	return nil
}

// candidates narrows the unmatched same-kind right nodes by locality:
// when ln has a matched ancestor, candidates inside that ancestor's
// counterpart subtree come alone if any exist. Fast-match never falls
// back to the global set, trading recall of distant moves for speed.
func (mm *matcher) candidates(ln *ir.Node) []*ir.Node {
	all := mm.unmatchedRight(mm.newByKind[ln.Kind])
	scope := mm.leftScope(ln)
	if scope == nil {
		return all
	}
	var local []*ir.Node
	for _, c := range all {
		if mm.new.Contains(scope, c) {
			local = append(local, c)
		}
	}
	if mm.cfg.FastMatch {
		return local
	}
	if len(local) > 0 {
		return local
	}
	return all
}

// leftScope is the counterpart of ln's nearest matched ancestor.
func (mm *matcher) leftScope(ln *ir.Node) *ir.Node {
	for p := ln.Parent; p != nil; p = p.Parent {
		if r := mm.m.right(p); r != nil {
			return r
		}
	}
	return nil
}

// selectBest scores ln against every candidate and picks the maximum.
// Ties break by document-order proximity to the hint (the previous
// match), then by lowest ID, keeping selection deterministic regardless
// of how the scores were computed.
func (mm *matcher) selectBest(ln *ir.Node, cands []*ir.Node, hint int) (*ir.Node, float64) {
	scores := make([]float64, len(cands))
	if len(cands) >= parallelScoreAt {
		workers := runtime.GOMAXPROCS(0)
		chunk := (len(cands) + workers - 1) / workers
		var wg sync.WaitGroup
		for lo := 0; lo < len(cands); lo += chunk {
			hi := min(lo+chunk, len(cands))
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					scores[i] = mm.scorer.Ratio(ln, cands[i])
				}
			}(lo, hi)
		}
		wg.Wait()
	} else {
		for i, c := range cands {
			scores[i] = mm.scorer.Ratio(ln, c)
		}
	}
	best := -1
	for i := range cands {
		switch {
		case best < 0 || scores[i] > scores[best]:
			best = i
		case scores[i] == scores[best] && closerTo(cands[i], cands[best], hint):
			best = i
		}
	}
	if best < 0 {
		return nil, 0
	}
	return cands[best], scores[best]
}

func closerTo(a, b *ir.Node, hint int) bool {
	da, db := absInt(a.ID-hint), absInt(b.ID-hint)
	if da != db {
		return da < db
	}
	return a.ID < b.ID
}

// mutuallyBest verifies no other unmatched left node prefers r more
// strongly. In fast-match mode the check stays inside ln's matched
// ancestor subtree.
func (mm *matcher) mutuallyBest(ln, r *ir.Node, s float64) bool {
	var anc *ir.Node
	if mm.cfg.FastMatch {
		for p := ln.Parent; p != nil; p = p.Parent {
			if mm.m.right(p) != nil {
				anc = p
				break
			}
		}
	}
	for _, l2 := range mm.oldByKind[ln.Kind] {
		if l2 == ln || mm.m.right(l2) != nil {
			continue
		}
		if anc != nil && !mm.old.Contains(anc, l2) {
			continue
		}
		if mm.scorer.Ratio(l2, r) > s {
			return false
		}
	}
	return true
}

// rematchPass revisits matched pairs top-down and tries to match their
// remaining children to each other. A child pair at or above F steals
// both nodes' previous matches: once the parents correspond, a local
// counterpart beats a far one even when the far one scored higher during
// the bottom-up pass. Children already matched across the pair are left
// alone.
func (mm *matcher) rematchPass() error {
	for _, rn := range mm.new.Nodes {
		ln := mm.m.left(rn)
		if ln == nil || len(rn.Children) == 0 {
			continue
		}
		var lkids []*ir.Node
		for _, lc := range ln.Children {
			if r := mm.m.right(lc); r == nil || r.Parent != rn {
				lkids = append(lkids, lc)
			}
		}
		for _, rc := range rn.Children {
			if len(lkids) == 0 {
				break
			}
			if l := mm.m.left(rc); l != nil && l.Parent == ln {
				continue
			}
			best, bestScore := -1, 0.0
			for i, lc := range lkids {
				if s := mm.scorer.Ratio(lc, rc); s > bestScore {
					best, bestScore = i, s
				}
			}
			if best < 0 || bestScore < mm.cfg.F {
				continue
			}
			lc := lkids[best]
			if prev := mm.m.left(rc); prev != nil {
				mm.m.remove(prev, rc)
			}
			if prev := mm.m.right(lc); prev != nil {
				mm.m.remove(lc, prev)
			}
			if err := mm.m.add(lc, rc); err != nil {
				return err
			}
			lkids = append(lkids[:best], lkids[best+1:]...)
			if debug.Match() {
				debug.Logf("match: rematch %.3f %s ~ %s\n", bestScore, lc.Path(), rc.Path())
			}
		}
	}
	return nil
}

func (mm *matcher) unmatchedLeft(nodes []*ir.Node) []*ir.Node {
	var res []*ir.Node
	for _, n := range nodes {
		if mm.m.right(n) == nil {
			res = append(res, n)
		}
	}
	return res
}

func (mm *matcher) unmatchedRight(nodes []*ir.Node) []*ir.Node {
	var res []*ir.Node
	for _, n := range nodes {
		if mm.m.left(n) == nil {
			res = append(res, n)
		}
	}
	return res
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
