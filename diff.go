// Package markdowndiff computes a structural difference between two
// versions of a document tree: a one-to-one correspondence between their
// nodes and the edit operations (insert, delete, update, move, align)
// that transform one into the other. The algorithm is a tuned heuristic
// in the change-detection-for-hierarchical-data family, not an exact tree
// edit distance solver.
package markdowndiff

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/score"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/sig"
)

// DefaultF is the similarity threshold used when none is configured.
// F=1 matches only identical nodes, reporting any inexact change as a
// Delete+Insert pair; lower values attribute small edits to Update at the
// risk of false matches. 0.5 biases toward precision on prose documents.
const DefaultF = 0.5

type DiffConfig struct {
	// F is the minimum similarity for a non-exact match, in [0, 1].
	F float64 `validate:"gte=0,lte=1"`
	// FastMatch confines similarity candidates to the counterpart
	// subtree of the nearest matched ancestor instead of falling back to
	// the whole tree. Distant moves may be missed; results for documents
	// whose change is localized are unaffected.
	FastMatch bool
	// UniqueAttrs short-circuit similarity on identifying attributes.
	UniqueAttrs []score.AttrKey
}

type DiffOpt func(*DiffConfig)

func DiffF(f float64) DiffOpt {
	return func(c *DiffConfig) { c.F = f }
}
func DiffFastMatch(v bool) DiffOpt {
	return func(c *DiffConfig) { c.FastMatch = v }
}
func DiffUniqueAttrs(keys ...score.AttrKey) DiffOpt {
	return func(c *DiffConfig) { c.UniqueAttrs = keys }
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Diff computes the edit script transforming old into new. The trees
// must come from ir.NewTree and are read-only during the diff; all match
// state lives in a side table. The computation is deterministic: the
// same inputs and configuration always produce the same operation
// sequence. On error there is no partial result.
func Diff(oldTree, newTree *ir.Tree, opts ...DiffOpt) (*Result, error) {
	cfg := &DiffConfig{F: DefaultF}
	for _, o := range opts {
		o(cfg)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: F must be in [0,1], got %v", ErrConfig, cfg.F)
	}
	if oldTree == nil || newTree == nil || oldTree.Root == nil || newTree.Root == nil {
		return nil, fmt.Errorf("%w: nil tree", ir.ErrInvalidInput)
	}

	sig.Compute(oldTree)
	sig.Compute(newTree)

	mm := newMatcher(cfg, oldTree, newTree)
	if err := mm.run(); err != nil {
		return nil, err
	}
	al := alignTrees(mm.m, newTree)
	return buildScript(mm.m, al, oldTree, newTree), nil
}
