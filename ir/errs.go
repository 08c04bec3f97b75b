package ir

import "errors"

// ErrInvalidInput reports a malformed input tree, such as a node that is
// reachable twice (a cycle or a shared subtree). Detected by NewTree,
// before any diffing.
var ErrInvalidInput = errors.New("invalid input tree")
