package markdowndiff

import "errors"

var (
	// ErrConfig reports a configuration value outside its documented
	// range.
	ErrConfig = errors.New("invalid configuration")

	// ErrInternal reports a violated matcher invariant, such as a node
	// matched to two counterparts. It indicates a defect in the engine,
	// not bad input, and is never retried.
	ErrInternal = errors.New("internal error")
)
