package markdowndiff

import "io"

// Formatter renders a diff result into a displayable document. How the
// result is presented is entirely the formatter's concern; the engine
// only guarantees the Result contract. cmd/mddiff carries a reference
// implementation.
type Formatter interface {
	Format(w io.Writer, res *Result) error
}
