package ir

import "strconv"

// Path renders a root-relative location like $/section[0]/#text[2] for
// error messages and debug logs. The index is the child position under
// the parent, so paths are unambiguous even among same-kind siblings.
func (n *Node) Path() string {
	if n.Parent == nil {
		return "$"
	}
	return n.Parent.Path() + "/" + n.Kind + "[" + strconv.Itoa(n.ParentIndex) + "]"
}
