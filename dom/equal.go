package dom

// Equal reports whether n and other are structurally equal: same Kind, Name,
// Data, attributes (order-sensitive) and children, recursively. Parent links
// and Document-only fields (URI/Lang/Style/Namespace) are not compared here;
// use Node.Lang/Node.Style directly when a test needs to assert on those.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Name != other.Name || n.Data != other.Data {
		return false
	}
	if len(n.attrs) != len(other.attrs) {
		return false
	}
	for i, a := range n.attrs {
		if other.attrs[i] != a {
			return false
		}
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i, c := range n.children {
		if !c.Equal(other.children[i]) {
			return false
		}
	}
	return true
}
