// Package dom implements the typed document tree shared by every stage of
// the conversion engine: the parser builds it, the converter clones and
// rewrites it, and the writer serializes it.
package dom

import "fmt"

// Kind tags the variant a Node represents. Attributes only exist on
// Element/Void nodes; Data only exists on Text/CData/PI nodes.
type Kind int

const (
	KindDocument Kind = iota
	KindFragment
	KindElement
	KindText
	KindCData
	KindVoid
	KindPI
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindFragment:
		return "fragment"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindCData:
		return "cdata"
	case KindVoid:
		return "void"
	case KindPI:
		return "pi"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Attr is a single attribute, kept in a slice rather than a map so that
// attribute-iteration order (insertion order) is observable, as required by
// the directive matcher's tie-breaking rule.
type Attr struct {
	Key string
	Val string
}

// Node is a tagged-variant tree node. Ownership of a Node is exclusive to its
// Parent: moving a Node to a new parent implicitly removes it from the old
// one (see AppendChild/InsertBefore).
type Node struct {
	Kind Kind

	// Name is kind-specific: "#document"/"#fragment" for Document/Fragment,
	// the element or void tag for Element/Void, the directive/PI target for
	// ProcessingInstruction, "#text"/"#cdata" for Text/CData.
	Name string

	Parent   *Node
	children []*Node

	attrs []Attr // Element/Void only

	Data string // Text/CData/PI only

	// Document-only fields. Zero for every other kind.
	URI       string
	Lang      string
	Style     string
	Namespace map[string]any
}

// NewDocument creates a root Document node.
func NewDocument(uri, lang, style string) *Node {
	return &Node{
		Kind:      KindDocument,
		Name:      "#document",
		URI:       uri,
		Lang:      lang,
		Style:     style,
		Namespace: make(map[string]any),
	}
}

// NewFragment creates a DocumentFragment node with no owner of its own; used
// as a detached holding pen for children during the link phase.
func NewFragment() *Node {
	return &Node{Kind: KindFragment, Name: "#fragment"}
}

// NewElement creates an Element node with the given tag name.
func NewElement(name string) *Node {
	return &Node{Kind: KindElement, Name: name}
}

// NewVoid creates a self-closing Void node with the given tag name.
func NewVoid(name string) *Node {
	return &Node{Kind: KindVoid, Name: name}
}

// NewText creates a Text node.
func NewText(data string) *Node {
	return &Node{Kind: KindText, Name: "#text", Data: data}
}

// NewCData creates a CDATA node.
func NewCData(data string) *Node {
	return &Node{Kind: KindCData, Name: "#cdata", Data: data}
}

// NewPI creates a ProcessingInstruction node targeting the given name.
func NewPI(name, data string) *Node {
	return &Node{Kind: KindPI, Name: name, Data: data}
}

// IsElementLike reports whether n can carry attributes and participate in
// restrict="E"/"A" directive matching.
func (n *Node) IsElementLike() bool {
	return n.Kind == KindElement || n.Kind == KindVoid
}

// Children returns the node's ordered child sequence. The returned slice must
// not be mutated by the caller; use AppendChild/InsertBefore/RemoveChild.
func (n *Node) Children() []*Node {
	return n.children
}

// Index returns the node's position among its parent's children, or -1 if it
// has no parent.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Next returns the next sibling, or nil if n is the last child or has no
// parent.
func (n *Node) Next() *Node {
	if n.Parent == nil {
		return nil
	}
	i := n.Index()
	if i < 0 || i+1 >= len(n.Parent.children) {
		return nil
	}
	return n.Parent.children[i+1]
}

// Owner walks up the Parent chain and returns the topmost ancestor: the root
// Document for a node attached to one, otherwise the root of its detached
// subtree (n itself when it has no parent).
func (n *Node) Owner() *Node {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// AppendChild adds c as the last child of n, removing it from its previous
// parent (if any) first.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	n.children = append(n.children, c)
	c.Parent = n
}

// InsertBefore inserts newChild immediately before oldChild in n's children.
// If oldChild is nil, newChild is appended at the end.
func (n *Node) InsertBefore(newChild, oldChild *Node) {
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	if oldChild == nil {
		n.children = append(n.children, newChild)
		newChild.Parent = n
		return
	}
	idx := oldChild.Index()
	if idx < 0 || oldChild.Parent != n {
		panic("dom: InsertBefore called with oldChild that is not a child of n")
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = newChild
	newChild.Parent = n
}

// RemoveChild removes c from n's children. It panics if c's parent is not n.
// Afterwards c has no parent.
func (n *Node) RemoveChild(c *Node) {
	if c.Parent != n {
		panic("dom: RemoveChild called for a non-child Node")
	}
	idx := c.Index()
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	c.Parent = nil
}

// ExtendChildren appends every child of frag (a DocumentFragment or any
// Node used as a temporary holding pen) to n, draining frag.
func (n *Node) ExtendChildren(frag *Node) {
	for len(frag.children) > 0 {
		n.AppendChild(frag.children[0])
	}
}

// ExtendBefore inserts every child of frag before oldChild (nil means the
// end), draining frag, preserving frag's child order.
func (n *Node) ExtendBefore(oldChild *Node, frag *Node) {
	for _, c := range append([]*Node{}, frag.children...) {
		frag.RemoveChild(c)
		n.InsertBefore(c, oldChild)
	}
}

// Attrs returns a copy of the node's ordered attribute list.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the value of key, appending it in insertion order if new.
func (n *Node) SetAttr(key, val string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Val: val})
}

// DeleteAttr removes the named attribute, if present.
func (n *Node) DeleteAttr(key string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// AttrNames returns the attribute keys in insertion order.
func (n *Node) AttrNames() []string {
	out := make([]string, len(n.attrs))
	for i, a := range n.attrs {
		out[i] = a.Key
	}
	return out
}

// Clone returns a detached copy of n (no Parent, no children attached yet).
// If deep is true, the entire subtree is cloned recursively.
func (n *Node) Clone(deep bool) *Node {
	clone := &Node{
		Kind:  n.Kind,
		Name:  n.Name,
		Data:  n.Data,
		URI:   n.URI,
		Lang:  n.Lang,
		Style: n.Style,
	}
	if n.attrs != nil {
		clone.attrs = append([]Attr{}, n.attrs...)
	}
	if n.Namespace != nil {
		clone.Namespace = make(map[string]any, len(n.Namespace))
		for k, v := range n.Namespace {
			clone.Namespace[k] = v
		}
	}
	if deep {
		for _, c := range n.children {
			clone.AppendChild(c.Clone(true))
		}
	}
	return clone
}
