package engine

import "github.com/dpotapov/lexorgo/dom"

// linkDoc walks the compiled copy pre-order, splicing in template clones,
// transcluding original children, and firing pre_link (top-down) / post_link
// (bottom-up) in the node's matched-directive order (spec §4.5). By this
// point the tree shape is fixed by the compile phase's copy_children
// decisions, so the walk direction only needs to ask "does this node have
// children", matching the original's simpler _get_link_direction.
func (c *Converter) linkDoc(doc *dom.Node, tmap templateMap) {
	root := doc
	crt := doc

	dir := linkDirectionFor(crt)
	loop := dir == dirDown

	for loop {
		switch dir {
		case dirDown:
			crt = crt.Children()[0]
			c.preLinkNode(crt, tmap)
			dir = linkDirectionFor(crt)
		case dirRight:
			// crt has no children, so leaving it is also its bottom-up exit.
			c.postLinkNode(crt, tmap)
			if crt.Next() == nil {
				dir = dirUp
			} else {
				crt = crt.Next()
				c.preLinkNode(crt, tmap)
				dir = linkDirectionFor(crt)
			}
		default: // dirUp
			c.postLinkNode(crt.Parent, tmap)
			if crt.Parent == root {
				loop = false
			} else if crt.Parent.Next() == nil {
				crt = crt.Parent
				dir = dirUp
			} else {
				crt = crt.Parent.Next()
				c.preLinkNode(crt, tmap)
				dir = linkDirectionFor(crt)
			}
		}
	}
}

func linkDirectionFor(crt *dom.Node) direction {
	if len(crt.Children()) > 0 {
		return dirDown
	}
	return dirRight
}

func (c *Converter) preLinkNode(crt *dom.Node, tmap templateMap) {
	ci, ok := tmap[crt]
	if !ok {
		return
	}

	orig := dom.NewFragment()
	orig.ExtendChildren(crt)

	for _, m := range ci.matches {
		d, ok := c.reg.Lookup(m.Name)
		if !ok {
			continue
		}

		tmpl := ci.templateClones[m.Name]
		if tmpl != nil {
			spliceTemplate(crt, tmpl, d.Replace())
		}

		if d.Transclude() && len(orig.Children()) > 0 {
			if sentinel := findContentSentinel(crt); sentinel != nil {
				sentinel.Parent.ExtendBefore(sentinel, orig)
				sentinel.Parent.RemoveChild(sentinel)
			} else {
				crt.ExtendChildren(orig)
			}
		}

		if err := d.PreLink(crt); err != nil {
			c.Msg("engine", "E202", crt, []any{m.Name, err.Error()}, "")
		}
	}
}

func (c *Converter) postLinkNode(crt *dom.Node, tmap templateMap) {
	ci, ok := tmap[crt]
	if !ok {
		return
	}
	for _, m := range ci.matches {
		d, ok := c.reg.Lookup(m.Name)
		if !ok {
			continue
		}
		if err := d.PostLink(crt); err != nil {
			c.Msg("engine", "E203", crt, []any{m.Name, err.Error()}, "")
		}
	}
}

// spliceTemplate inserts tmpl's content into crt. When replace is true, the
// template root element replaces crt's own identity (tag/kind/attributes)
// and the root element's children are appended; otherwise the template's
// top-level children are appended, wrapping crt's (already-detached)
// original content. Either way transclusion in preLinkNode still applies to
// the original children (spec §9 Open Question resolution).
func spliceTemplate(crt, tmpl *dom.Node, replace bool) {
	src := tmpl
	if replace {
		// A parsed template is a Document; its first element child is the
		// template root element.
		if tmpl.Kind == dom.KindDocument || tmpl.Kind == dom.KindFragment {
			for _, ch := range tmpl.Children() {
				if ch.IsElementLike() {
					src = ch
					break
				}
			}
		}
		crt.Kind = src.Kind
		crt.Name = src.Name
		for _, a := range src.Attrs() {
			crt.SetAttr(a.Key, a.Val)
		}
	}
	for _, ch := range append([]*dom.Node{}, src.Children()...) {
		src.RemoveChild(ch)
		crt.AppendChild(ch)
	}
}

// findContentSentinel searches root's subtree, depth-first, for a
// <content/>-style placeholder element marking where transcluded children
// belong; the transcluded children take the placeholder's place (spec §9
// Open Question: sentinel wins when present).
func findContentSentinel(root *dom.Node) *dom.Node {
	for _, c := range root.Children() {
		if c.Name == "content" && c.IsElementLike() {
			return c
		}
		if found := findContentSentinel(c); found != nil {
			return found
		}
	}
	return nil
}
