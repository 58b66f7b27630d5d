package engine

import (
	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/dom"
)

// rewriteDoc is the third pre-order walk (spec §4.6): it walks the already
// compiled-and-linked tree, applies start(node)/end(node) for the top
// matched directive of each node, and honors copy/copy_children on top of
// the compile phase's structural decisions to produce the final output
// document.
func (c *Converter) rewriteDoc(linked *dom.Node, tmap templateMap) (*dom.Node, error) {
	root := linked
	outRoot := linked.Clone(false)

	if err := c.styleModule.InitConversion(c, outRoot); err != nil {
		return nil, err
	}

	crtOut, err := c.start(outRoot, tmap[linked])
	if err != nil {
		return nil, err
	}

	crt := linked
	dir := rewriteDirectionFor(crt, tmap, c.reg)
	loop := dir == dirDown

	// atParent is true while crtOut is still the output parent of crt's
	// level rather than a sibling, i.e. every node visited so far on that
	// level was left out by Copy() == false.
	atParent := false

	for loop {
		switch dir {
		case dirDown:
			crt = crt.Children()[0]
			parent := crtOut
			crtOut, dir, err = c.rewriteNode(crt, crtOut, true, tmap)
			atParent = crtOut == parent
		case dirRight:
			if crt.Next() == nil {
				dir = dirUp
			} else {
				crt = crt.Next()
				prev := crtOut
				crtOut, dir, err = c.rewriteNode(crt, crtOut, atParent, tmap)
				atParent = atParent && crtOut == prev
			}
		default: // dirUp
			if !atParent {
				crtOut = crtOut.Parent
			}
			atParent = false
			err = c.end(crtOut, tmap[crt.Parent])
			crtOut.Normalize()
			if crt.Parent == root {
				loop = false
			} else if crt.Parent.Next() == nil {
				crt = crt.Parent
				dir = dirUp
			} else {
				crt = crt.Parent.Next()
				crtOut, dir, err = c.rewriteNode(crt, crtOut, false, tmap)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return outRoot, nil
}

// rewriteDirectionFor mirrors directionFor but is gated by copy_children
// alone; copy (node suppression) is handled by rewriteNode before the
// direction is even asked for, matching the original's __pre_link_node /
// _get_direction split.
func rewriteDirectionFor(crt *dom.Node, tmap templateMap, reg *directive.Registry) direction {
	if len(crt.Children()) == 0 {
		return dirRight
	}
	if ci, ok := tmap[crt]; ok && len(ci.matches) > 0 {
		if d, ok := reg.Lookup(ci.matches[0].Name); ok && !d.CopyChildren() {
			return dirRight
		}
	}
	return dirDown
}

// rewriteNode clones crt into the output tree (under crtOut, either as a
// child when descending or as a sibling when moving right/up), unless the
// node's top matched directive reports Copy() == false, in which case the
// node — and by extension its subtree — is dropped from the output.
func (c *Converter) rewriteNode(crt, crtOut *dom.Node, down bool, tmap templateMap) (*dom.Node, direction, error) {
	ci := tmap[crt]

	if ci != nil && len(ci.matches) > 0 {
		if d, ok := c.reg.Lookup(ci.matches[0].Name); ok && !d.Copy() {
			return crtOut, dirRight, nil
		}
	}

	clone := crt.Clone(false)
	if down {
		crtOut.AppendChild(clone)
	} else {
		crtOut.Parent.AppendChild(clone)
	}

	out, err := c.start(clone, ci)
	if err != nil {
		return nil, 0, err
	}

	dir := rewriteDirectionFor(crt, tmap, c.reg)
	if dir == dirRight {
		// The walk does not descend below crt, so this is also its ascent.
		if err := c.end(out, ci); err != nil {
			return nil, 0, err
		}
	}
	return out, dir, nil
}

// start fires the top matched directive's Start hook, if any, returning the
// (possibly directive-substituted) node the walk should continue from.
func (c *Converter) start(n *dom.Node, ci *compiledInfo) (*dom.Node, error) {
	if ci == nil || len(ci.matches) == 0 {
		return n, nil
	}
	d, ok := c.reg.Lookup(ci.matches[0].Name)
	if !ok {
		return n, nil
	}
	out, err := d.Start(n)
	if err != nil {
		c.Msg("engine", "E204", n, []any{ci.matches[0].Name, err.Error()}, "")
		return n, nil
	}
	return out, nil
}

// end fires the top matched directive's End hook, if any. The node End
// returns is not used: n stays in the output tree.
func (c *Converter) end(n *dom.Node, ci *compiledInfo) error {
	if ci == nil || len(ci.matches) == 0 {
		return nil
	}
	d, ok := c.reg.Lookup(ci.matches[0].Name)
	if !ok {
		return nil
	}
	out, err := d.End(n)
	if err != nil {
		c.Msg("engine", "E205", n, []any{ci.matches[0].Name, err.Error()}, "")
		return nil
	}
	_ = out
	return nil
}
