package engine

import (
	"fmt"

	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/dom"
	"github.com/dpotapov/lexorgo/matcher"
)

// direction tracks the explicit pre-order walk state used by compile, link,
// and the final rewrite walk (spec §4.4/§4.5/§4.6; Design Notes recommend an
// explicit work stack over recursion so the direction is inspectable — here
// the "stack" is simply the (crt, crtCopy) pair carried across iterations,
// since at most one level of ancestry needs to be live at a time thanks to
// the mutable tree already recording the path via Parent).
type direction int

const (
	dirDown direction = iota
	dirRight
	dirUp
)

// compiledInfo is the annotation the compile phase attaches to each cloned
// node: its ordered directive matches, the accompanying info bag, and the
// instantiated template clone per matched directive name. Go structs can't
// grow fields at runtime the way the original attaches _directives/_info/
// _t_node directly onto node objects, so a side table keyed by the compiled
// node's pointer stands in for it (the same pattern chtml's component.go
// uses for its meta map keyed by etree.Token).
type compiledInfo struct {
	matches        []directive.Match
	info           directive.MatchInfo
	templateClones map[string]*dom.Node
}

// templateMap is the side table produced by compileDoc and consumed by
// linkDoc.
type templateMap map[*dom.Node]*compiledInfo

// compileDoc produces the compiled copy described by spec §4.4: a
// structural clone annotated (via tmap) with each node's matched
// directives and instantiated template clones.
func (c *Converter) compileDoc(doc *dom.Node) (*dom.Node, templateMap) {
	tmap := make(templateMap)

	root := doc
	docCopy := doc.Clone(false)
	if doc.Kind == dom.KindDocument {
		docCopy.Namespace = make(map[string]any)
	}

	crt := doc
	crtCopy := docCopy

	dir := directionFor(crt, nil, c.reg)
	loop := dir == dirDown

	// atParent is true while crtCopy is still the output parent of crt's
	// level rather than a sibling, i.e. every node visited so far on that
	// level was removed.
	atParent := false

	for loop {
		switch dir {
		case dirDown:
			crt = crt.Children()[0]
			parent := crtCopy
			crtCopy, dir = c.compileNode(crt, crtCopy, true, tmap)
			atParent = crtCopy == parent
		case dirRight:
			if crt.Next() == nil {
				dir = dirUp
			} else {
				crt = crt.Next()
				prev := crtCopy
				crtCopy, dir = c.compileNode(crt, crtCopy, atParent, tmap)
				atParent = atParent && crtCopy == prev
			}
		default: // dirUp
			if !atParent {
				crtCopy = crtCopy.Parent
			}
			atParent = false
			crtCopy.Normalize()
			if crt.Parent == root {
				loop = false
			} else if crt.Parent.Next() == nil {
				crt = crt.Parent
				dir = dirUp
			} else {
				crt = crt.Parent.Next()
				crtCopy, dir = c.compileNode(crt, crtCopy, false, tmap)
			}
		}
	}

	return docCopy, tmap
}

// directionFor implements spec §4.4 step 2's direction rule: descend if crt
// has children and the top-priority match (if any) does not suppress
// CopyChildren.
func directionFor(crt *dom.Node, matches []directive.Match, reg *directive.Registry) direction {
	if len(crt.Children()) == 0 {
		return dirRight
	}
	if len(matches) > 0 {
		if d, ok := reg.Lookup(matches[0].Name); ok && !d.CopyChildren() {
			return dirRight
		}
	}
	return dirDown
}

func (c *Converter) compileNode(crt, crtCopy *dom.Node, down bool, tmap templateMap) (*dom.Node, direction) {
	matches, info := matcher.Match(c.reg, crt)

	var out *dom.Node
	var dir direction

	if len(info.Remove) == 0 {
		clone := crt.Clone(false)
		if down {
			crtCopy.AppendChild(clone)
		} else {
			crtCopy.Parent.AppendChild(clone)
		}
		out = clone
		dir = directionFor(crt, matches, c.reg)
	} else {
		out = crtCopy
		dir = dirRight
	}

	ci := &compiledInfo{matches: matches, info: info, templateClones: make(map[string]*dom.Node)}

	for _, m := range matches {
		d, ok := c.reg.Lookup(m.Name)
		if !ok {
			continue
		}
		tmplClone, err := c.templateClone(d)
		if err != nil {
			c.Msg("engine", "E200", crt, []any{m.Name, err.Error()}, "")
			continue
		}
		if err := d.Compile(tmplClone, &ci.info); err != nil {
			c.Msg("engine", "E201", crt, []any{m.Name, err.Error()}, "")
			continue
		}
		ci.templateClones[m.Name] = tmplClone
	}

	if len(info.Remove) == 0 {
		tmap[out] = ci
	}

	return out, dir
}

// templateClone returns a fresh clone of d's parsed template, parsing and
// caching it on first use if d implements directive.TemplateCache (spec §5
// "Template cache"); otherwise it parses fresh on every call.
func (c *Converter) templateClone(d directive.Directive) (*dom.Node, error) {
	if d.Template() == "" {
		return nil, nil
	}

	if tc, ok := d.(directive.TemplateCache); ok {
		if cached := tc.CachedTemplate(); cached != nil {
			return cached.Clone(true), nil
		}
		parsed, err := c.parseTemplate(d)
		if err != nil {
			return nil, err
		}
		tc.SetCachedTemplate(parsed)
		return parsed.Clone(true), nil
	}

	return c.parseTemplate(d)
}

func (c *Converter) parseTemplate(d directive.Directive) (*dom.Node, error) {
	opts := d.TemplateOptions()

	lang, _ := opts["parser_lang"].(string)
	if lang == "" {
		lang = c.fromLang
	}
	style, _ := opts["parser_style"].(string)
	if style == "" {
		style = "default"
	}

	p, err := c.parserFactory(lang, style, nil)
	if err != nil {
		return nil, fmt.Errorf("engine: resolve template parser %s/%s: %w", lang, style, err)
	}
	doc, _, err := p.Parse(d.Template(), "")
	if err != nil {
		return nil, fmt.Errorf("engine: parse template: %w", err)
	}
	return doc, nil
}
