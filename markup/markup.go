// Package markup provides a concrete Parser/Writer pair for the engine
// package's collaborator interfaces (spec §6), grounded on the teacher's own
// etree-based parsing (chtml/component.go's parse) and the permissive
// decoder settings it uses there. Serialization is grounded on the same
// file's evalElement/render path: a dom.Node tree is raised into an
// *html.Node tree (DataAtom via atom.Lookup, exactly as component.go does
// for its own destination tree) and handed to html.Render, which owns
// text/attribute escaping and void-element handling instead of a hand-rolled
// escaper.
package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dpotapov/lexorgo/dom"
	"github.com/dpotapov/lexorgo/engine"
	"github.com/dpotapov/lexorgo/logdoc"
)

// NewParserFactory returns an engine.ParserFactory that builds an XMLParser
// for any (lang, style) pair — the fixture has only one parsing strategy,
// so style and defaults are accepted but unused.
func NewParserFactory() engine.ParserFactory {
	return func(lang, style string, defaults map[string]any) (engine.Parser, error) {
		return XMLParser{Lang: lang}, nil
	}
}

// NewWriterFactory returns an engine.WriterFactory that builds an
// XMLWriter for any (lang, style) pair.
func NewWriterFactory() engine.WriterFactory {
	return func(lang, style string) (engine.Writer, error) {
		return XMLWriter{Indent: -1}, nil
	}
}

// voidElements mirrors golang.org/x/net/html's voidElements table: tags the
// grammar declares to never carry children, lowered to dom.KindVoid instead
// of dom.KindElement.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// XMLParser implements engine.Parser over beevik/etree, in permissive mode
// so malformed or HTML-ish markup still parses (spec §6, MARKUP FIXTURE).
type XMLParser struct {
	// Lang is recorded on the returned Document's Lang field; defaults to
	// "xml".
	Lang string
}

// Parse decodes text into a dom.Node tree rooted at a Document, logging a
// W100 diagnostic for any etree read error rather than failing outright —
// permissive parsing is the point of this fixture.
func (p XMLParser) Parse(text, uri string) (*dom.Node, *dom.LogDocument, error) {
	lang := p.Lang
	if lang == "" {
		lang = "xml"
	}

	tmp := etree.NewDocument()
	tmp.ReadSettings.Permissive = true

	log := dom.NewLogDocument(uri)

	if err := tmp.ReadFromString(text); err != nil {
		logdoc.Msg(log, "markup", "W100", nil, []any{err.Error()}, uri)
	}

	doc := dom.NewDocument(uri, lang, "default")
	for _, child := range tmp.Child {
		if n := lowerToken(child); n != nil {
			doc.AppendChild(n)
		}
	}
	return doc, log, nil
}

// lowerToken converts one etree.Token into its dom.Node equivalent.
// Comments and directives have no dom.Kind analog and are dropped, matching
// the teacher's own root-level parse loop discarding non-element/text
// tokens.
func lowerToken(tok etree.Token) *dom.Node {
	switch t := tok.(type) {
	case *etree.Element:
		return lowerElement(t)
	case *etree.CharData:
		if t.IsCData() {
			return dom.NewCData(t.Data)
		}
		return dom.NewText(t.Data)
	case *etree.ProcInst:
		return dom.NewPI(t.Target, t.Inst)
	default:
		return nil
	}
}

func lowerElement(e *etree.Element) *dom.Node {
	tag := e.FullTag()

	var n *dom.Node
	if voidElements[tag] {
		n = dom.NewVoid(tag)
	} else {
		n = dom.NewElement(tag)
	}

	for _, a := range e.Attr {
		key := a.Key
		if a.Space != "" {
			key = a.Space + ":" + a.Key
		}
		n.SetAttr(key, a.Value)
	}

	for _, child := range e.Child {
		if c := lowerToken(child); c != nil {
			n.AppendChild(c)
		}
	}

	return n
}

// XMLWriter implements engine.Writer, the reverse of XMLParser.
type XMLWriter struct {
	// Indent is accepted for API symmetry with the etree-based parser side
	// but unused: html.Render has no pretty-printer of its own, matching the
	// teacher's own render path (chtml/component.go never indents its
	// html.Render output either).
	Indent int
}

// Write serializes doc with golang.org/x/net/html's Render, after raising
// doc's children into an *html.Node tree (component.go's evalElement
// pattern). Render owns escaping and void-element handling, so there is no
// hand-rolled equivalent here.
func (w XMLWriter) Write(doc *dom.Node, out io.Writer) error {
	for _, child := range doc.Children() {
		if err := html.Render(out, raiseHTML(child)); err != nil {
			return fmt.Errorf("markup: write: %w", err)
		}
	}
	return nil
}

// raiseHTML converts n into its *html.Node equivalent. CData and
// ProcessingInstruction nodes have no dedicated html.Node type, so they are
// carried as html.RawNode — the same escape hatch component.go uses
// (html.Node{Type: html.RawNode, Data: ...}) to splice pre-rendered markup
// into a destination tree verbatim.
func raiseHTML(n *dom.Node) *html.Node {
	switch n.Kind {
	case dom.KindElement, dom.KindVoid:
		el := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Lookup([]byte(n.Name)),
			Data:     n.Name,
		}
		for _, a := range n.Attrs() {
			el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		for _, child := range n.Children() {
			el.AppendChild(raiseHTML(child))
		}
		return el
	case dom.KindText:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case dom.KindCData:
		return &html.Node{Type: html.RawNode, Data: "<![CDATA[" + n.Data + "]]>"}
	case dom.KindPI:
		return &html.Node{Type: html.RawNode, Data: "<?" + n.Name + " " + n.Data + "?>"}
	default: // Fragment/Document: flatten into a single raw concatenation
		var sb strings.Builder
		for _, child := range n.Children() {
			_ = html.Render(&sb, raiseHTML(child))
		}
		return &html.Node{Type: html.RawNode, Data: sb.String()}
	}
}
