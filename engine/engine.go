// Package engine implements the Converter: the directive-based tree
// rewriting engine that is the sole subject of this specification, plus the
// Engine facade tying Parser/Writer collaborators and style-module
// resolution into the four public operations (parse/read/convert/write).
package engine

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/dpotapov/lexorgo/dom"
	"github.com/dpotapov/lexorgo/styleloader"
)

// Parser is the lexical/syntactic collaborator: it turns source text into a
// Document plus a diagnostic log. It is out of scope for this engine and is
// only consumed through this interface (spec §6).
type Parser interface {
	Parse(text, uri string) (*dom.Node, *dom.LogDocument, error)
}

// ParserFactory constructs a Parser for a given (lang, style) pair, used
// both by Engine.Read/Parse and by the embedded-execution include/template
// facilities to build nested parsers on demand.
type ParserFactory func(lang, style string, defaults map[string]any) (Parser, error)

// Writer is the serializer collaborator (spec §6), also out of scope.
type Writer interface {
	Write(doc *dom.Node, w io.Writer) error
}

// WriterFactory constructs a Writer for a given (lang, style) pair.
type WriterFactory func(lang, style string) (Writer, error)

// Engine is the public surface of spec §6: Parse/Read/Convert/Write. It owns
// no per-call state; every Convert call builds and discards its own
// Converter (spec §5).
type Engine struct {
	// StyleLoader resolves style modules for Convert.
	StyleLoader styleloader.Loader

	// Parsers/Writers resolve Parser/Writer collaborators by (lang, style).
	Parsers ParserFactory
	Writers WriterFactory

	// DefaultStyle is used when a caller does not specify one; defaults to
	// "default" when empty.
	DefaultStyle string

	// Logger is handed to every Converter this Engine builds (and on to the
	// nested converters of include). Neither the Engine nor a Converter
	// writes records to it. Defaults to a discarding logger, matching
	// pages.Handler's own lazy-init default.
	Logger *slog.Logger

	logger *slog.Logger
}

func (e *Engine) style() string {
	if e.DefaultStyle != "" {
		return e.DefaultStyle
	}
	return "default"
}

func (e *Engine) log() *slog.Logger {
	if e.logger == nil {
		if e.Logger != nil {
			e.logger = e.Logger
		} else {
			e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
	return e.logger
}

// extLang maps a file extension to the language inferred for it when Read is
// called without an explicit lang, mirroring the original's
// os.path.splitext-based inference.
var extLang = map[string]string{
	".xml":  "xml",
	".html": "html",
	".htm":  "html",
	".md":   "md",
}

// Parse parses text in the given language/style.
func (e *Engine) Parse(text, lang, style string) (*dom.Node, *dom.LogDocument, error) {
	if style == "" {
		style = e.style()
	}
	p, err := e.Parsers(lang, style, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: resolve parser %s/%s: %w", lang, style, err)
	}
	return p.Parse(text, "")
}

// Read parses filename from fsys, inferring lang from its extension when
// lang is empty.
func (e *Engine) Read(fsys fs.FS, filename, style, lang string) (*dom.Node, *dom.LogDocument, error) {
	if style == "" {
		style = e.style()
	}
	if lang == "" {
		lang = extLang[strings.ToLower(path.Ext(filename))]
	}
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: read %s: %w", filename, err)
	}
	p, err := e.Parsers(lang, style, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: resolve parser %s/%s: %w", lang, style, err)
	}
	return p.Parse(string(data), filename)
}

// Convert converts doc to lang (defaulting to doc's own language) using
// style, building a fresh Converter scoped to this call.
func (e *Engine) Convert(doc *dom.Node, lang, style string) (*dom.Node, *dom.LogDocument, error) {
	if lang == "" {
		lang = doc.Lang
	}
	if style == "" {
		style = e.style()
	}
	c, err := NewConverter(doc.Lang, lang, style, nil, e.StyleLoader, e.Parsers, e.log())
	if err != nil {
		return nil, nil, err
	}
	return c.Convert(doc)
}

// Write serializes doc with the Writer resolved for its (Lang, Style).
func (e *Engine) Write(doc *dom.Node, w io.Writer) error {
	wr, err := e.Writers(doc.Lang, doc.Style)
	if err != nil {
		return fmt.Errorf("engine: resolve writer %s/%s: %w", doc.Lang, doc.Style, err)
	}
	return wr.Write(doc, w)
}
