package engine

import (
	"fmt"
	"log/slog"

	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/dom"
	"github.com/dpotapov/lexorgo/logdoc"
	"github.com/dpotapov/lexorgo/styleloader"
)

// Converter is "THE CORE" (spec §1): a directive-based tree-rewriting
// engine. One Converter is built per Convert call and discarded afterwards
// (spec §5) — it owns its registry, style module, execution stacks, and log
// document exclusively for that call's duration.
type Converter struct {
	fromLang, toLang, style string
	defaults                map[string]any

	styleModule styleloader.StyleModule
	reg         *directive.Registry

	loader        styleloader.Loader
	parserFactory ParserFactory
	logger        *slog.Logger

	log *dom.LogDocument
	doc *dom.Node

	// execCtx holds the reentrancy stacks and shared namespace used by
	// embedded execution (spec §4.7). Reified here instead of as
	// process-wide module singletons (spec §9 Design Notes), so two
	// Converters never share state.
	execCtx execContext
}

var _ directive.Host = (*Converter)(nil)

// NewConverter resolves the style module for (fromLang, toLang, style),
// registers its directive repository, and returns a ready Converter.
func NewConverter(
	fromLang, toLang, style string,
	defaults map[string]any,
	loader styleloader.Loader,
	parserFactory ParserFactory,
	logger *slog.Logger,
) (*Converter, error) {
	styleModule, err := loader.Load(fromLang, toLang, style)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrUnknownStyleModule, fromLang, toLang, style)
	}

	c := &Converter{
		fromLang:      fromLang,
		toLang:        toLang,
		style:         style,
		defaults:      defaults,
		styleModule:   styleModule,
		reg:           directive.NewRegistry(),
		loader:        loader,
		parserFactory: parserFactory,
		logger:        logger,
	}
	c.execCtx.namespace = make(map[string]any)

	for _, f := range styleModule.Repository() {
		if _, err := c.reg.Register(c, f, false); err != nil {
			return nil, fmt.Errorf("engine: register directives for %s: %w", key3(fromLang, toLang, style), err)
		}
	}

	return c, nil
}

func key3(from, to, style string) string {
	if to == "" {
		return fmt.Sprintf("%s-converter-%s", from, style)
	}
	return fmt.Sprintf("%s-converter-%s-%s", from, to, style)
}

// Msg implements directive.Host: it records a diagnostic message against
// the converter's current log document (spec §4.8).
func (c *Converter) Msg(module, code string, node *dom.Node, arg []any, uri string) {
	logdoc.Msg(c.log, module, code, node, arg, uri)
}

// Registry exposes the converter's directive registry, e.g. for embedded
// execution to resolve the directive owning a PI's enclosing element.
func (c *Converter) Registry() *directive.Registry {
	return c.reg
}

// Convert runs the full pipeline described in spec §2: compile, link,
// final rewrite, optional style-module Convert hook, explanation rendering.
// doc must be of KindDocument or KindFragment.
func (c *Converter) Convert(doc *dom.Node) (*dom.Node, *dom.LogDocument, error) {
	if doc.Kind != dom.KindDocument && doc.Kind != dom.KindFragment {
		return nil, nil, &ConvertTypeError{Got: doc.Kind.String()}
	}

	c.log = dom.NewLogDocument(doc.URI)

	// work is a deep clone of the caller's doc: embedded execution mutates
	// its tree in place (splicing/removing PI nodes), and spec §3 forbids
	// mutating the input except through an explicit clone, so execPass runs
	// against work, never doc itself.
	work := doc.Clone(true)
	c.doc = work

	if p, err := c.parserFactory(c.fromLang, "default", nil); err == nil {
		if err := c.execPass(work, p); err != nil {
			return nil, c.log, fmt.Errorf("engine: embedded execution: %w", err)
		}
	}

	compiled, tmap := c.compileDoc(work)
	c.linkDoc(compiled, tmap)

	out, err := c.rewriteDoc(compiled, tmap)
	if err != nil {
		return nil, c.log, err
	}

	out.Lang = c.toLang
	out.Style = "default"

	if err := c.styleModule.Convert(c, out); err != nil {
		return nil, c.log, fmt.Errorf("engine: style module convert hook: %w", err)
	}

	logdoc.Explain(c.log, c.modulesByName())

	return out, c.log, nil
}

// modulesByName exposes the resolved style module under its addressable key,
// plus "engine" for the engine package's own diagnostics (compile/link/
// rewrite/exec E1xx/E2xx/W1xx codes), enough for logdoc.Explain's lookup.
func (c *Converter) modulesByName() map[string]styleloader.StyleModule {
	return map[string]styleloader.StyleModule{
		key3(c.fromLang, c.toLang, c.style): c.styleModule,
		"engine":                            engineMessages{},
	}
}
