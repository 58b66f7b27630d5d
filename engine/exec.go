package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/dpotapov/lexorgo/dom"
	"github.com/dpotapov/lexorgo/logdoc"
)

// execContext holds the reentrancy stacks and shared namespace used by
// embedded execution (spec §4.7). It replaces the original's module-level
// singletons (get_lexor_namespace/get_current_node/include.converter) with
// fields reified onto the owning Converter, so two Converters never share
// state (spec §5 "Shared resources", §9 Design Notes).
type execContext struct {
	currentNode []*dom.Node
	converters  []*Converter
	namespace   map[string]any
}

// IncludeOptions mirrors the keyword set accepted by the original's
// include() helper (spec §4.7).
type IncludeOptions struct {
	ParserLang      string
	ParserStyle     string
	ParserDefaults  map[string]any
	ConvertFrom     string
	ConvertTo       string
	ConvertStyle    string
	ConvertDefaults map[string]any
	Adopt           bool
}

func defaultIncludeOptions() IncludeOptions {
	return IncludeOptions{ParserStyle: "default", ConvertStyle: "default", Adopt: true}
}

// ExecExpr runs the expr-lang program held in n.Data, the Go-idiomatic
// substitute for the original's exec(node.data, namespace) (spec §4.7,
// "the one deliberate redesign"). idNum identifies the PI for diagnostics.
// p parses whatever text the program accumulates via print() — the analog
// of the original capturing sys.stdout during exec() and re-parsing it —
// and the parsed fragment is spliced in before the PI node exactly as
// parser.doc was in the original. failOpen controls whether a run error is
// surfaced in-tree as a visible error element (true) or only logged.
func (c *Converter) ExecExpr(n *dom.Node, idNum int, p Parser, failOpen bool) (*dom.Node, error) {
	c.execCtx.currentNode = append(c.execCtx.currentNode, n)
	c.execCtx.converters = append(c.execCtx.converters, c)

	var stdout strings.Builder

	ns := c.execCtx.namespace
	if _, ok := ns["__NAMESPACE__"]; !ok {
		ns["__NAMESPACE__"] = ns
		ns["import_module"] = c.importModule
		ns["include"] = c.include
		ns["echo"] = c.echo
	}
	ns["print"] = func(args ...any) (any, error) {
		for _, a := range args {
			fmt.Fprint(&stdout, a)
		}
		return nil, nil
	}
	ns["__FILE__"] = c.currentURI()
	ns["__DIR__"] = filepath.Dir(c.currentURI())
	ns["__NODE__"] = n

	_, runErr := expr.Eval(n.Data, ns)

	if runErr != nil {
		c.Msg("engine", "E100", n, []any{idNum}, "")
		if failOpen {
			errNode := dom.NewElement("expr_pi_error")
			errNode.SetAttr("section", fmt.Sprintf("%d", idNum))
			errNode.AppendChild(dom.NewCData(runErr.Error()))
			n.Parent.InsertBefore(errNode, n)
		}
	} else if text := stdout.String(); text != "" && p != nil {
		printed, plog, perr := p.Parse(text, c.currentURI())
		if perr != nil {
			c.Msg("engine", "E100", n, []any{idNum}, "")
		} else {
			n.Parent.ExtendBefore(n, printed)
			if plog != nil && len(plog.Children()) > 0 {
				c.Msg("engine", "W101", n, []any{idNum}, "")
				logdoc.Merge(c.log, plog, true)
				c.Msg("engine", "W102", n, []any{idNum}, "")
			}
		}
	}

	newNode := n.Next()
	n.Parent.RemoveChild(n)

	c.execCtx.currentNode = c.execCtx.currentNode[:len(c.execCtx.currentNode)-1]
	c.execCtx.converters = c.execCtx.converters[:len(c.execCtx.converters)-1]

	if len(c.execCtx.converters) > 0 {
		top := c.execCtx.converters[len(c.execCtx.converters)-1]
		ns["__FILE__"] = top.currentURI()
		ns["__DIR__"] = filepath.Dir(top.currentURI())
		ns["__NODE__"] = c.execCtx.currentNode[len(c.execCtx.currentNode)-1]
	} else {
		ns["__FILE__"] = nil
		ns["__DIR__"] = nil
		ns["__NODE__"] = nil
	}

	return newNode, nil
}

// currentURI returns the URI of the document this Converter is in the
// middle of converting, the Go analog of the original's
// include.converter[-1].doc[-1].uri.
func (c *Converter) currentURI() string {
	if c.doc == nil {
		return ""
	}
	return c.doc.URI
}

// echo is the Go-idiomatic substitute for the original's module-level echo()
// helper: it inserts a value (a string, a *dom.Node, or a slice of either)
// immediately before the currently-executing PI node.
func (c *Converter) echo(v any) (any, error) {
	if len(c.execCtx.currentNode) == 0 {
		return nil, fmt.Errorf("engine: echo called outside embedded execution")
	}
	crt := c.execCtx.currentNode[len(c.execCtx.currentNode)-1]

	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		crt.Parent.InsertBefore(dom.NewText(val), crt)
	case *dom.Node:
		if val.Kind == dom.KindFragment || val.Kind == dom.KindDocument {
			crt.Parent.ExtendBefore(crt, val)
		} else {
			crt.Parent.InsertBefore(val, crt)
		}
	case []any:
		for _, item := range val {
			if _, err := c.echo(item); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("engine: echo: unsupported value %T", v)
	}
	return nil, nil
}

// include is the Go-idiomatic substitute for the original's module-level
// include() helper: it reads input relative to the currently-converting
// document (unless absolute), parses it, optionally converts it, and
// splices the result before the currently-executing PI node.
func (c *Converter) include(inputFile string, keywords map[string]any) (any, error) {
	if len(c.execCtx.currentNode) == 0 {
		return nil, fmt.Errorf("engine: include called outside embedded execution")
	}
	crt := c.execCtx.currentNode[len(c.execCtx.currentNode)-1]

	opts := defaultIncludeOptions()
	applyIncludeKeywords(&opts, keywords)

	if !filepath.IsAbs(inputFile) {
		inputFile = filepath.Join(filepath.Dir(c.currentURI()), inputFile)
	}
	if opts.ParserLang == "" {
		opts.ParserLang = extLang[filepath.Ext(inputFile)]
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, &IncludeIOError{Path: inputFile, Err: err}
	}

	p, err := c.parserFactory(opts.ParserLang, opts.ParserStyle, opts.ParserDefaults)
	if err != nil {
		return nil, fmt.Errorf("engine: include: resolve parser: %w", err)
	}
	parsed, plog, err := p.Parse(string(data), inputFile)
	if err != nil {
		return nil, fmt.Errorf("engine: include: parse %s: %w", inputFile, err)
	}
	if plog != nil && len(plog.Children()) > 0 {
		logdoc.Merge(c.log, plog, true)
	}

	doc := parsed
	if opts.ConvertTo != "" {
		from := opts.ConvertFrom
		if from == "" {
			from = opts.ParserLang
		}
		nested, err := NewConverter(from, opts.ConvertTo, opts.ConvertStyle, opts.ConvertDefaults, c.loader, c.parserFactory, c.logger)
		if err != nil {
			return nil, fmt.Errorf("engine: include: build nested converter: %w", err)
		}
		converted, clog, err := nested.Convert(parsed)
		if err != nil {
			return nil, fmt.Errorf("engine: include: convert: %w", err)
		}
		if clog != nil && len(clog.Children()) > 0 {
			logdoc.Merge(c.log, clog, true)
		}
		doc = converted
	}

	if opts.Adopt {
		crt.Parent.ExtendBefore(crt, doc)
	} else {
		crt.Parent.InsertBefore(doc, crt)
	}
	return nil, nil
}

func applyIncludeKeywords(opts *IncludeOptions, keywords map[string]any) {
	if keywords == nil {
		return
	}
	if v, ok := keywords["parser_lang"].(string); ok {
		opts.ParserLang = v
	}
	if v, ok := keywords["parser_style"].(string); ok {
		opts.ParserStyle = v
	}
	if v, ok := keywords["parser_defaults"].(map[string]any); ok {
		opts.ParserDefaults = v
	}
	if v, ok := keywords["convert_from"].(string); ok {
		opts.ConvertFrom = v
	}
	if v, ok := keywords["convert_to"].(string); ok {
		opts.ConvertTo = v
	}
	if v, ok := keywords["convert_style"].(string); ok {
		opts.ConvertStyle = v
	}
	if v, ok := keywords["convert_defaults"].(map[string]any); ok {
		opts.ConvertDefaults = v
	}
	if v, ok := keywords["adopt"].(bool); ok {
		opts.Adopt = v
	}
}

// importModule is the deliberate deviation from the original's
// import_module(): Go cannot dynamically load arbitrary source the way
// imp.load_source does, so this resolves a pre-registered expr-lang
// environment fragment from ExprModules, keyed by the same path convention
// the original uses for its .py modules (spec §9, DESIGN.md).
func (c *Converter) importModule(modPath string) (any, error) {
	mod, ok := ExprModules[modPath]
	if !ok {
		return nil, fmt.Errorf("engine: import_module: unregistered module %q", modPath)
	}
	return mod, nil
}

// ExprModules is the in-process registry importModule resolves against. A
// host embedding this engine registers named environment fragments here
// ahead of time instead of shipping loadable .py-equivalent source files.
var ExprModules = map[string]map[string]any{}
