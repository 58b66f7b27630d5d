// Package styleloader resolves a style module for a given
// (fromlang, tolang, style) triple and exposes its directive repository and
// optional lifecycle hooks, mirroring spec §4.2 / §6.
package styleloader

import (
	"errors"
	"fmt"

	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/dom"
)

// ErrUnknownStyleModule is returned by a Loader when no module is registered
// for the requested (from, to, style) triple.
var ErrUnknownStyleModule = errors.New("styleloader: unknown style module")

// ModuleInfo mirrors the INFO metadata a style module exports (spec §6).
type ModuleInfo struct {
	Version        string
	Lang           string
	ToLang         string
	Type           string
	Description    string
	Author         string
	AuthorEmail    string
	URL            string
	Path           string
	License        string
	Style          string
	Ver             string
}

// StyleModule is a loadable unit providing a directive repository and
// optional final/pre-walk hooks and message tables.
type StyleModule interface {
	// Repository returns the ordered sequence of directive factories the
	// converter should register for this style.
	Repository() []directive.Factory

	// InitConversion is called before the final rewrite walk, if non-nil.
	InitConversion(host directive.Host, doc *dom.Node) error

	// Convert is called once after the final rewrite walk completes, if
	// non-nil.
	Convert(host directive.Host, doc *dom.Node) error

	// Messages returns the code->format-string table and the ordered list
	// of long-form explanations used to render human-readable diagnostics.
	Messages() (codes map[string]string, explanations []string)

	Info() ModuleInfo
}

// BaseStyleModule supplies no-op InitConversion/Convert/Messages so concrete
// style modules only need to implement Repository and Info.
type BaseStyleModule struct{}

func (BaseStyleModule) InitConversion(directive.Host, *dom.Node) error { return nil }
func (BaseStyleModule) Convert(directive.Host, *dom.Node) error        { return nil }
func (BaseStyleModule) Messages() (map[string]string, []string)        { return nil, nil }

// Loader resolves a StyleModule for a (fromlang, tolang, style) triple.
type Loader interface {
	Load(fromlang, tolang, style string) (StyleModule, error)
}

// LoaderFunc allows a plain function to act as a Loader, mirroring the
// teacher's ImporterFunc pattern for Component imports.
type LoaderFunc func(fromlang, tolang, style string) (StyleModule, error)

func (f LoaderFunc) Load(fromlang, tolang, style string) (StyleModule, error) {
	return f(fromlang, tolang, style)
}

// Registry is the default in-process Loader: a style module keyed
// "<from>-converter-<to>-<style>" (or "<from>-converter-<style>" when to is
// empty, for within-language conversions), populated ahead of time with
// Register.
type Registry struct {
	modules map[string]StyleModule
}

var _ Loader = (*Registry)(nil)

// NewRegistry creates an empty style module Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]StyleModule)}
}

// Register adds m under the (fromlang, tolang, style) key.
func (r *Registry) Register(fromlang, tolang, style string, m StyleModule) {
	r.modules[key(fromlang, tolang, style)] = m
}

// Load implements Loader.
func (r *Registry) Load(fromlang, tolang, style string) (StyleModule, error) {
	m, ok := r.modules[key(fromlang, tolang, style)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStyleModule, key(fromlang, tolang, style))
	}
	return m, nil
}

func key(fromlang, tolang, style string) string {
	if tolang == "" {
		return fmt.Sprintf("%s-converter-%s", fromlang, style)
	}
	return fmt.Sprintf("%s-converter-%s-%s", fromlang, tolang, style)
}
