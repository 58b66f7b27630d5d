package directive

import "github.com/dpotapov/lexorgo/dom"

// BaseDirective is embedded by concrete directives to get the original's
// class-attribute defaults (restrict="E", copy=True, copy_children=True,
// transclude=True, everything else false/zero) plus no-op hooks, without
// requiring every directive to implement the full interface by hand.
type BaseDirective struct{}

func (BaseDirective) Restrict() Restrict              { return RestrictElement }
func (BaseDirective) Priority() int                    { return 0 }
func (BaseDirective) Template() string                 { return "" }
func (BaseDirective) TemplateOptions() map[string]any  { return nil }
func (BaseDirective) Remove() bool                     { return false }
func (BaseDirective) Replace() bool                    { return false }
func (BaseDirective) Transclude() bool                 { return true }
func (BaseDirective) Terminal() bool                   { return false }
func (BaseDirective) Require() bool                    { return false }
func (BaseDirective) Copy() bool                       { return true }
func (BaseDirective) CopyChildren() bool               { return true }

func (BaseDirective) Compile(*dom.Node, *MatchInfo) error { return nil }
func (BaseDirective) PreLink(*dom.Node) error              { return nil }
func (BaseDirective) PostLink(*dom.Node) error             { return nil }

func (BaseDirective) Start(n *dom.Node) (*dom.Node, error) { return n, nil }
func (BaseDirective) End(n *dom.Node) (*dom.Node, error)   { return n, nil }

var _ Directive = struct {
	BaseDirective
	nameImpl
}{}

// nameImpl is only used to satisfy the Directive interface in the compile-time
// assertion above; BaseDirective alone has no Name() since every concrete
// directive must supply one.
type nameImpl struct{}

func (nameImpl) Name() string { return "" }
