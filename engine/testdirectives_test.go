package engine_test

import (
	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/dom"
)

// testDirective is a bare-bones directive.Directive usable for every engine
// end-to-end scenario: each field overrides the corresponding BaseDirective
// default only when set.
type testDirective struct {
	directive.BaseDirective
	name         string
	restrict     directive.Restrict
	priority     int
	tmpl         string
	tmplOpts     map[string]any
	remove       bool
	replace      bool
	transclude   *bool
	terminal     bool
	compileCalls *int
}

// secondTestDirective is a distinct Go type over testDirective, for tests
// that register two directives in one style module: the registry rejects a
// second directive of an already-registered type.
type secondTestDirective struct{ testDirective }

func (d testDirective) Name() string { return d.name }

// Restrict defaults to RestrictElement, matching BaseDirective's documented
// zero-value default (directive/base.go), since the zero value of the
// restrict field would otherwise match nothing at all.
func (d testDirective) Restrict() directive.Restrict {
	if d.restrict == 0 {
		return directive.RestrictElement
	}
	return d.restrict
}
func (d testDirective) Priority() int { return d.priority }
func (d testDirective) Template() string             { return d.tmpl }
func (d testDirective) TemplateOptions() map[string]any {
	return d.tmplOpts
}
func (d testDirective) Remove() bool  { return d.remove }
func (d testDirective) Replace() bool { return d.replace }
func (d testDirective) Transclude() bool {
	if d.transclude == nil {
		return true
	}
	return *d.transclude
}
func (d testDirective) Terminal() bool { return d.terminal }

// Compile records an invocation via compileCalls, letting tests assert
// whether a directive's match survived terminal truncation without also
// relying on Remove() semantics.
func (d testDirective) Compile(n *dom.Node, info *directive.MatchInfo) error {
	if d.compileCalls != nil {
		*d.compileCalls++
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
