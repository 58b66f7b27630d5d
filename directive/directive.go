// Package directive defines the NodeConverter contract: the unit of
// rewriting rule that the converter matches against element names,
// attribute names, or (reserved) classes, and fires through a small set of
// lifecycle hooks as the tree is compiled, linked, and rewritten.
package directive

import "github.com/dpotapov/lexorgo/dom"

// Restrict is a bitset selecting what a Directive's Name is matched against.
type Restrict int

const (
	// RestrictElement matches Name against an Element/Void node's tag.
	RestrictElement Restrict = 1 << iota
	// RestrictAttribute matches Name against any attribute key on an
	// Element/Void node, regardless of the attribute's value.
	RestrictAttribute
	// RestrictClass is reserved for class-based matching; accepted by the
	// registry and matcher but never produces a match (spec §4.3 rule 5).
	RestrictClass
)

func (r Restrict) Has(flag Restrict) bool { return r&flag != 0 }

// Host is the minimal surface of the owning converter a Directive needs:
// enough to log a diagnostic message against the document it belongs to.
// engine.Converter implements this; directive does not import engine so
// that engine may import directive without a cycle.
type Host interface {
	Msg(module, code string, node *dom.Node, arg []any, uri string)
}

// MatchInfo is the bag produced alongside a node's ordered match list.
type MatchInfo struct {
	// Remove lists the directive names matched on this node that declared
	// Remove()==true.
	Remove []string
}

// Match pairs a matched directive's name with its priority, in the order
// the matcher produced (priority descending, element before attribute).
type Match struct {
	Name     string
	Priority int
}

// Directive is a single named transformation rule. Every hook is optional in
// spirit: BaseDirective supplies no-op defaults so concrete directives only
// override what they need.
type Directive interface {
	Name() string
	Restrict() Restrict
	Priority() int

	// Template is source text parsed when the directive matches; see
	// TemplateOptions for the options passed to that parse. The parsed
	// result is cached on the directive instance (not the registry) only
	// when the directive also implements TemplateCache; otherwise it is
	// parsed again on every match.
	Template() string
	TemplateOptions() map[string]any

	Remove() bool
	Replace() bool
	Transclude() bool
	Terminal() bool
	Require() bool
	Copy() bool
	CopyChildren() bool

	// Compile is invoked once per matched directive during the compile
	// phase with the instantiated template clone (nil if Template()=="").
	Compile(tmplClone *dom.Node, info *MatchInfo) error

	// PreLink/PostLink fire during the link phase on the output node, in
	// the node's matched-directive order (descending priority); PreLink
	// top-down across nodes, PostLink bottom-up, per spec §4.5.
	PreLink(n *dom.Node) error
	PostLink(n *dom.Node) error

	// Start/End fire during the final rewrite walk, Start on descent and
	// End on ascent. Start may return a substitute node that becomes the
	// current output node; the node End returns is not used by the walk.
	Start(n *dom.Node) (*dom.Node, error)
	End(n *dom.Node) (*dom.Node, error)
}

// Factory constructs a Directive bound to the owning converter, mirroring
// NodeConverter.__init__(self, converter) in the original.
type Factory func(h Host) (Directive, error)
