package matcher

import (
	"testing"

	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/dom"
	"github.com/stretchr/testify/require"
)

type fakeHost struct{}

func (fakeHost) Msg(string, string, *dom.Node, []any, string) {}

type elDirective struct {
	directive.BaseDirective
	name       string
	restrict   directive.Restrict
	priority   int
	remove     bool
	terminal   bool
}

func (d elDirective) Name() string                { return d.name }
func (d elDirective) Restrict() directive.Restrict { return d.restrict }
func (d elDirective) Priority() int                { return d.priority }
func (d elDirective) Remove() bool                 { return d.remove }
func (d elDirective) Terminal() bool               { return d.terminal }

func register(t *testing.T, reg *directive.Registry, d directive.Directive) {
	t.Helper()
	_, err := reg.Register(fakeHost{}, func(directive.Host) (directive.Directive, error) {
		return d, nil
	}, false)
	require.NoError(t, err)
}

func TestMatch_ElementDirective(t *testing.T) {
	reg := directive.NewRegistry()
	register(t, reg, elDirective{name: "wrap", restrict: directive.RestrictElement})

	n := dom.NewElement("wrap")
	matches, info := Match(reg, n)

	require.Equal(t, []directive.Match{{Name: "wrap", Priority: 0}}, matches)
	require.Empty(t, info.Remove)
}

func TestMatch_AttributeDirective_MatchesRegardlessOfValue(t *testing.T) {
	reg := directive.NewRegistry()
	register(t, reg, elDirective{name: "hide", restrict: directive.RestrictAttribute, remove: true})

	n := dom.NewElement("p")
	n.SetAttr("hide", "")

	matches, info := Match(reg, n)

	require.Equal(t, []directive.Match{{Name: "hide", Priority: 0}}, matches)
	require.Equal(t, []string{"hide"}, info.Remove)
}

func TestMatch_RestrictElementNeverMatchesAsAttribute(t *testing.T) {
	reg := directive.NewRegistry()
	register(t, reg, elDirective{name: "foo", restrict: directive.RestrictElement})

	n := dom.NewElement("p")
	n.SetAttr("foo", "x")

	matches, _ := Match(reg, n)
	require.Empty(t, matches)
}

func TestMatch_RestrictAttributeNeverMatchesAsElement(t *testing.T) {
	reg := directive.NewRegistry()
	register(t, reg, elDirective{name: "foo", restrict: directive.RestrictAttribute})

	n := dom.NewElement("foo")
	matches, _ := Match(reg, n)
	require.Empty(t, matches)
}

func TestMatch_PriorityOrdering(t *testing.T) {
	reg := directive.NewRegistry()
	register(t, reg, elDirective{name: "low", restrict: directive.RestrictAttribute, priority: 5})
	register(t, reg, elDirective{name: "high", restrict: directive.RestrictAttribute, priority: 10})

	n := dom.NewElement("p")
	n.SetAttr("low", "")
	n.SetAttr("high", "")

	matches, _ := Match(reg, n)
	require.Equal(t, []directive.Match{
		{Name: "high", Priority: 10},
		{Name: "low", Priority: 5},
	}, matches)
}

func TestMatch_ElementPrecedesAttributeAtEqualPriority(t *testing.T) {
	reg := directive.NewRegistry()
	register(t, reg, elDirective{name: "p", restrict: directive.RestrictElement, priority: 5})
	register(t, reg, elDirective{name: "attr", restrict: directive.RestrictAttribute, priority: 5})

	n := dom.NewElement("p")
	n.SetAttr("attr", "")

	matches, _ := Match(reg, n)
	require.Equal(t, []directive.Match{
		{Name: "p", Priority: 5},
		{Name: "attr", Priority: 5},
	}, matches)
}

func TestMatch_AttributeInsertionOrderTieBreak(t *testing.T) {
	reg := directive.NewRegistry()
	register(t, reg, elDirective{name: "b", restrict: directive.RestrictAttribute, priority: 1})
	register(t, reg, elDirective{name: "a", restrict: directive.RestrictAttribute, priority: 1})

	n := dom.NewElement("p")
	n.SetAttr("b", "")
	n.SetAttr("a", "")

	matches, _ := Match(reg, n)
	require.Equal(t, []directive.Match{
		{Name: "b", Priority: 1},
		{Name: "a", Priority: 1},
	}, matches)
}

func TestMatch_Terminal_TruncatesLowerPriority(t *testing.T) {
	reg := directive.NewRegistry()
	register(t, reg, elDirective{name: "high", restrict: directive.RestrictAttribute, priority: 10, terminal: true})
	register(t, reg, elDirective{name: "low", restrict: directive.RestrictAttribute, priority: 5})

	n := dom.NewElement("p")
	n.SetAttr("high", "")
	n.SetAttr("low", "")

	matches, _ := Match(reg, n)
	require.Equal(t, []directive.Match{{Name: "high", Priority: 10}}, matches)
}
