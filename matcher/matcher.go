// Package matcher implements the directive matcher: given a node, it
// produces the priority-ordered list of directives that apply to it.
package matcher

import (
	"sort"

	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/dom"
)

// Match examines n against reg and returns the ordered list of directives
// that apply, plus the accompanying info bag (spec §4.3):
//
//  1. If n.Name is a registered directive with RestrictElement, it matches.
//  2. For Element/Void nodes, each attribute name that is a registered
//     directive with RestrictAttribute matches, regardless of its value.
//  3. Matches are sorted by priority descending; at equal priority the
//     element-name match precedes attribute matches, and attributes keep
//     their node's attribute-iteration (insertion) order.
//  4. Any matched directive with Remove()==true adds its name to info.Remove.
//  5. Class-based matching (RestrictClass) is reserved; it never matches.
//
// If the top-priority match is Terminal(), every lower-priority match is
// discarded (spec §9 Open Question: terminal is enforced at match time).
func Match(reg *directive.Registry, n *dom.Node) ([]directive.Match, directive.MatchInfo) {
	var matches []directive.Match
	var info directive.MatchInfo

	if d, ok := reg.Lookup(n.Name); ok && d.Restrict().Has(directive.RestrictElement) {
		matches = append(matches, directive.Match{Name: n.Name, Priority: d.Priority()})
		if d.Remove() {
			info.Remove = append(info.Remove, n.Name)
		}
	}

	if n.IsElementLike() {
		for _, attr := range n.Attrs() {
			d, ok := reg.Lookup(attr.Key)
			if !ok || !d.Restrict().Has(directive.RestrictAttribute) {
				continue
			}
			matches = append(matches, directive.Match{Name: attr.Key, Priority: d.Priority()})
			if d.Remove() {
				info.Remove = append(info.Remove, attr.Key)
			}
		}
	}

	// Stable sort by priority descending preserves the element-before-
	// attribute / attribute-insertion-order tie-break already encoded by
	// the append order above.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority > matches[j].Priority
	})

	if len(matches) > 0 {
		if d, ok := reg.Lookup(matches[0].Name); ok && d.Terminal() {
			matches = matches[:1]
		}
	}

	return matches, info
}
