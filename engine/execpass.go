package engine

import "github.com/dpotapov/lexorgo/dom"

// executablePITargets names the PI targets ExecExpr handles. "expr" is the
// Go-idiomatic designation replacing the original's "python" PI target
// (spec §4.7).
var executablePITargets = map[string]bool{"expr": true}

// execPass runs embedded execution over doc before the compile phase. PI
// nodes carry no directive restrict (spec §4.3 only defines Element/
// Attribute/Class matching), so they fall outside directive matching
// entirely; the engine instead walks the input tree directly and expands
// any executable PI it finds in place, exactly as the original's
// exec_python is described as an engine capability rather than a
// NodeConverter hook (spec §4.7/§6).
func (c *Converter) execPass(n *dom.Node, p Parser) error {
	idNum := 0
	return c.execPassWalk(n, p, &idNum)
}

func (c *Converter) execPassWalk(n *dom.Node, p Parser, idNum *int) error {
	for _, child := range append([]*dom.Node{}, n.Children()...) {
		if child.Kind == dom.KindPI && executablePITargets[child.Name] {
			*idNum++
			if _, err := c.ExecExpr(child, *idNum, p, true); err != nil {
				return err
			}
			continue
		}
		if err := c.execPassWalk(child, p, idNum); err != nil {
			return err
		}
	}
	return nil
}
