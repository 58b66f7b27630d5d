package dom

// Normalize merges adjacent Text siblings and removes empty Text nodes from
// an otherwise non-empty child sequence (an empty Text node that is the sole
// child is kept). It operates on n's direct children only, matching the
// compile/rewrite walks which call it once per parent as they ascend.
func (n *Node) Normalize() {
	if len(n.children) == 0 {
		return
	}

	merged := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		c.Parent = nil // detach; reattached below via AppendChild semantics
		if c.Kind == KindText && len(merged) > 0 && merged[len(merged)-1].Kind == KindText {
			merged[len(merged)-1].Data += c.Data
			continue
		}
		merged = append(merged, c)
	}

	if len(merged) > 1 {
		kept := merged[:0]
		for _, c := range merged {
			if c.Kind == KindText && c.Data == "" {
				continue
			}
			kept = append(kept, c)
		}
		merged = kept
	}

	n.children = nil
	for _, c := range merged {
		n.AppendChild(c)
	}
}
