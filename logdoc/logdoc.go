// Package logdoc implements the converter's structured diagnostic sink: a
// Document-shaped tree whose children are Void message records.
package logdoc

import (
	"fmt"

	"github.com/dpotapov/lexorgo/dom"
	"github.com/dpotapov/lexorgo/styleloader"
)

// Msg appends a Void message node to log, with attributes module/code/
// node_id/uri/arg as described in spec §4.8. uri falls back to log's own
// URI when empty. The emitting module is recorded in log.Modules.
func Msg(log *dom.LogDocument, module, code string, node *dom.Node, arg []any, uri string) *dom.Node {
	if uri == "" {
		uri = log.URI
	}

	n := dom.NewVoid("msg")
	n.SetAttr("module", module)
	n.SetAttr("code", code)
	n.SetAttr("node_id", nodeID(node))
	n.SetAttr("uri", uri)
	n.SetAttr("arg", formatArg(arg))

	log.Modules[module] = struct{}{}
	log.AppendChild(n)
	return n
}

// Merge appends every message child of src into dst, draining src, and
// unions the Modules/Explanation maps. after selects whether src's messages
// are appended at the end (true) or spliced in before dst's existing
// children (false), matching update_log(log, after) in the original.
func Merge(dst, src *dom.LogDocument, after bool) {
	for m := range src.Modules {
		if _, ok := dst.Modules[m]; !ok {
			dst.Modules[m] = src.Modules[m]
		}
	}
	for m, e := range src.Explanation {
		if _, ok := dst.Explanation[m]; !ok {
			dst.Explanation[m] = e
		}
	}
	if after {
		dst.ExtendChildren(src.Node)
	} else {
		first := (*dom.Node)(nil)
		if children := dst.Children(); len(children) > 0 {
			first = children[0]
		}
		dst.ExtendBefore(first, src.Node)
	}
}

// Explain populates log.Explanation by reading each referenced module's
// Messages() table, matching map_explanations in the original.
func Explain(log *dom.LogDocument, modules map[string]styleloader.StyleModule) {
	for name := range log.Modules {
		mod, ok := modules[name]
		if !ok {
			continue
		}
		_, explanations := mod.Messages()
		if len(explanations) == 0 {
			continue
		}
		log.Explanation[name] = explanations[0]
	}
}

func nodeID(n *dom.Node) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%p", n)
}

func formatArg(arg []any) string {
	if len(arg) == 0 {
		return ""
	}
	return fmt.Sprint(arg)
}
