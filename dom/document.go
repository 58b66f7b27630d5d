package dom

// Document is a thin view over a Document-kind Node's document-only fields,
// returned by the parser and threaded through the converter. The Node itself
// carries the data; Document exists so callers get named field access
// without retyping Node everywhere a document specifically is expected.
type Document struct {
	*Node
}

// AsDocument wraps n, which must be of KindDocument, as a Document.
func AsDocument(n *Node) *Document {
	if n.Kind != KindDocument {
		panic("dom: AsDocument called on a non-Document Node")
	}
	return &Document{Node: n}
}

// LogDocument is a Document specialized as a diagnostic sink: its children
// are Void message nodes (see the logdoc package), and it carries two side
// maps used to later render human-readable explanations.
type LogDocument struct {
	*Node

	// Modules records the name of every module that emitted a message. The
	// values carry no data; logdoc.Explain looks each name up in the module
	// table it is given to read that module's message tables.
	Modules map[string]any

	// Explanation maps an emitting module name to its rendered explanation.
	Explanation map[string]string
}

// NewLogDocument creates an empty log document.
func NewLogDocument(uri string) *LogDocument {
	return &LogDocument{
		Node:        NewDocument(uri, "lexor", "log"),
		Modules:     make(map[string]any),
		Explanation: make(map[string]string),
	}
}
