package directive

import "github.com/dpotapov/lexorgo/dom"

// TemplateCache is implemented by directives that want their Template()
// parsed once and cached on the instance, rather than re-parsed on every
// match (spec §5 "Template cache": scoped to the directive object's
// lifetime, cloned on each use).
type TemplateCache interface {
	CachedTemplate() *dom.Node
	SetCachedTemplate(*dom.Node)
}

// TemplateCacheField is embedded by concrete directives to get a working
// TemplateCache implementation for free.
type TemplateCacheField struct {
	cached *dom.Node
}

func (f *TemplateCacheField) CachedTemplate() *dom.Node { return f.cached }

func (f *TemplateCacheField) SetCachedTemplate(n *dom.Node) { f.cached = n }
