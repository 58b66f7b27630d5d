package engine_test

import (
	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/styleloader"
)

// testStyleModule is a minimal styleloader.StyleModule wrapping a fixed
// directive set, used to exercise Converter end-to-end without a real
// style package.
type testStyleModule struct {
	styleloader.BaseStyleModule
	directives []directive.Factory
}

func factoryFor(d directive.Directive) directive.Factory {
	return func(directive.Host) (directive.Directive, error) { return d, nil }
}

func (m testStyleModule) Repository() []directive.Factory { return m.directives }

func (m testStyleModule) Info() styleloader.ModuleInfo {
	return styleloader.ModuleInfo{Lang: "test", Type: "converter", Style: "default"}
}

func newTestLoader(directives ...directive.Directive) *styleloader.Registry {
	factories := make([]directive.Factory, len(directives))
	for i, d := range directives {
		factories[i] = factoryFor(d)
	}
	reg := styleloader.NewRegistry()
	reg.Register("test", "out", "default", testStyleModule{directives: factories})
	return reg
}
