package directive

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrMissingDirectiveName is returned by Register when a constructed
// directive's Name() is empty.
var ErrMissingDirectiveName = errors.New("directive: missing directive name")

// ErrDuplicateDirective is returned by Register when a directive's class
// identity or Name() collides with an already-registered one and override
// was not requested.
var ErrDuplicateDirective = errors.New("directive: duplicate directive")

// Registry holds the directives active for one conversion, keyed both by the
// Go type that implements them (the closest analog to the original's class
// name, since Go has no runtime class identity otherwise) and by their
// declared Name().
type Registry struct {
	byType map[reflect.Type]Directive
	byName map[string]Directive
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]Directive),
		byName: make(map[string]Directive),
	}
}

// Register instantiates f against h and adds it to the registry. It rejects
// an empty Name() with ErrMissingDirectiveName, and a colliding type or name
// with ErrDuplicateDirective unless override is true.
func (r *Registry) Register(h Host, f Factory, override bool) (Directive, error) {
	d, err := f(h)
	if err != nil {
		return nil, fmt.Errorf("directive: construct: %w", err)
	}
	if d.Name() == "" {
		return nil, ErrMissingDirectiveName
	}

	typ := reflect.TypeOf(d)
	if !override {
		if _, ok := r.byType[typ]; ok {
			return nil, fmt.Errorf("%w: class %s", ErrDuplicateDirective, typ)
		}
		if _, ok := r.byName[d.Name()]; ok {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateDirective, d.Name())
		}
	}

	r.byType[typ] = d
	r.byName[d.Name()] = d
	return d, nil
}

// Lookup returns the directive registered under the given Name(), if any.
func (r *Registry) Lookup(name string) (Directive, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Len returns the number of distinct directive names registered.
func (r *Registry) Len() int {
	return len(r.byName)
}
