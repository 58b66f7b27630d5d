package directive

import (
	"testing"

	"github.com/dpotapov/lexorgo/dom"
	"github.com/stretchr/testify/require"
)

type fakeHost struct{}

func (fakeHost) Msg(string, string, *dom.Node, []any, string) {}

type wrapDirective struct {
	BaseDirective
	name string
}

func (d wrapDirective) Name() string { return d.name }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	d, err := r.Register(fakeHost{}, func(Host) (Directive, error) {
		return wrapDirective{name: "wrap"}, nil
	}, false)
	require.NoError(t, err)
	require.Equal(t, "wrap", d.Name())
	require.Equal(t, 1, r.Len())

	got, ok := r.Lookup("wrap")
	require.True(t, ok)
	require.Equal(t, d, got)
}

func TestRegistry_Register_MissingName(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register(fakeHost{}, func(Host) (Directive, error) {
		return wrapDirective{name: ""}, nil
	}, false)
	require.ErrorIs(t, err, ErrMissingDirectiveName)
}

func TestRegistry_Register_DuplicateName(t *testing.T) {
	r := NewRegistry()
	factory := func(Host) (Directive, error) { return wrapDirective{name: "x"}, nil }
	_, err := r.Register(fakeHost{}, factory, false)
	require.NoError(t, err)

	_, err = r.Register(fakeHost{}, factory, false)
	require.ErrorIs(t, err, ErrDuplicateDirective)
}

func TestRegistry_Register_OverrideAllowsDuplicate(t *testing.T) {
	r := NewRegistry()
	factory := func(Host) (Directive, error) { return wrapDirective{name: "x"}, nil }
	_, err := r.Register(fakeHost{}, factory, false)
	require.NoError(t, err)

	_, err = r.Register(fakeHost{}, factory, true)
	require.NoError(t, err)
}

func TestBaseDirective_Defaults(t *testing.T) {
	var b BaseDirective
	require.Equal(t, RestrictElement, b.Restrict())
	require.True(t, b.Copy())
	require.True(t, b.CopyChildren())
	require.True(t, b.Transclude())
	require.False(t, b.Remove())
	require.False(t, b.Replace())
	require.False(t, b.Terminal())
	require.False(t, b.Require())
	require.Equal(t, 0, b.Priority())
	require.Equal(t, "", b.Template())
}
