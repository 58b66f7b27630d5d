package logdoc

import (
	"testing"

	"github.com/dpotapov/lexorgo/directive"
	"github.com/dpotapov/lexorgo/dom"
	"github.com/dpotapov/lexorgo/styleloader"
	"github.com/stretchr/testify/require"
)

func TestMsg_FallsBackToDocumentURI(t *testing.T) {
	log := dom.NewLogDocument("doc.xml")

	n := Msg(log, "mymod", "E100", nil, nil, "")

	v, ok := n.Attr("uri")
	require.True(t, ok)
	require.Equal(t, "doc.xml", v)

	code, _ := n.Attr("code")
	require.Equal(t, "E100", code)

	_, ok = log.Modules["mymod"]
	require.True(t, ok)
}

func TestMsg_ExplicitURIWins(t *testing.T) {
	log := dom.NewLogDocument("doc.xml")
	n := Msg(log, "mymod", "E100", nil, nil, "other.xml")
	v, _ := n.Attr("uri")
	require.Equal(t, "other.xml", v)
}

func TestMerge_Monotonic(t *testing.T) {
	dst := dom.NewLogDocument("a.xml")
	Msg(dst, "a", "E1", nil, nil, "")

	src := dom.NewLogDocument("b.xml")
	Msg(src, "b", "E2", nil, nil, "")

	Merge(dst, src, true)

	require.Len(t, dst.Children(), 2)
	require.Contains(t, dst.Modules, "a")
	require.Contains(t, dst.Modules, "b")
	require.Empty(t, src.Children())
}

type fakeModule struct {
	styleloader.BaseStyleModule
}

func (fakeModule) Repository() []directive.Factory { return nil }
func (fakeModule) Messages() (map[string]string, []string) {
	return map[string]string{"E1": "bad thing"}, []string{"explanation of E1"}
}
func (fakeModule) Info() styleloader.ModuleInfo { return styleloader.ModuleInfo{} }

func TestExplain(t *testing.T) {
	log := dom.NewLogDocument("a.xml")
	Msg(log, "mod", "E1", nil, nil, "")

	Explain(log, map[string]styleloader.StyleModule{"mod": fakeModule{}})

	require.Equal(t, "explanation of E1", log.Explanation["mod"])
}
