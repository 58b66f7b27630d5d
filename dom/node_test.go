package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNode_AppendChildAndIndex(t *testing.T) {
	root := NewElement("a")
	b := NewElement("b")
	c := NewElement("c")
	root.AppendChild(b)
	root.AppendChild(c)

	require.Equal(t, 0, b.Index())
	require.Equal(t, 1, c.Index())
	require.Same(t, root, b.Parent)
	require.Same(t, c, b.Next())
	require.Nil(t, c.Next())
}

func TestNode_AppendChild_MovesFromOldParent(t *testing.T) {
	oldParent := NewElement("old")
	newParent := NewElement("new")
	child := NewElement("child")
	oldParent.AppendChild(child)

	newParent.AppendChild(child)

	require.Empty(t, oldParent.Children())
	require.Same(t, newParent, child.Parent)
}

func TestNode_InsertBefore(t *testing.T) {
	root := NewElement("root")
	b := NewElement("b")
	d := NewElement("d")
	root.AppendChild(b)
	root.AppendChild(d)

	c := NewElement("c")
	root.InsertBefore(c, d)

	got := []string{}
	for _, n := range root.Children() {
		got = append(got, n.Name)
	}
	want := []string{"b", "c", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InsertBefore() order diff (-want +got):\n%s", diff)
	}
}

func TestNode_RemoveChild_ClearsParent(t *testing.T) {
	root := NewElement("root")
	child := NewElement("child")
	root.AppendChild(child)

	root.RemoveChild(child)

	require.Nil(t, child.Parent)
	require.Equal(t, -1, child.Index())
	require.Empty(t, root.Children())
}

func TestNode_RemoveChild_PanicsForNonChild(t *testing.T) {
	a := NewElement("a")
	b := NewElement("b")
	require.Panics(t, func() { a.RemoveChild(b) })
}

func TestNode_Attrs_OrderPreserved(t *testing.T) {
	n := NewElement("p")
	n.SetAttr("z", "1")
	n.SetAttr("a", "2")
	n.SetAttr("z", "3") // update, should not move position

	require.Equal(t, []string{"z", "a"}, n.AttrNames())
	v, ok := n.Attr("z")
	require.True(t, ok)
	require.Equal(t, "3", v)
}

func TestNode_Clone_Deep(t *testing.T) {
	root := NewElement("root")
	root.SetAttr("id", "1")
	child := NewText("hi")
	root.AppendChild(child)

	clone := root.Clone(true)

	require.Nil(t, clone.Parent)
	require.True(t, root.Equal(clone))

	// mutating the clone must not affect the original
	clone.SetAttr("id", "2")
	v, _ := root.Attr("id")
	require.Equal(t, "1", v)
}

func TestNode_Clone_Shallow(t *testing.T) {
	root := NewElement("root")
	root.AppendChild(NewText("hi"))

	clone := root.Clone(false)

	require.Empty(t, clone.Children())
}

func TestNode_Owner(t *testing.T) {
	doc := NewDocument("file.xml", "xml", "default")
	el := NewElement("a")
	doc.AppendChild(el)
	txt := NewText("x")
	el.AppendChild(txt)

	require.Same(t, doc, txt.Owner())
}

func TestNode_Normalize_MergesAdjacentText(t *testing.T) {
	root := NewElement("root")
	root.AppendChild(NewText("foo"))
	root.AppendChild(NewText("bar"))
	root.AppendChild(NewElement("b"))
	root.AppendChild(NewText(""))
	root.AppendChild(NewText("baz"))

	root.Normalize()

	require.Len(t, root.Children(), 3)
	require.Equal(t, "foobar", root.Children()[0].Data)
	require.Equal(t, "b", root.Children()[1].Name)
	require.Equal(t, "baz", root.Children()[2].Data)
}

func TestNode_Normalize_KeepsSoleEmptyText(t *testing.T) {
	root := NewElement("root")
	root.AppendChild(NewText(""))

	root.Normalize()

	require.Len(t, root.Children(), 1)
	require.Equal(t, "", root.Children()[0].Data)
}

func TestNode_Normalize_Idempotent(t *testing.T) {
	root := NewElement("root")
	root.AppendChild(NewText("a"))
	root.AppendChild(NewText("b"))

	root.Normalize()
	first := root.Clone(true)
	root.Normalize()

	require.True(t, first.Equal(root))
}

func TestNode_ExtendChildren(t *testing.T) {
	frag := NewFragment()
	frag.AppendChild(NewText("a"))
	frag.AppendChild(NewText("b"))

	dst := NewElement("dst")
	dst.ExtendChildren(frag)

	require.Empty(t, frag.Children())
	require.Len(t, dst.Children(), 2)
}

func TestNode_ExtendBefore(t *testing.T) {
	dst := NewElement("dst")
	anchor := NewElement("anchor")
	dst.AppendChild(anchor)

	frag := NewFragment()
	frag.AppendChild(NewText("a"))
	frag.AppendChild(NewText("b"))

	dst.ExtendBefore(anchor, frag)

	got := []string{}
	for _, c := range dst.Children() {
		got = append(got, c.Name)
	}
	require.Equal(t, []string{"#text", "#text", "anchor"}, got)
}
