package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dpotapov/lexorgo/dom"
)

func TestXMLParser_Parse_Basic(t *testing.T) {
	p := XMLParser{Lang: "xml"}

	doc, log, err := p.Parse(`<root a="1"><child>text</child><br/></root>`, "doc.xml")
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Equal(t, dom.KindDocument, doc.Kind)
	require.Len(t, doc.Children(), 1)

	root := doc.Children()[0]
	require.Equal(t, "root", root.Name)
	require.Equal(t, dom.KindElement, root.Kind)
	v, ok := root.Attr("a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	require.Len(t, root.Children(), 2)
	require.Equal(t, "child", root.Children()[0].Name)
	require.Equal(t, dom.KindText, root.Children()[0].Children()[0].Kind)
	require.Equal(t, "br", root.Children()[1].Name)
	require.Equal(t, dom.KindVoid, root.Children()[1].Kind)
}

func TestXMLParser_Parse_CData(t *testing.T) {
	p := XMLParser{}
	doc, _, err := p.Parse(`<root><![CDATA[<raw/>]]></root>`, "")
	require.NoError(t, err)
	root := doc.Children()[0]
	require.Equal(t, dom.KindCData, root.Children()[0].Kind)
	require.Equal(t, "<raw/>", root.Children()[0].Data)
}

func TestXMLWriter_RoundTrip(t *testing.T) {
	p := XMLParser{Lang: "xml"}
	doc, _, err := p.Parse(`<root a="1"><child>hi</child></root>`, "")
	require.NoError(t, err)

	var buf strings.Builder
	w := XMLWriter{Indent: -1}
	require.NoError(t, w.Write(doc, &buf))

	out := buf.String()
	require.Contains(t, out, "<root")
	require.Contains(t, out, `a="1"`)
	require.Contains(t, out, "<child>hi</child>")
}

func TestNewParserFactory_BuildsParserPerLang(t *testing.T) {
	f := NewParserFactory()
	p, err := f("html", "default", nil)
	require.NoError(t, err)
	xp, ok := p.(XMLParser)
	require.True(t, ok)
	require.Equal(t, "html", xp.Lang)
}
