package sdghtml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseElement(t *testing.T, src string) *Element {
	t.Helper()
	list, err := ParseContent(src)
	require.NoError(t, err)
	require.Len(t, list, 1)
	el, ok := list[0].(*Element)
	require.True(t, ok, "entry is %T", list[0])
	return el
}

func TestElementAttributes(t *testing.T) {
	el := parseElement(t, `<a  href='x.html' title="a &amp; b" download>y</a>`)

	v, ok := LookupAttribute(el, "title")
	assert.True(t, ok)
	assert.Equal(t, "a & b", v)

	v, ok = LookupAttribute(el, "download")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = LookupAttribute(el, "missing")
	assert.False(t, ok)

	SetAttribute(el, "href", `it's.html`)
	assert.Equal(t, `<a  href='it&#39;s.html' title="a &amp; b" download>y</a>`, el.Source())

	SetAttribute(el, "download", "f.pdf")
	SetAttribute(el, "id", "z")
	assert.Equal(t, `<a  href='it&#39;s.html' title="a &amp; b" download="f.pdf" id="z">y</a>`, el.Source())

	SetBooleanAttribute(el, "id")
	RemoveAttribute(el, "title")
	assert.Equal(t, `<a  href='it&#39;s.html' download="f.pdf" id>y</a>`, el.Source())

	assert.Equal(t, map[string]string{"href": "it's.html", "download": "f.pdf", "id": ""}, AttributeMap(el))

	SetAttributeMap(el, map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, `<a a="1" b="2">y</a>`, el.Source())
}

func TestElementClasses(t *testing.T) {
	el := parseElement(t, `<p class=" a  b ">x</p>`)
	assert.Equal(t, []string{"a", "b"}, ClassList(el))

	PrependClass(el, "b")
	assert.Equal(t, []string{"a", "b"}, ClassList(el))

	PrependClass(el, "c")
	assert.Equal(t, `<p class="c a b">x</p>`, el.Source())
}

func TestElementContent(t *testing.T) {
	el := parseElement(t, "<br/>")
	assert.True(t, el.IsEmpty())
	assert.Nil(t, el.Content())

	el.Append(NewText("x"))
	assert.False(t, el.IsEmpty())
	assert.Equal(t, "<br>x</br>", el.Source())

	el.SetName("span")
	assert.Equal(t, "<span>x</span>", el.Source())

	var c Container = &Document{}
	c.SetContent([]Content{el})
	assert.Equal(t, "<span>x</span>", c.(*Document).Source())
}

func TestElementClone(t *testing.T) {
	el := parseElement(t, `<div id="a"><p>x</p><!--c--></div>`)
	c := el.Clone()
	SetAttribute(c, "id", "b")
	c.Content()[0].(*Element).SetName("q")

	assert.Equal(t, `<div id="a"><p>x</p><!--c--></div>`, el.Source())
	assert.Equal(t, `<div id="b"><q>x</q><!--c--></div>`, c.Source())
}

func TestTextEscaping(t *testing.T) {
	txt := NewText("a < b & c")
	assert.Equal(t, "a &lt; b &amp; c", txt.Source())
	assert.Equal(t, "a < b & c", txt.Text())
	assert.False(t, txt.IsWhitespace())
	assert.True(t, NewText(" \n").IsWhitespace())
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{"", "plain", `say "hi"`, "it's", "tab\there", "ünïcödé", "a=b; c"}
	for _, s := range inputs {
		assert.Equal(t, s, UnescapeAttribute(EscapeAttribute(s)))
		assert.Equal(t, s, UnescapeText(EscapeText(s)))
	}
	assert.Equal(t, "&lt;&amp;&gt;&quot;&#39;", EscapeAttribute(`<&>"'`))
	assert.Equal(t, "©", UnescapeText("&copy;"))
}

func TestWalk(t *testing.T) {
	doc, err := Parse("<a><b>x</b><c><b>y</b></c></a>")
	require.NoError(t, err)

	var names []string
	Walk(doc, func(n Node) bool {
		if el, ok := n.(*Element); ok {
			names = append(names, el.Name())
			return el.Name() != "c"
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Len(t, Elements(doc, "b"), 2)
	assert.Len(t, Elements(doc, ""), 4)
}

func TestDump(t *testing.T) {
	doc, err := Parse(`<p id="x">hi</p>`)
	require.NoError(t, err)
	out := Dump(doc)
	for _, want := range []string{"Document", "Element <p>", "Attribute id", `AttributeText "x"`, `Text "hi"`, `ElementName "p"`} {
		assert.True(t, strings.Contains(out, want), "dump lacks %q:\n%s", want, out)
	}
}
