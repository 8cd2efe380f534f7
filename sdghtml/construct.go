package sdghtml

import (
	"strconv"
)

// NewElement returns `<name attrs>content</name>`. Attributes are applied in sorted key order.
func NewElement(name string, attrs map[string]string, content ...Content) *Element {
	el := NewEmptyElement(name, attrs)
	el.SetContent(content)
	return el
}

// NewEmptyElement returns `<name attrs>` without closing tag, as used for void elements.
func NewEmptyElement(name string, attrs map[string]string) *Element {
	return &Element{Opening: NewOpeningTag(name, attrs)}
}

// NewDocument returns a document made of a DOCTYPE declaration and root.
func NewDocument(root *Element) *Document {
	return &Document{Entries: []Content{DocumentType(), NewText("\n"), root, NewText("\n")}}
}

// DocumentType returns `<!DOCTYPE html>`.
func DocumentType() *Element {
	el := NewEmptyElement("!DOCTYPE", nil)
	SetBooleanAttribute(el, "html")
	return el
}

// HTML returns the root element. The lang and dir attributes are set from loc if it is not nil.
func HTML(loc *Localization, head, body *Element) *Element {
	attrs := map[string]string{}
	if loc != nil {
		attrs["dir"] = loc.Direction.String()
		attrs["lang"] = loc.Code
	}
	return NewElement("html", attrs, head, body)
}

func Article(attrs map[string]string, content ...Content) *Element {
	return NewElement("article", attrs, content...)
}

func Body(attrs map[string]string, content ...Content) *Element {
	return NewElement("body", attrs, content...)
}

// Division returns a <div> element.
func Division(attrs map[string]string, content ...Content) *Element {
	return NewElement("div", attrs, content...)
}

func Section(attrs map[string]string, content ...Content) *Element {
	return NewElement("section", attrs, content...)
}

// Navigation returns a <nav> element.
func Navigation(attrs map[string]string, content ...Content) *Element {
	return NewElement("nav", attrs, content...)
}

// Paragraph returns a <p> element.
func Paragraph(attrs map[string]string, content ...Content) *Element {
	return NewElement("p", attrs, content...)
}

func Span(attrs map[string]string, content ...Content) *Element {
	return NewElement("span", attrs, content...)
}

// ListItem returns an <li> element.
func ListItem(attrs map[string]string, content ...Content) *Element {
	return NewElement("li", attrs, content...)
}

// UnorderedList returns a <ul> element containing items.
func UnorderedList(attrs map[string]string, items ...*Element) *Element {
	content := make([]Content, len(items))
	for i, item := range items {
		content[i] = item
	}
	return NewElement("ul", attrs, content...)
}

// Heading returns an <h1> to <h6> element. Levels outside 1–6 are clamped.
func Heading(level int, attrs map[string]string, content ...Content) *Element {
	level = min(max(level, 1), 6)
	return NewElement("h"+strconv.Itoa(level), attrs, content...)
}

// LineBreak returns `<br>`.
func LineBreak() *Element {
	return NewEmptyElement("br", nil)
}

// Link returns an <a> element pointing at url.
func Link(url string, attrs map[string]string, content ...Content) *Element {
	el := NewElement("a", attrs, content...)
	SetAttribute(el, "href", url)
	return el
}

// Title returns a <title> element.
func Title(text string) *Element {
	return NewElement("title", nil, NewText(text))
}

// Encoding returns `<meta charset="utf-8">`.
func Encoding() *Element {
	return NewEmptyElement("meta", map[string]string{"charset": "utf-8"})
}

// Author returns the author metadata element.
func Author(name string) *Element {
	return NewEmptyElement("meta", map[string]string{"name": "author", "content": name})
}

func Description(text string) *Element {
	return NewEmptyElement("meta", map[string]string{"name": "description", "content": text})
}

func Keywords(text string) *Element {
	return NewEmptyElement("meta", map[string]string{"name": "keywords", "content": text})
}

// CanonicalLink returns `<link href="url" rel="canonical">`.
func CanonicalLink(url string) *Element {
	return NewEmptyElement("link", map[string]string{"href": url, "rel": "canonical"})
}

// Stylesheet returns `<link href="url" rel="stylesheet">`.
func Stylesheet(url string) *Element {
	return NewEmptyElement("link", map[string]string{"href": url, "rel": "stylesheet"})
}

// Redirect returns a meta refresh element sending the browser to target immediately.
func Redirect(target string) *Element {
	return NewEmptyElement("meta", map[string]string{
		"http-equiv": "refresh",
		"content":    "0; url=" + target,
	})
}

// Metadata describes the contents of a <head> element.
type Metadata struct {
	Title       string
	Canonical   string
	Author      *Element
	Description string
	Keywords    string
	// CSS holds stylesheet URLs in order.
	CSS []string
	// Extra elements are appended after the standard ones.
	Extra []*Element
}

// Head returns a <head> element for m. Empty fields are left out.
func Head(m Metadata) *Element {
	content := []Content{Encoding(), Title(m.Title)}
	if m.Canonical != "" {
		content = append(content, CanonicalLink(m.Canonical))
	}
	if m.Author != nil {
		content = append(content, m.Author.Clone())
	}
	if m.Description != "" {
		content = append(content, Description(m.Description))
	}
	if m.Keywords != "" {
		content = append(content, Keywords(m.Keywords))
	}
	for _, css := range m.CSS {
		content = append(content, Stylesheet(css))
	}
	for _, el := range m.Extra {
		content = append(content, el)
	}
	return NewElement("head", nil, content...)
}
