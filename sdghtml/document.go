package sdghtml

import (
	"strings"
)

// Document is the top-level content list of a source file, typically a DOCTYPE declaration
// followed by the html element.
type Document struct {
	Entries []Content
}

func (d *Document) Content() []Content { return d.Entries }

func (d *Document) SetContent(list []Content) { d.Entries = list }

func (d *Document) Source() string { return sourceOf(d) }

func (d *Document) Children() []Node { return contentNodes(d.Entries) }

func (d *Document) writeTo(sb *strings.Builder) { writeContent(sb, d.Entries) }

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{Entries: CloneContent(d.Entries)}
}

// Root returns the first top-level element that is not a declaration (its name does not start
// with '!'), or nil.
func (d *Document) Root() *Element {
	for _, c := range d.Entries {
		if el, ok := c.(*Element); ok && !strings.HasPrefix(el.Name(), "!") {
			return el
		}
	}
	return nil
}
