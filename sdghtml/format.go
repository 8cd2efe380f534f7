package sdghtml

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultAttributeWidth is the length of a serialized attribute list above which the formatter
// places one attribute per line.
const DefaultAttributeWidth = 100

// indentation is the text of one indentation level.
const indentation = " "

// Formatter normalizes whitespace, indentation and attribute order. Formatting a tree twice
// gives the same result as formatting it once.
type Formatter struct {
	// AttributeWidth overrides DefaultAttributeWidth when positive.
	AttributeWidth int
}

// Format formats n in place with the default settings.
func Format(n Node) {
	Formatter{}.Format(n)
}

// Format formats n in place.
func (f Formatter) Format(n Node) {
	f.format(n, 0)
}

func (f Formatter) attributeWidth() int {
	if f.AttributeWidth > 0 {
		return f.AttributeWidth
	}
	return DefaultAttributeWidth
}

func indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(indentation, level)
}

func (f Formatter) format(n Node, level int) {
	switch n := n.(type) {
	case *Token:
		n.Normalize()
	case *Text:
		n.Token.Normalize()
	case *Comment:
		n.Text.Normalize()
		n.Text.SetLeadingWhitespace(" ")
		n.Text.SetTrailingWhitespace(" ")
	case *Attributes:
		f.formatAttributes(n, level)
	case *OpeningTag:
		if n.Attributes != nil {
			f.formatAttributes(n.Attributes, level)
		}
	case *Element:
		if n.Opening.Attributes != nil {
			f.formatAttributes(n.Opening.Attributes, level)
		}
		if n.Continuation != nil {
			n.Continuation.Content = f.formatContent(n.Continuation.Content, level+1, false)
		}
	case *Continuation:
		n.Content = f.formatContent(n.Content, level, false)
	case *Document:
		n.Entries = f.formatContent(n.Entries, level, true)
	}
}

func (f Formatter) formatAttributes(a *Attributes, level int) {
	sort.SliceStable(a.List, func(i, j int) bool {
		return a.List[i].Key() < a.List[j].Key()
	})

	for _, attr := range a.List {
		attr.Whitespace.SetText(" ")
	}
	a.TrailingWhitespace.SetText("")
	if utf8.RuneCountInString(a.Source()) <= f.attributeWidth() {
		return
	}

	for _, attr := range a.List {
		attr.Whitespace.SetText("\n" + indent(level+1))
	}
	a.TrailingWhitespace.SetText("\n" + indent(level))
}

// formatContent lays out a content list whose entries sit at the given level.
func (f Formatter) formatContent(list []Content, level int, document bool) []Content {
	list = mergeText(list)

	inline := len(list) <= 1
	for _, c := range list {
		if _, ok := c.(*Text); !ok {
			inline = false
		}
	}
	if inline {
		for _, c := range list {
			c.(*Text).Token.Normalize()
		}
		return list
	}

	// Every non-text entry gets a text entry on each side to hold the indentation.
	var out []Content
	var pending *Text
	for _, c := range list {
		if t, ok := c.(*Text); ok {
			pending = t
			continue
		}
		if pending == nil {
			pending = NewText("")
		}
		out = append(out, pending, c)
		pending = nil
	}
	if pending == nil {
		pending = NewText("")
	}
	out = append(out, pending)

	for i, c := range out {
		switch c := c.(type) {
		case *Text:
			c.Token.Normalize()
			words := c.Token.Text()
			leading := "\n" + indent(level)
			if i == 0 && document {
				leading = ""
			}
			trailing := "\n" + indent(level)
			if i == len(out)-1 {
				trailing = "\n" + indent(level-1)
			}
			switch {
			case words == "" && i == 0:
				c.Token.SetText(leading)
			case words == "":
				c.Token.SetText(trailing)
			case i == len(out)-1:
				c.Token.SetText(leading + words + trailing)
			case i == 0 && document:
				c.Token.SetText(words + trailing)
			default:
				c.Token.SetText(leading + words + trailing)
			}
		default:
			f.format(c, level)
		}
	}
	return out
}

// mergeText joins adjacent text entries.
func mergeText(list []Content) []Content {
	var out []Content
	for _, c := range list {
		t, ok := c.(*Text)
		if !ok {
			out = append(out, c)
			continue
		}
		if n := len(out); n > 0 {
			if prev, ok := out[n-1].(*Text); ok {
				prev.Token.SetText(prev.Token.Text() + t.Token.Text())
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
