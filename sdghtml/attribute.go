package sdghtml

import (
	"strings"
)

// AttributeValue is the `="value"` part of an attribute. The value token holds the escaped
// source text.
type AttributeValue struct {
	Equals       *Token
	OpeningQuote *Token
	Text         *Token
	ClosingQuote *Token
}

// NewAttributeValue returns a double-quoted value holding the escaped form of value.
func NewAttributeValue(value string) *AttributeValue {
	return &AttributeValue{
		Equals:       NewToken(Equals, ""),
		OpeningQuote: NewToken(QuotationMark, `"`),
		Text:         NewToken(AttributeText, EscapeAttribute(value)),
		ClosingQuote: NewToken(QuotationMark, `"`),
	}
}

// Value returns the unescaped value.
func (v *AttributeValue) Value() string {
	return UnescapeAttribute(v.Text.Text())
}

// SetValue stores the escaped form of value.
func (v *AttributeValue) SetValue(value string) {
	v.Text.SetText(EscapeAttribute(value))
}

func (v *AttributeValue) Source() string { return sourceOf(v) }

func (v *AttributeValue) Children() []Node {
	return []Node{v.Equals, v.OpeningQuote, v.Text, v.ClosingQuote}
}

func (v *AttributeValue) writeTo(sb *strings.Builder) {
	v.Equals.writeTo(sb)
	v.OpeningQuote.writeTo(sb)
	v.Text.writeTo(sb)
	v.ClosingQuote.writeTo(sb)
}

func (v *AttributeValue) Clone() *AttributeValue {
	if v == nil {
		return nil
	}
	return &AttributeValue{
		Equals:       v.Equals.Clone(),
		OpeningQuote: v.OpeningQuote.Clone(),
		Text:         v.Text.Clone(),
		ClosingQuote: v.ClosingQuote.Clone(),
	}
}

// Attribute is a single attribute inside an opening tag, including the whitespace before it.
type Attribute struct {
	Whitespace *Token
	Name       *Token
	Value      *AttributeValue // nil for attributes without a value
}

// NewAttribute returns ` name="value"`.
func NewAttribute(name, value string) *Attribute {
	a := NewBooleanAttribute(name)
	a.Value = NewAttributeValue(value)
	return a
}

// NewBooleanAttribute returns ` name`, an attribute without a value.
func NewBooleanAttribute(name string) *Attribute {
	return &Attribute{
		Whitespace: NewToken(Whitespace, " "),
		Name:       NewToken(AttributeName, name),
	}
}

// Key returns the attribute name.
func (a *Attribute) Key() string { return a.Name.Text() }

// Val returns the unescaped value and whether the attribute has a value at all.
func (a *Attribute) Val() (string, bool) {
	if a.Value == nil {
		return "", false
	}
	return a.Value.Value(), true
}

func (a *Attribute) Source() string { return sourceOf(a) }

func (a *Attribute) Children() []Node {
	nodes := []Node{a.Whitespace, a.Name}
	if a.Value != nil {
		nodes = append(nodes, a.Value)
	}
	return nodes
}

func (a *Attribute) writeTo(sb *strings.Builder) {
	a.Whitespace.writeTo(sb)
	a.Name.writeTo(sb)
	if a.Value != nil {
		a.Value.writeTo(sb)
	}
}

func (a *Attribute) Clone() *Attribute {
	if a == nil {
		return nil
	}
	return &Attribute{
		Whitespace: a.Whitespace.Clone(),
		Name:       a.Name.Clone(),
		Value:      a.Value.Clone(),
	}
}

// Attributes is the attribute list of an opening tag together with the whitespace that
// follows the last attribute.
type Attributes struct {
	List               []*Attribute
	TrailingWhitespace *Token
}

func newAttributes(list []*Attribute) *Attributes {
	return &Attributes{List: list, TrailingWhitespace: NewToken(Whitespace, "")}
}

func (a *Attributes) Source() string { return sourceOf(a) }

func (a *Attributes) Children() []Node {
	nodes := make([]Node, 0, len(a.List)+1)
	for _, attr := range a.List {
		nodes = append(nodes, attr)
	}
	return append(nodes, a.TrailingWhitespace)
}

func (a *Attributes) writeTo(sb *strings.Builder) {
	for _, attr := range a.List {
		attr.writeTo(sb)
	}
	a.TrailingWhitespace.writeTo(sb)
}

func (a *Attributes) Clone() *Attributes {
	if a == nil {
		return nil
	}
	c := &Attributes{
		List:               make([]*Attribute, len(a.List)),
		TrailingWhitespace: a.TrailingWhitespace.Clone(),
	}
	for i, attr := range a.List {
		c.List[i] = attr.Clone()
	}
	return c
}

func (a *Attributes) index(name string) int {
	for i, attr := range a.List {
		if attr.Key() == name {
			return i
		}
	}
	return -1
}
