package sdghtml

import (
	"strings"
)

// OpeningTag is `<name attributes>` or, when self-closed, `<name attributes/>`.
type OpeningTag struct {
	LessThan    *Token
	Name        *Token
	Attributes  *Attributes // optional
	SelfClosing *Token      // optional '/' before '>'
	GreaterThan *Token
}

// NewOpeningTag returns an opening tag with the given attributes applied in sorted key order.
func NewOpeningTag(name string, attrs map[string]string) *OpeningTag {
	t := &OpeningTag{
		LessThan:    NewToken(LessThan, ""),
		Name:        NewToken(ElementName, name),
		GreaterThan: NewToken(GreaterThan, ""),
	}
	for _, k := range sortedKeys(attrs) {
		SetAttribute(t, k, attrs[k])
	}
	return t
}

func (t *OpeningTag) TagName() string { return t.Name.Text() }

// IsSelfClosing reports whether the tag ends in `/>`.
func (t *OpeningTag) IsSelfClosing() bool { return t.SelfClosing != nil }

// AttributeList implements Attributed.
func (t *OpeningTag) AttributeList() []*Attribute {
	if t.Attributes == nil {
		return nil
	}
	return t.Attributes.List
}

// SetAttributeList implements Attributed.
func (t *OpeningTag) SetAttributeList(list []*Attribute) {
	if t.Attributes == nil {
		if len(list) == 0 {
			return
		}
		t.Attributes = newAttributes(nil)
	}
	t.Attributes.List = list
}

func (t *OpeningTag) Source() string { return sourceOf(t) }

func (t *OpeningTag) Children() []Node {
	nodes := []Node{t.LessThan, t.Name}
	if t.Attributes != nil {
		nodes = append(nodes, t.Attributes)
	}
	if t.SelfClosing != nil {
		nodes = append(nodes, t.SelfClosing)
	}
	return append(nodes, t.GreaterThan)
}

func (t *OpeningTag) writeTo(sb *strings.Builder) {
	t.LessThan.writeTo(sb)
	t.Name.writeTo(sb)
	if t.Attributes != nil {
		t.Attributes.writeTo(sb)
	}
	if t.SelfClosing != nil {
		t.SelfClosing.writeTo(sb)
	}
	t.GreaterThan.writeTo(sb)
}

func (t *OpeningTag) Clone() *OpeningTag {
	if t == nil {
		return nil
	}
	return &OpeningTag{
		LessThan:    t.LessThan.Clone(),
		Name:        t.Name.Clone(),
		Attributes:  t.Attributes.Clone(),
		SelfClosing: t.SelfClosing.Clone(),
		GreaterThan: t.GreaterThan.Clone(),
	}
}

// ClosingTag is `</name>`.
type ClosingTag struct {
	LessThan    *Token
	Slash       *Token
	Name        *Token
	GreaterThan *Token
}

func NewClosingTag(name string) *ClosingTag {
	return &ClosingTag{
		LessThan:    NewToken(LessThan, ""),
		Slash:       NewToken(Slash, ""),
		Name:        NewToken(ElementName, name),
		GreaterThan: NewToken(GreaterThan, ""),
	}
}

func (t *ClosingTag) TagName() string { return t.Name.Text() }

func (t *ClosingTag) Source() string { return sourceOf(t) }

func (t *ClosingTag) Children() []Node {
	return []Node{t.LessThan, t.Slash, t.Name, t.GreaterThan}
}

func (t *ClosingTag) writeTo(sb *strings.Builder) {
	t.LessThan.writeTo(sb)
	t.Slash.writeTo(sb)
	t.Name.writeTo(sb)
	t.GreaterThan.writeTo(sb)
}

func (t *ClosingTag) Clone() *ClosingTag {
	if t == nil {
		return nil
	}
	return &ClosingTag{
		LessThan:    t.LessThan.Clone(),
		Slash:       t.Slash.Clone(),
		Name:        t.Name.Clone(),
		GreaterThan: t.GreaterThan.Clone(),
	}
}
