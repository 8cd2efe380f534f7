package sdghtml

import (
	"slices"
	"sort"
	"strings"
)

// Named is implemented by nodes that carry a name.
type Named interface {
	Name() string
	SetName(name string)
}

// Attributed is implemented by nodes that carry an ordered attribute list.
type Attributed interface {
	AttributeList() []*Attribute
	SetAttributeList(list []*Attribute)
}

// Container is implemented by nodes that own a content list.
type Container interface {
	Content() []Content
	SetContent(list []Content)
}

var (
	_ Named      = (*Element)(nil)
	_ Attributed = (*Element)(nil)
	_ Attributed = (*OpeningTag)(nil)
	_ Container  = (*Element)(nil)
	_ Container  = (*Document)(nil)
)

// Continuation is the content and closing tag of a non-empty element.
type Continuation struct {
	Content []Content
	Closing *ClosingTag
}

func (c *Continuation) Source() string { return sourceOf(c) }

func (c *Continuation) Children() []Node {
	return append(contentNodes(c.Content), c.Closing)
}

func (c *Continuation) writeTo(sb *strings.Builder) {
	writeContent(sb, c.Content)
	c.Closing.writeTo(sb)
}

func (c *Continuation) Clone() *Continuation {
	if c == nil {
		return nil
	}
	return &Continuation{
		Content: CloneContent(c.Content),
		Closing: c.Closing.Clone(),
	}
}

// Element is an opening tag optionally followed by a continuation. Elements without a
// continuation are empty: void elements, self-closed tags and the DOCTYPE declaration.
type Element struct {
	Opening      *OpeningTag
	Continuation *Continuation // nil for empty elements
}

// Name returns the element name as written in the opening tag.
func (e *Element) Name() string { return e.Opening.TagName() }

// SetName renames the element in both its opening and closing tag.
func (e *Element) SetName(name string) {
	e.Opening.Name.SetText(name)
	if e.Continuation != nil {
		e.Continuation.Closing.Name.SetText(name)
	}
}

// IsEmpty reports whether the element has no continuation.
func (e *Element) IsEmpty() bool { return e.Continuation == nil }

func (e *Element) AttributeList() []*Attribute { return e.Opening.AttributeList() }

func (e *Element) SetAttributeList(list []*Attribute) { e.Opening.SetAttributeList(list) }

// Content returns the content list, or nil for empty elements.
func (e *Element) Content() []Content {
	if e.Continuation == nil {
		return nil
	}
	return e.Continuation.Content
}

// SetContent replaces the content list. Setting content on an empty element gives it a
// closing tag; the self-closing slash is dropped.
func (e *Element) SetContent(list []Content) {
	if e.Continuation == nil {
		e.Opening.SelfClosing = nil
		e.Continuation = &Continuation{Closing: NewClosingTag(e.Name())}
	}
	e.Continuation.Content = list
}

// Append adds entries to the end of the content list.
func (e *Element) Append(entries ...Content) {
	e.SetContent(append(e.Content(), entries...))
}

func (e *Element) Source() string { return sourceOf(e) }

func (e *Element) Children() []Node {
	if e.Continuation == nil {
		return []Node{e.Opening}
	}
	return []Node{e.Opening, e.Continuation}
}

func (e *Element) writeTo(sb *strings.Builder) {
	e.Opening.writeTo(sb)
	if e.Continuation != nil {
		e.Continuation.writeTo(sb)
	}
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	return &Element{
		Opening:      e.Opening.Clone(),
		Continuation: e.Continuation.Clone(),
	}
}

func (e *Element) cloneContent() Content { return e.Clone() }

// LookupAttribute returns the unescaped value of the named attribute. The second result is
// false if the attribute is absent; an attribute without value yields "", true.
func LookupAttribute(a Attributed, name string) (string, bool) {
	for _, attr := range a.AttributeList() {
		if attr.Key() == name {
			v, _ := attr.Val()
			return v, true
		}
	}
	return "", false
}

// HasAttribute reports whether the named attribute is present.
func HasAttribute(a Attributed, name string) bool {
	_, ok := LookupAttribute(a, name)
	return ok
}

// SetAttribute sets the named attribute to value, appending it if absent.
func SetAttribute(a Attributed, name, value string) {
	list := a.AttributeList()
	for _, attr := range list {
		if attr.Key() == name {
			if attr.Value == nil {
				attr.Value = NewAttributeValue(value)
			} else {
				attr.Value.SetValue(value)
			}
			return
		}
	}
	a.SetAttributeList(append(list, NewAttribute(name, value)))
}

// SetBooleanAttribute sets the named attribute without a value.
func SetBooleanAttribute(a Attributed, name string) {
	list := a.AttributeList()
	for _, attr := range list {
		if attr.Key() == name {
			attr.Value = nil
			return
		}
	}
	a.SetAttributeList(append(list, NewBooleanAttribute(name)))
}

// RemoveAttribute removes every attribute with the given name.
func RemoveAttribute(a Attributed, name string) {
	list := a.AttributeList()
	if len(list) == 0 {
		return
	}
	a.SetAttributeList(slices.DeleteFunc(slices.Clone(list), func(attr *Attribute) bool {
		return attr.Key() == name
	}))
}

// AttributeMap returns the attributes as a dictionary. Later duplicates win.
func AttributeMap(a Attributed) map[string]string {
	m := make(map[string]string, len(a.AttributeList()))
	for _, attr := range a.AttributeList() {
		v, _ := attr.Val()
		m[attr.Key()] = v
	}
	return m
}

// SetAttributeMap replaces all attributes with the dictionary, in sorted key order.
func SetAttributeMap(a Attributed, m map[string]string) {
	list := make([]*Attribute, 0, len(m))
	for _, k := range sortedKeys(m) {
		list = append(list, NewAttribute(k, m[k]))
	}
	a.SetAttributeList(list)
}

// ClassList returns the whitespace-separated entries of the class attribute.
func ClassList(a Attributed) []string {
	v, _ := LookupAttribute(a, "class")
	return strings.Fields(v)
}

// PrependClass adds class at the front of the class list unless it is already present.
func PrependClass(a Attributed, class string) {
	classes := ClassList(a)
	if slices.Contains(classes, class) {
		return
	}
	SetAttribute(a, "class", strings.Join(append([]string{class}, classes...), " "))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
