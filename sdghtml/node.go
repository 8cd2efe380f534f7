// Package sdghtml implements a lossless HTML syntax tree.
//
// A parsed tree keeps every byte of the source: whitespace inside tags, quoting style and
// comment text all survive, so Source() of an unmodified tree reproduces the parsed text
// exactly. On top of the tree the package provides a canonical formatter, an unfolder that
// expands pseudo-elements (such as <page> or <localized>) into standard HTML, and a validator
// reporting best-practice diagnostics.
//
// The parser does not implement HTML5 error recovery: tags are never closed implicitly and
// script or style contents are not treated as raw text.
package sdghtml

import (
	"strings"
)

// Node is any construct of the syntax tree. The source text of a node is the concatenation
// of the source text of its children; tokens render their literal text.
type Node interface {
	// Source returns the serialized text of the node.
	Source() string

	// Children returns the present children in source order.
	Children() []Node

	writeTo(sb *strings.Builder)
}

// Content is an entry of a content list. It is implemented by *Text, *Element and *Comment
// only.
type Content interface {
	Node
	content()
	cloneContent() Content
}

func (*Text) content()    {}
func (*Element) content() {}
func (*Comment) content() {}

func sourceOf(n Node) string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func writeContent(sb *strings.Builder, list []Content) {
	for _, c := range list {
		c.writeTo(sb)
	}
}

func contentNodes(list []Content) []Node {
	nodes := make([]Node, 0, len(list))
	for _, c := range list {
		nodes = append(nodes, c)
	}
	return nodes
}

// CloneContent returns a deep copy of a content list.
func CloneContent(list []Content) []Content {
	if list == nil {
		return nil
	}
	out := make([]Content, len(list))
	for i, c := range list {
		out[i] = c.cloneContent()
	}
	return out
}

// Walk calls fn for n and each of its descendants in depth-first source order. If fn returns
// false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Elements returns every element below n (n itself included) whose name equals name. An empty
// name matches all elements.
func Elements(n Node, name string) []*Element {
	var found []*Element
	Walk(n, func(c Node) bool {
		if el, ok := c.(*Element); ok && (name == "" || el.Name() == name) {
			found = append(found, el)
		}
		return true
	})
	return found
}
