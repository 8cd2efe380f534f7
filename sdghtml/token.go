package sdghtml

import (
	"strings"
)

// TokenKind classifies a leaf of the syntax tree.
type TokenKind int

const (
	LessThan TokenKind = iota
	GreaterThan
	Slash
	Equals
	QuotationMark
	CommentStart
	CommentEnd
	ElementName
	AttributeName
	AttributeText
	Whitespace
	TextContent
	CommentText
)

var tokenKindNames = [...]string{
	LessThan:      "LessThan",
	GreaterThan:   "GreaterThan",
	Slash:         "Slash",
	Equals:        "Equals",
	QuotationMark: "QuotationMark",
	CommentStart:  "CommentStart",
	CommentEnd:    "CommentEnd",
	ElementName:   "ElementName",
	AttributeName: "AttributeName",
	AttributeText: "AttributeText",
	Whitespace:    "Whitespace",
	TextContent:   "Text",
	CommentText:   "CommentText",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(?)"
	}
	return tokenKindNames[k]
}

// whitespace is the set of HTML whitespace characters.
const whitespace = " \t\n\f\r"

func isWhitespace(b byte) bool {
	return strings.IndexByte(whitespace, b) >= 0
}

// Token is a leaf node. Structural kinds render fixed punctuation; the other kinds render the
// text they hold.
type Token struct {
	Kind TokenKind
	text string
}

var _ Node = (*Token)(nil)

// NewToken returns a token of the given kind. The text is ignored for kinds with fixed
// punctuation, except for QuotationMark which remembers the quote character used.
func NewToken(kind TokenKind, text string) *Token {
	t := &Token{Kind: kind}
	switch kind {
	case QuotationMark:
		if text == "'" {
			t.text = text
		}
	case ElementName, AttributeName, AttributeText, Whitespace, TextContent, CommentText:
		t.text = text
	}
	return t
}

// Text returns the literal source text of the token.
func (t *Token) Text() string {
	switch t.Kind {
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case Slash:
		return "/"
	case Equals:
		return "="
	case QuotationMark:
		if t.text == "" {
			return `"`
		}
		return t.text
	case CommentStart:
		return "<!--"
	case CommentEnd:
		return "-->"
	default:
		return t.text
	}
}

// SetText replaces the text of a textual token. It has no effect on punctuation tokens.
func (t *Token) SetText(s string) {
	switch t.Kind {
	case ElementName, AttributeName, AttributeText, Whitespace, TextContent, CommentText:
		t.text = s
	}
}

func (t *Token) Source() string { return t.Text() }

func (t *Token) Children() []Node { return nil }

func (t *Token) writeTo(sb *strings.Builder) { sb.WriteString(t.Text()) }

// Clone returns a copy of the token.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (t *Token) normalizable() bool {
	return t.Kind == TextContent || t.Kind == CommentText
}

// Normalize collapses every run of HTML whitespace into a single space and removes leading
// and trailing whitespace. Only text and comment text tokens are affected.
func (t *Token) Normalize() {
	if !t.normalizable() {
		return
	}
	t.text = strings.Join(strings.FieldsFunc(t.text, func(r rune) bool {
		return r < 0x80 && isWhitespace(byte(r))
	}), " ")
}

// Trim removes leading and trailing HTML whitespace.
func (t *Token) Trim() {
	if !t.normalizable() {
		return
	}
	t.text = strings.Trim(t.text, whitespace)
}

// SetLeadingWhitespace replaces the leading whitespace run with s.
func (t *Token) SetLeadingWhitespace(s string) {
	if !t.normalizable() {
		return
	}
	t.text = s + strings.TrimLeft(t.text, whitespace)
}

// SetTrailingWhitespace replaces the trailing whitespace run with s.
func (t *Token) SetTrailingWhitespace(s string) {
	if !t.normalizable() {
		return
	}
	t.text = strings.TrimRight(t.text, whitespace) + s
}
