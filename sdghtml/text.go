package sdghtml

import (
	"strings"
)

// Text is a run of character data. The token stores the escaped source form.
type Text struct {
	Token *Token
}

// NewText returns a text node holding the escaped form of s.
func NewText(s string) *Text {
	return &Text{Token: NewToken(TextContent, EscapeText(s))}
}

func newRawText(source string) *Text {
	return &Text{Token: NewToken(TextContent, source)}
}

// Text returns the unescaped text.
func (t *Text) Text() string { return UnescapeText(t.Token.Text()) }

// SetText stores the escaped form of s.
func (t *Text) SetText(s string) { t.Token.SetText(EscapeText(s)) }

// IsWhitespace reports whether the text consists of HTML whitespace only.
func (t *Text) IsWhitespace() bool {
	return strings.Trim(t.Token.Text(), whitespace) == ""
}

func (t *Text) Source() string { return t.Token.Text() }

func (t *Text) Children() []Node { return []Node{t.Token} }

func (t *Text) writeTo(sb *strings.Builder) { t.Token.writeTo(sb) }

func (t *Text) Clone() *Text {
	if t == nil {
		return nil
	}
	return &Text{Token: t.Token.Clone()}
}

func (t *Text) cloneContent() Content { return t.Clone() }
