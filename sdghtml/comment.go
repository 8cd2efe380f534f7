package sdghtml

import (
	"strings"
)

// Comment is `<!--text-->`.
type Comment struct {
	Start *Token
	Text  *Token
	End   *Token
}

func NewComment(text string) *Comment {
	return &Comment{
		Start: NewToken(CommentStart, ""),
		Text:  NewToken(CommentText, text),
		End:   NewToken(CommentEnd, ""),
	}
}

func (c *Comment) Source() string { return sourceOf(c) }

func (c *Comment) Children() []Node { return []Node{c.Start, c.Text, c.End} }

func (c *Comment) writeTo(sb *strings.Builder) {
	c.Start.writeTo(sb)
	c.Text.writeTo(sb)
	c.End.writeTo(sb)
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	return &Comment{Start: c.Start.Clone(), Text: c.Text.Clone(), End: c.End.Clone()}
}

func (c *Comment) cloneContent() Content { return c.Clone() }
