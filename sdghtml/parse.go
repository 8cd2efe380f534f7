package sdghtml

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

// A parser builds the syntax tree from the end of the source towards its beginning. The
// closing '>' of every construct sits at its right edge and is unambiguous, while the
// matching '<' may be arbitrarily far to the left, so scanning backwards lets each construct
// be recognized by its trailing delimiter alone. Content lists of elements are bounded by
// returning the matching opening tag to the caller instead of scanning forward.
type parser struct {
	// file is the file name reported in errors.
	file string
	// src is the complete source text.
	src string
	// end is the length of the unconsumed prefix src[:end].
	end int
	// lang is the language of error messages.
	lang Language
}

// Parse parses a complete HTML source into a Document. The returned error, if any, is a
// *SyntaxError describing the first structural error; no partial tree is returned.
func Parse(source string) (*Document, error) {
	return ParseWithSource("", source, DefaultLanguage)
}

// ParseWithSource is like Parse but records the file name and message language in errors.
func ParseWithSource(file, source string, lang Language) (*Document, error) {
	entries, err := parseContent(file, source, lang)
	if err != nil {
		return nil, err
	}
	return &Document{Entries: entries}, nil
}

// ParseContent parses a fragment into a content list.
func ParseContent(source string) ([]Content, error) {
	return parseContent("", source, DefaultLanguage)
}

// ParseFile reads and parses the named file from fsys.
func ParseFile(fsys fs.FS, name string, lang Language) (*Document, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return ParseWithSource(name, string(b), lang)
}

func parseContent(file, source string, lang Language) ([]Content, error) {
	p := &parser{file: file, src: source, end: len(source), lang: lang}
	entries, _, err := p.parseContentList(nil, 0)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (p *parser) fail(kind SyntaxErrorKind, index int, tag string) *SyntaxError {
	return &SyntaxError{
		File:     p.file,
		Source:   p.src,
		Index:    index,
		Kind:     kind,
		Tag:      tag,
		Language: p.lang,
	}
}

func (p *parser) hasSuffix(s string) bool {
	return strings.HasSuffix(p.src[:p.end], s)
}

func (p *parser) last() byte {
	return p.src[p.end-1]
}

// take consumes the last n bytes of the unconsumed source.
func (p *parser) take(n int) string {
	s := p.src[p.end-n : p.end]
	p.end -= n
	return s
}

// takeWhitespace consumes the trailing whitespace run, possibly empty.
func (p *parser) takeWhitespace() *Token {
	i := p.end
	for i > 0 && isWhitespace(p.src[i-1]) {
		i--
	}
	return NewToken(Whitespace, p.take(p.end-i))
}

// parseContentList parses entries until the source is exhausted or, if until is not nil, until
// the opening tag matching until is found. The matching opening tag is returned separately and
// is not part of the list.
func (p *parser) parseContentList(until *ClosingTag, untilIndex int) ([]Content, *OpeningTag, error) {
	var entries []Content
	for p.end > 0 {
		switch {
		case p.hasSuffix("-->") && p.commentStart() >= 0:
			entries = append(entries, p.parseComment())
		case p.hasSuffix(">"):
			el, open, err := p.parseElement()
			if err != nil {
				return nil, nil, err
			}
			if open != nil {
				if until != nil && !open.IsSelfClosing() && open.TagName() == until.TagName() {
					slices.Reverse(entries)
					return entries, open, nil
				}
				el = &Element{Opening: open}
			}
			entries = append(entries, el)
		default:
			text, err := p.parseText()
			if err != nil {
				return nil, nil, err
			}
			entries = append(entries, text)
		}
	}
	if until != nil {
		return nil, nil, p.fail(UnpairedClosingTag, untilIndex, until.TagName())
	}
	slices.Reverse(entries)
	return entries, nil, nil
}

func (p *parser) commentStart() int {
	return strings.LastIndex(p.src[:p.end-len("-->")], "<!--")
}

func (p *parser) parseComment() *Comment {
	start := p.commentStart()
	text := p.src[start+len("<!--") : p.end-len("-->")]
	p.end = start
	return &Comment{
		Start: NewToken(CommentStart, ""),
		Text:  NewToken(CommentText, text),
		End:   NewToken(CommentEnd, ""),
	}
}

// parseText consumes trailing text up to the previous '>'.
func (p *parser) parseText() (*Text, error) {
	start := strings.LastIndexByte(p.src[:p.end], '>') + 1
	s := p.src[start:p.end]
	if i := strings.LastIndexByte(s, '<'); i >= 0 {
		return nil, p.fail(UnpairedLessThan, start+i, "")
	}
	p.end = start
	return newRawText(s), nil
}

// parseElement parses the tag ending at the current end. A closing tag is parsed together with
// its content and matching opening tag into an Element. An opening tag is returned as is; the
// caller decides whether it bounds an enclosing content list or stands for an empty element.
func (p *parser) parseElement() (*Element, *OpeningTag, error) {
	open, closing, err := p.parseTag()
	if err != nil {
		return nil, nil, err
	}
	if open != nil {
		return nil, open, nil
	}
	closingIndex := p.end
	content, open, err := p.parseContentList(closing, closingIndex)
	if err != nil {
		return nil, nil, err
	}
	return &Element{
		Opening: open,
		Continuation: &Continuation{
			Content: content,
			Closing: closing,
		},
	}, nil, nil
}

// parseTag parses either an opening or a closing tag ending at the current end.
func (p *parser) parseTag() (*OpeningTag, *ClosingTag, error) {
	gtIndex := p.end - 1
	p.take(1)
	gt := NewToken(GreaterThan, "")

	var selfClosing *Token
	if p.hasSuffix("/") {
		p.take(1)
		selfClosing = NewToken(Slash, "")
	}

	trailing := p.takeWhitespace()
	var list []*Attribute
	for p.end > 0 && p.last() != '<' && p.last() != '/' {
		attr, err := p.parseAttribute(gtIndex)
		if err != nil {
			return nil, nil, err
		}
		list = append(list, attr)
	}

	if p.end == 0 {
		return nil, nil, p.fail(UnpairedGreaterThan, gtIndex, "")
	}
	closing := p.last() == '/'
	if closing && (p.end < 2 || p.src[p.end-2] != '<') {
		return nil, nil, p.fail(UnpairedGreaterThan, gtIndex, "")
	}
	tagStart := p.end - 1
	if closing {
		tagStart--
	}
	if len(list) == 0 {
		return nil, nil, p.fail(EmptyTag, tagStart, "")
	}

	candidate := list[len(list)-1]
	list = list[:len(list)-1]
	if candidate.Value != nil || candidate.Whitespace.Text() != "" {
		return nil, nil, p.fail(MissingTagName, tagStart, "")
	}
	name := NewToken(ElementName, candidate.Name.Text())

	if closing {
		if len(list) > 0 || trailing.Text() != "" || selfClosing != nil {
			return nil, nil, p.fail(MalformedClosingTag, tagStart, name.Text())
		}
		p.take(2)
		return nil, &ClosingTag{
			LessThan:    NewToken(LessThan, ""),
			Slash:       NewToken(Slash, ""),
			Name:        name,
			GreaterThan: gt,
		}, nil
	}

	p.take(1)
	open := &OpeningTag{
		LessThan:    NewToken(LessThan, ""),
		Name:        name,
		SelfClosing: selfClosing,
		GreaterThan: gt,
	}
	if len(list) > 0 || trailing.Text() != "" {
		slices.Reverse(list)
		open.Attributes = &Attributes{List: list, TrailingWhitespace: trailing}
	}
	return open, nil, nil
}

// isIdentifierDelimiter reports whether b ends a tag or attribute name.
func isIdentifierDelimiter(b byte) bool {
	switch b {
	case '<', '/', '>', '"', '\'':
		return true
	}
	return isWhitespace(b)
}

// parseAttribute parses one attribute, including its leading whitespace, ending at the current
// end.
func (p *parser) parseAttribute(gtIndex int) (*Attribute, error) {
	var value *AttributeValue
	if c := p.last(); c == '"' || c == '\'' {
		v, err := p.parseAttributeValue()
		if err != nil {
			return nil, err
		}
		value = v
	}

	nameEnd := p.end
	for p.end > 0 && !isIdentifierDelimiter(p.last()) {
		p.end--
	}
	name := p.src[p.end:nameEnd]
	if name == "" {
		if value != nil {
			return nil, p.fail(MissingTagName, nameEnd, "")
		}
		// Another '>' inside the tag: the tag's own '>' has no partner.
		return nil, p.fail(UnpairedGreaterThan, gtIndex, "")
	}

	return &Attribute{
		Whitespace: p.takeWhitespace(),
		Name:       NewToken(AttributeName, name),
		Value:      value,
	}, nil
}

// parseAttributeValue parses `="text"` (or the single-quoted form) ending at the current end.
func (p *parser) parseAttributeValue() (*AttributeValue, error) {
	closeIndex := p.end - 1
	quote := p.take(1)
	open := strings.LastIndex(p.src[:p.end], quote)
	if open < 0 {
		return nil, p.fail(UnpairedQuotationMark, closeIndex, "")
	}
	text := p.src[open+1 : p.end]
	p.end = open
	if !p.hasSuffix("=") {
		return nil, p.fail(MissingEquals, open, "")
	}
	p.take(1)
	return &AttributeValue{
		Equals:       NewToken(Equals, ""),
		OpeningQuote: NewToken(QuotationMark, quote),
		Text:         NewToken(AttributeText, text),
		ClosingQuote: NewToken(QuotationMark, quote),
	}, nil
}
