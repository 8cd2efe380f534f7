package sdghtml

import (
	"strings"
	"unicode/utf8"
)

// Span represents a location in a source text.
type Span struct {
	Offset int // Byte offset in the source
	Line   int // 1-based line number
	Column int // 1-based column number (in runes, not bytes)
	Length int // Length in bytes
}

// IsZero returns true if the span is uninitialized
func (s Span) IsZero() bool {
	return s.Offset == 0 && s.Line == 0 && s.Column == 0 && s.Length == 0
}

// End returns the end offset of the span
func (s Span) End() int {
	return s.Offset + s.Length
}

// spanAt computes the line and column of offset in source.
func spanAt(source string, offset, length int) Span {
	if offset > len(source) {
		offset = len(source)
	}
	before := source[:offset]
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Span{
		Offset: offset,
		Line:   strings.Count(before, "\n") + 1,
		Column: utf8.RuneCountInString(before[lineStart:]) + 1,
		Length: length,
	}
}

// lineAt returns the full line of source containing offset, without its line break.
func lineAt(source string, offset int) string {
	if offset > len(source) {
		offset = len(source)
	}
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[offset:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += offset
	}
	return strings.TrimSuffix(source[start:end], "\r")
}

// excerpt returns the line containing offset followed by a caret line pointing at it.
func excerpt(source string, offset int) string {
	line := lineAt(source, offset)
	sp := spanAt(source, offset, 0)
	var sb strings.Builder
	sb.WriteString(line)
	sb.WriteByte('\n')
	for i, r := range []rune(line) {
		if i >= sp.Column-1 {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('^')
	return sb.String()
}
