package sdghtml

import (
	"fmt"
	"strings"
)

// SyntaxErrorKind classifies structural parse failures.
type SyntaxErrorKind int

const (
	UnpairedGreaterThan SyntaxErrorKind = iota
	UnpairedLessThan
	MissingTagName
	EmptyTag
	UnpairedQuotationMark
	MissingEquals
	UnpairedClosingTag
	MalformedClosingTag
)

var syntaxMessages = map[SyntaxErrorKind]messageID{
	UnpairedGreaterThan:   msgUnpairedGreaterThan,
	UnpairedLessThan:      msgUnpairedLessThan,
	MissingTagName:        msgMissingTagName,
	EmptyTag:              msgEmptyTag,
	UnpairedQuotationMark: msgUnpairedQuotationMark,
	MissingEquals:         msgMissingEquals,
	UnpairedClosingTag:    msgUnpairedClosingTag,
	MalformedClosingTag:   msgMalformedClosingTag,
}

// Error returns the English message of the kind, so that kinds can be matched with errors.Is.
func (k SyntaxErrorKind) Error() string {
	if k == UnpairedClosingTag || k == MalformedClosingTag {
		return English.message(syntaxMessages[k], "…")
	}
	return English.message(syntaxMessages[k])
}

// SyntaxError reports the first structural error found while parsing. Parsing stops at the
// first error; no partial tree is produced.
type SyntaxError struct {
	// File is the name of the parsed file, if known.
	File string
	// Source is the complete parsed text.
	Source string
	// Index is the byte offset of the offending delimiter.
	Index int
	Kind  SyntaxErrorKind
	// Tag is the element name involved, for kinds that refer to one.
	Tag string
	// Language selects the language of Message.
	Language Language
}

// Message returns the localized description without location.
func (e *SyntaxError) Message() string {
	id := syntaxMessages[e.Kind]
	if e.Kind == UnpairedClosingTag || e.Kind == MalformedClosingTag {
		return e.Language.message(id, e.Tag)
	}
	return e.Language.message(id)
}

// Span returns the location of the offending delimiter.
func (e *SyntaxError) Span() Span {
	return spanAt(e.Source, e.Index, 1)
}

// Excerpt returns the offending source line with a marker under the error position.
func (e *SyntaxError) Excerpt() string {
	return excerpt(e.Source, e.Index)
}

func (e *SyntaxError) Error() string {
	sp := e.Span()
	name := e.File
	if name == "" {
		name = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", name, sp.Line, sp.Column, e.Message())
}

// Is reports whether target is the kind of e.
func (e *SyntaxError) Is(target error) bool {
	k, ok := target.(SyntaxErrorKind)
	return ok && k == e.Kind
}

// UnfoldingErrorKind classifies failed pseudo-element preconditions.
type UnfoldingErrorKind int

const (
	MissingLocalization UnfoldingErrorKind = iota
	MissingAttribute
	InvalidCondition
)

var unfoldingKindNames = [...]string{
	MissingLocalization: "missing localization",
	MissingAttribute:    "missing attribute",
	InvalidCondition:    "invalid condition",
}

func (k UnfoldingErrorKind) Error() string {
	return unfoldingKindNames[k]
}

// UnfoldingError reports a pseudo-element whose preconditions are not met.
type UnfoldingError struct {
	Kind UnfoldingErrorKind
	// Element is the name of the pseudo-element.
	Element string
	// Expected lists the identifiers one of which was required (MissingLocalization).
	Expected []string
	// Attribute is the required attribute that is missing (MissingAttribute).
	Attribute string
	// Context is the source of the offending opening tag.
	Context string
	// Language selects the language of the message.
	Language Language

	err error
}

func newUnfoldingError(kind UnfoldingErrorKind, el *Element, lang Language) *UnfoldingError {
	return &UnfoldingError{
		Kind:     kind,
		Element:  el.Name(),
		Context:  el.Opening.Source(),
		Language: lang,
	}
}

func (e *UnfoldingError) Error() string {
	switch e.Kind {
	case MissingLocalization:
		return e.Language.message(msgMissingLocalization, e.Element, strings.Join(e.Expected, ", "))
	case MissingAttribute:
		return e.Language.message(msgMissingAttribute, e.Element, e.Attribute)
	default:
		return e.Language.message(msgInvalidCondition, e.Element, e.err)
	}
}

// Is reports whether target is the kind of e.
func (e *UnfoldingError) Is(target error) bool {
	k, ok := target.(UnfoldingErrorKind)
	return ok && k == e.Kind
}

func (e *UnfoldingError) Unwrap() error {
	return e.err
}
