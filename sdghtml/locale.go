package sdghtml

import (
	"fmt"
	"strings"
)

// Language selects the language of error messages and diagnostics, and the spelling of
// pseudo-element keywords.
type Language int

const (
	English Language = iota
	German
)

// DefaultLanguage is used whenever a lookup in another language fails.
const DefaultLanguage = English

func (l Language) String() string {
	switch l {
	case English:
		return "English"
	case German:
		return "Deutsch"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

type messageID int

const (
	msgUnpairedGreaterThan messageID = iota
	msgUnpairedLessThan
	msgMissingTagName
	msgEmptyTag
	msgUnpairedQuotationMark
	msgMissingEquals
	msgUnpairedClosingTag
	msgMalformedClosingTag

	msgMissingLocalization
	msgMissingAttribute
	msgInvalidCondition

	msgMissingAttributeValue
	msgIllegalAttributeValue
	msgUnknownAttribute
	msgMalformedURL
	msgDeadLink
	msgMissingFile
	msgHeadingSkipped
)

var messages = map[Language]map[messageID]string{
	English: {
		msgUnpairedGreaterThan:   `unpaired ">"; there is no matching "<"`,
		msgUnpairedLessThan:      `unpaired "<"; there is no matching ">"`,
		msgMissingTagName:        "the tag has no name",
		msgEmptyTag:              "the tag is empty",
		msgUnpairedQuotationMark: "unpaired quotation mark",
		msgMissingEquals:         `attribute value without "="`,
		msgUnpairedClosingTag:    "closing tag </%s> has no corresponding opening tag",
		msgMalformedClosingTag:   "closing tag </%s> is malformed",

		msgMissingLocalization: "<%s> has no child matching the localization (expected one of: %s)",
		msgMissingAttribute:    "<%s> is missing the %q attribute",
		msgInvalidCondition:    "<%s> has an invalid condition: %v",

		msgMissingAttributeValue: "<%s>: attribute %q requires a value",
		msgIllegalAttributeValue: "<%s>: attribute %q is boolean and must not have a value",
		msgUnknownAttribute:      "<%s>: unknown attribute %q",
		msgMalformedURL:          "malformed URL %q: %v",
		msgDeadLink:              "dead link: %s",
		msgMissingFile:           "file does not exist: %s",
		msgHeadingSkipped:        "heading level skipped from %d to %d",
	},
	German: {
		msgUnpairedGreaterThan:   `„>“ ohne Gegenstück; es gibt kein passendes „<“`,
		msgUnpairedLessThan:      `„<“ ohne Gegenstück; es gibt kein passendes „>“`,
		msgMissingTagName:        "der Tag hat keinen Namen",
		msgEmptyTag:              "der Tag ist leer",
		msgUnpairedQuotationMark: "Anführungszeichen ohne Gegenstück",
		msgMissingEquals:         `Attributwert ohne „=“`,
		msgUnpairedClosingTag:    "zum schließenden Tag </%s> gibt es keinen öffnenden Tag",
		msgMalformedClosingTag:   "der schließende Tag </%s> ist fehlerhaft",

		msgMissingLocalization: "<%s> hat kein Kindelement zur Lokalisation (erwartet: %s)",
		msgMissingAttribute:    "<%s> fehlt das Attribut %q",
		msgInvalidCondition:    "<%s> hat eine ungültige Bedingung: %v",

		msgMissingAttributeValue: "<%s>: Attribut %q braucht einen Wert",
		msgIllegalAttributeValue: "<%s>: Attribut %q ist boolesch und darf keinen Wert haben",
		msgUnknownAttribute:      "<%s>: unbekanntes Attribut %q",
		msgMalformedURL:          "fehlerhafte URL %q: %v",
		msgDeadLink:              "toter Verweis: %s",
		msgMissingFile:           "Datei existiert nicht: %s",
		msgHeadingSkipped:        "Überschriftenebene übersprungen von %d zu %d",
	},
}

// message formats a localized message, falling back to DefaultLanguage.
func (l Language) message(id messageID, args ...any) string {
	format, ok := messages[l][id]
	if !ok {
		format = messages[DefaultLanguage][id]
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// TextDirection is the writing direction of a localization.
type TextDirection int

const (
	LeftToRight TextDirection = iota
	RightToLeft
)

// String returns the value used in the dir attribute.
func (d TextDirection) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Localization identifies a target localization of a site.
type Localization struct {
	// Code is the BCP 47 language tag, e.g. "en" or "de".
	Code string
	// Icon is the flag-and-abbreviation identifier, e.g. "🇬🇧EN".
	Icon string
	// Direction is the text direction.
	Direction TextDirection
	// Language selects keywords and messages for this localization.
	Language Language
}

var knownLocalizations = []Localization{
	{Code: "en", Icon: "🇬🇧EN", Direction: LeftToRight, Language: English},
	{Code: "en-GB", Icon: "🇬🇧EN", Direction: LeftToRight, Language: English},
	{Code: "en-US", Icon: "🇺🇸EN", Direction: LeftToRight, Language: English},
	{Code: "en-CA", Icon: "🇨🇦EN", Direction: LeftToRight, Language: English},
	{Code: "de", Icon: "🇩🇪DE", Direction: LeftToRight, Language: German},
	{Code: "de-DE", Icon: "🇩🇪DE", Direction: LeftToRight, Language: German},
}

// LookupLocalization finds a known localization by code (case-insensitive) or icon.
func LookupLocalization(id string) (Localization, bool) {
	for _, l := range knownLocalizations {
		if strings.EqualFold(l.Code, id) || l.Icon == id {
			return l, true
		}
	}
	return Localization{}, false
}

// keyword names a pseudo-element or one of its attributes.
type keyword int

const (
	kwForeign keyword = iota
	kwLocalized
	kwPage
	kwIf
	kwCondition
	kwTitle
	kwDescription
	kwKeywords
)

var keywords = map[Language]map[keyword]string{
	English: {
		kwForeign:     "foreign",
		kwLocalized:   "localized",
		kwPage:        "page",
		kwIf:          "if",
		kwCondition:   "condition",
		kwTitle:       "title",
		kwDescription: "description",
		kwKeywords:    "keywords",
	},
	German: {
		kwForeign:     "fremd",
		kwLocalized:   "lokalisiert",
		kwPage:        "seite",
		kwIf:          "wenn",
		kwCondition:   "bedingung",
		kwTitle:       "titel",
		kwDescription: "beschreibung",
		kwKeywords:    "schlüsselwörter",
	},
}

func (l Language) keyword(k keyword) string {
	if s, ok := keywords[l][k]; ok {
		return s
	}
	return keywords[DefaultLanguage][k]
}

// isKeyword reports whether name spells k in any language.
func isKeyword(name string, k keyword) bool {
	for _, table := range keywords {
		if table[k] == name {
			return true
		}
	}
	return false
}

// keywordLanguage returns the language whose spelling of k is name.
func keywordLanguage(name string, k keyword) (Language, bool) {
	for l, table := range keywords {
		if table[k] == name {
			return l, true
		}
	}
	return DefaultLanguage, false
}
