package sdghtml

import (
	"strings"

	"golang.org/x/net/html"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attributeEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

// EscapeText escapes s for use as character data.
func EscapeText(s string) string { return textEscaper.Replace(s) }

// UnescapeText resolves character references in s using the full HTML entity table.
func UnescapeText(s string) string { return html.UnescapeString(s) }

// EscapeAttribute escapes s for use inside a quoted attribute value of either quote style.
func EscapeAttribute(s string) string { return attributeEscaper.Replace(s) }

// UnescapeAttribute resolves character references in an attribute value.
func UnescapeAttribute(s string) string { return html.UnescapeString(s) }
