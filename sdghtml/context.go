package sdghtml

import (
	"net/url"
	"strings"
)

// Context carries the information pseudo-elements are unfolded against. Every field is
// optional; rules that need a missing field leave their pseudo-elements untouched.
type Context struct {
	// Localization is the target localization.
	Localization *Localization

	// SiteRoot is the absolute URL the site is published under.
	SiteRoot *url.URL

	// RelativePath is the slash-separated path of the page below SiteRoot, without a leading
	// slash, e.g. "docs/index.html".
	RelativePath string

	// Title is the site title. When set, page titles render as "page | site".
	Title string

	// Author is placed into the head of unfolded pages.
	Author *Element

	// CSS lists stylesheet paths relative to the site root.
	CSS []string
}

// language returns the language of the target localization.
func (c *Context) language() Language {
	if c == nil || c.Localization == nil {
		return DefaultLanguage
	}
	return c.Localization.Language
}

// canonicalURL resolves the relative path against the site root.
func (c *Context) canonicalURL() string {
	return c.SiteRoot.ResolveReference(&url.URL{Path: strings.TrimPrefix(c.RelativePath, "/")}).String()
}

// baseURL returns the relative reference from the page to the site root.
func (c *Context) baseURL() string {
	return strings.Repeat("../", strings.Count(strings.TrimPrefix(c.RelativePath, "/"), "/"))
}
