package sdghtml

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// ExampleDomain is the placeholder host exempt from link checks, together with its
// subdomains.
const ExampleDomain = "example.com"

// LinkChecker reports whether a URL is reachable. A non-nil error means the link is dead.
type LinkChecker interface {
	Check(ctx context.Context, u *url.URL) error
}

// LinkCheckerFunc is an adapter to allow the use of ordinary functions as link checkers.
type LinkCheckerFunc func(ctx context.Context, u *url.URL) error

// Check calls f(ctx, u).
func (f LinkCheckerFunc) Check(ctx context.Context, u *url.URL) error {
	return f(ctx, u)
}

// Diagnostic is a non-fatal finding of the validator.
type Diagnostic struct {
	// Line is the 1-based line the finding refers to.
	Line    int
	Message string
	// Excerpt is the source line with a marker under the offending position.
	Excerpt string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s", d.Line, d.Message)
}

// Validator checks documents against best practices.
type Validator struct {
	// Links checks the reachability of non-file URLs. If nil, such URLs are only checked for
	// syntax.
	Links LinkChecker

	// Language selects the language of diagnostic messages.
	Language Language

	// Logger receives debug events. If nil, nothing is logged.
	Logger *slog.Logger
}

// Validate validates doc without checking the reachability of remote links.
func Validate(doc *Document, baseURL *url.URL) []Diagnostic {
	return (&Validator{}).Validate(doc, baseURL)
}

// Validate returns the diagnostics for doc. Relative URLs are resolved against baseURL, which
// may be nil.
func (v *Validator) Validate(doc *Document, baseURL *url.URL) []Diagnostic {
	return v.ValidateContext(context.Background(), doc, baseURL)
}

// ValidateContext is like Validate. Once ctx is done, no further links are checked; the
// remaining checks still run.
func (v *Validator) ValidateContext(ctx context.Context, doc *Document, baseURL *url.URL) []Diagnostic {
	w := &validation{
		Validator: v,
		ctx:       ctx,
		base:      baseURL,
		src:       doc.Source(),
		checked:   map[string]error{},
		logger:    v.Logger,
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	w.visit(doc)
	return w.diagnostics
}

// validation is the state of a single walk over a document.
type validation struct {
	*Validator
	ctx    context.Context
	base   *url.URL
	logger *slog.Logger

	src    string
	offset int
	// tag is the opening tag whose attributes are being visited.
	tag *OpeningTag
	// heading is the highest heading level seen so far, zero before the first heading.
	heading int
	// checked memoizes link check results by URL.
	checked map[string]error

	diagnostics []Diagnostic
}

func (w *validation) report(offset int, id messageID, args ...any) {
	w.diagnostics = append(w.diagnostics, Diagnostic{
		Line:    spanAt(w.src, offset, 0).Line,
		Message: w.Language.message(id, args...),
		Excerpt: excerpt(w.src, offset),
	})
}

func (w *validation) visit(n Node) {
	start := w.offset
	switch n := n.(type) {
	case *Token:
		w.offset += len(n.Text())
		return
	case *Element:
		w.checkHeading(n, start)
	case *OpeningTag:
		w.tag = n
	case *Attribute:
		w.checkAttribute(n, start)
	}
	for _, c := range n.Children() {
		w.visit(c)
	}
}

func (w *validation) checkHeading(el *Element, offset int) {
	name := el.Name()
	if len(name) != 2 || name[0] != 'h' || name[1] < '1' || name[1] > '6' {
		return
	}
	level := int(name[1] - '0')
	if w.heading > 0 && level > w.heading+1 {
		w.report(offset, msgHeadingSkipped, w.heading, level)
	}
	w.heading = max(w.heading, level)
}

func (w *validation) checkAttribute(attr *Attribute, offset int) {
	tag := w.tag.TagName()
	if strings.HasPrefix(tag, "!") {
		return
	}
	// The attribute's own text starts after its leading whitespace.
	offset += len(attr.Whitespace.Text())

	name := attr.Key()
	value, hasValue := attr.Val()
	switch classifyAttribute(name) {
	case valueAttribute:
		if !hasValue {
			w.report(offset, msgMissingAttributeValue, tag, name)
		}
	case booleanAttribute:
		if hasValue {
			w.report(offset, msgIllegalAttributeValue, tag, name)
		}
	default:
		if !strings.HasPrefix(name, "data-") {
			w.report(offset, msgUnknownAttribute, tag, name)
		}
	}

	if !urlAttributes[name] || !hasValue {
		return
	}
	if tag == "link" {
		if rel, _ := LookupAttribute(w.tag, "rel"); rel == "canonical" {
			return
		}
	}
	if name == "srcset" {
		for _, candidate := range strings.Split(value, ",") {
			if fields := strings.Fields(candidate); len(fields) > 0 {
				w.checkURL(fields[0], offset)
			}
		}
		return
	}
	w.checkURL(strings.TrimSpace(value), offset)
}

func (w *validation) checkURL(ref string, offset int) {
	if ref == "" || strings.HasPrefix(ref, "#") {
		return
	}
	u, err := url.Parse(ref)
	if err != nil {
		w.report(offset, msgMalformedURL, ref, err)
		return
	}
	if w.base != nil {
		u = w.base.ResolveReference(u)
	}

	switch u.Scheme {
	case "file":
		if _, err := os.Stat(u.Path); err != nil {
			w.report(offset, msgMissingFile, u.Path)
		}
	case "http", "https":
		host := u.Hostname()
		if host == ExampleDomain || strings.HasSuffix(host, "."+ExampleDomain) {
			return
		}
		if w.Links == nil || w.ctx.Err() != nil {
			return
		}
		u.Fragment = ""
		key := u.String()
		err, ok := w.checked[key]
		if !ok {
			err = w.Links.Check(w.ctx, u)
			if w.ctx.Err() != nil {
				return
			}
			w.checked[key] = err
			w.logger.Debug("Checked link", "url", key, "error", err)
		}
		if err != nil {
			w.report(offset, msgDeadLink, key)
		}
	}
}
