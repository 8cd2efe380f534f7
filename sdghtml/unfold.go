package sdghtml

import (
	"errors"
	"io"
	"log/slog"
)

// Rule rewrites a single element. It returns changed=false to leave the element as it is;
// otherwise the element is replaced by the returned entries, which may include the element
// itself after in-place modification. Rules must converge: their output must not trigger the
// same rule again indefinitely.
type Rule interface {
	UnfoldElement(el *Element, ctx *Context) (replacement []Content, changed bool, err error)
}

// RuleFunc is an adapter to allow the use of ordinary functions as unfolding rules.
type RuleFunc func(el *Element, ctx *Context) ([]Content, bool, error)

// UnfoldElement calls f(el, ctx).
func (f RuleFunc) UnfoldElement(el *Element, ctx *Context) ([]Content, bool, error) {
	return f(el, ctx)
}

// ErrNotConverged is returned when MaxPasses is exceeded.
var ErrNotConverged = errors.New("unfolding did not converge")

// Unfolder expands pseudo-elements by running passes over the tree until a pass changes
// nothing.
type Unfolder struct {
	// Rules are tried in order for each element. If nil, DefaultRules is used.
	Rules []Rule

	// MaxPasses bounds the number of passes when positive. Zero means run until no rule
	// reports a change.
	MaxPasses int

	// Logger receives debug events. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultRules returns the built-in rules: foreign spans, localized choices, conditional
// sections and page roots.
func DefaultRules() []Rule {
	return []Rule{
		RuleFunc(unfoldForeign),
		RuleFunc(unfoldLocalized),
		RuleFunc(unfoldConditional),
		RuleFunc(unfoldPage),
	}
}

// Unfold unfolds doc with the default rules.
func Unfold(doc *Document, ctx *Context) (*Document, error) {
	return (&Unfolder{}).Unfold(doc, ctx)
}

// Unfold returns an unfolded copy of doc. On error, doc is unchanged and no copy is returned.
func (u *Unfolder) Unfold(doc *Document, ctx *Context) (*Document, error) {
	entries, err := u.UnfoldContent(doc.Entries, ctx)
	if err != nil {
		return nil, err
	}
	return &Document{Entries: entries}, nil
}

// UnfoldContent returns an unfolded copy of list.
func (u *Unfolder) UnfoldContent(list []Content, ctx *Context) ([]Content, error) {
	logger := u.logger()
	list = CloneContent(list)
	for passes := 1; ; passes++ {
		if u.MaxPasses > 0 && passes > u.MaxPasses {
			return nil, ErrNotConverged
		}
		var (
			changed bool
			err     error
		)
		list, changed, err = u.pass(list, ctx)
		if err != nil {
			logger.Debug("Unfold failed", "pass", passes, "error", err)
			return nil, err
		}
		if !changed {
			logger.Debug("Unfold reached fixed point", "passes", passes)
			return list, nil
		}
	}
}

func (u *Unfolder) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (u *Unfolder) rules() []Rule {
	if u.Rules != nil {
		return u.Rules
	}
	return DefaultRules()
}

// pass visits the elements of list depth-first, children before their parent, and applies the
// first rule that reports a change to each element.
func (u *Unfolder) pass(list []Content, ctx *Context) ([]Content, bool, error) {
	changed := false
	out := make([]Content, 0, len(list))
	for _, c := range list {
		el, ok := c.(*Element)
		if !ok {
			out = append(out, c)
			continue
		}
		if el.Continuation != nil {
			content, ch, err := u.pass(el.Continuation.Content, ctx)
			if err != nil {
				return nil, false, err
			}
			el.Continuation.Content = content
			changed = changed || ch
		}
		replacement := []Content{el}
		for _, r := range u.rules() {
			rep, ch, err := r.UnfoldElement(el, ctx)
			if err != nil {
				return nil, false, err
			}
			if ch {
				replacement = rep
				changed = true
				break
			}
		}
		out = append(out, replacement...)
	}
	return out, changed, nil
}
