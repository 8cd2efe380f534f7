package sdghtml

import (
	"github.com/expr-lang/expr"
)

// unfoldForeign renames <foreign> to a span carrying the original name as its first class.
func unfoldForeign(el *Element, _ *Context) ([]Content, bool, error) {
	name := el.Name()
	if !isKeyword(name, kwForeign) {
		return nil, false, nil
	}
	el.SetName("span")
	PrependClass(el, name)
	return []Content{el}, true, nil
}

// unfoldLocalized replaces <localized> by the content of the child named after the target
// localization.
func unfoldLocalized(el *Element, ctx *Context) ([]Content, bool, error) {
	if !isKeyword(el.Name(), kwLocalized) || ctx == nil || ctx.Localization == nil {
		return nil, false, nil
	}
	loc := ctx.Localization
	for _, c := range el.Content() {
		child, ok := c.(*Element)
		if !ok {
			continue
		}
		if n := child.Name(); n == loc.Icon || n == loc.Code {
			return child.Content(), true, nil
		}
	}
	err := newUnfoldingError(MissingLocalization, el, ctx.language())
	err.Expected = []string{loc.Icon, loc.Code}
	return nil, false, err
}

// unfoldConditional keeps or drops the content of <if condition="..."> depending on the value
// of the condition.
func unfoldConditional(el *Element, ctx *Context) ([]Content, bool, error) {
	name := el.Name()
	lang, ok := keywordLanguage(name, kwIf)
	if !ok || ctx == nil {
		return nil, false, nil
	}
	if ctx.Localization != nil {
		lang = ctx.Localization.Language
	}

	attr := lang.keyword(kwCondition)
	condition, ok := LookupAttribute(el, attr)
	if !ok {
		err := newUnfoldingError(MissingAttribute, el, ctx.language())
		err.Attribute = attr
		return nil, false, err
	}

	env := ctx.conditionEnv()
	program, err := expr.Compile(condition, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, false, invalidCondition(el, ctx, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, false, invalidCondition(el, ctx, err)
	}
	if out.(bool) {
		return el.Content(), true, nil
	}
	return []Content{}, true, nil
}

func invalidCondition(el *Element, ctx *Context, err error) *UnfoldingError {
	e := newUnfoldingError(InvalidCondition, el, ctx.language())
	e.err = err
	return e
}

// conditionEnv lists the variables visible to conditions.
func (c *Context) conditionEnv() map[string]any {
	env := map[string]any{
		"localization": "",
		"direction":    LeftToRight.String(),
		"path":         c.RelativePath,
		"title":        c.Title,
	}
	if c.Localization != nil {
		env["localization"] = c.Localization.Code
		env["direction"] = c.Localization.Direction.String()
	}
	return env
}

// unfoldPage expands <page> into a complete document whose body is the page content.
func unfoldPage(el *Element, ctx *Context) ([]Content, bool, error) {
	lang, ok := keywordLanguage(el.Name(), kwPage)
	if !ok || ctx == nil || ctx.SiteRoot == nil || ctx.RelativePath == "" || ctx.Author == nil {
		return nil, false, nil
	}
	if ctx.Localization != nil {
		lang = ctx.Localization.Language
	}

	var values [3]string
	for i, k := range []keyword{kwTitle, kwDescription, kwKeywords} {
		attr := lang.keyword(k)
		v, ok := LookupAttribute(el, attr)
		if !ok {
			err := newUnfoldingError(MissingAttribute, el, ctx.language())
			err.Attribute = attr
			return nil, false, err
		}
		values[i] = v
	}
	title, description, keywords := values[0], values[1], values[2]
	if ctx.Title != "" {
		title += " | " + ctx.Title
	}

	base := ctx.baseURL()
	css := make([]string, len(ctx.CSS))
	for i, path := range ctx.CSS {
		css[i] = base + path
	}

	head := Head(Metadata{
		Title:       title,
		Canonical:   ctx.canonicalURL(),
		Author:      ctx.Author,
		Description: description,
		Keywords:    keywords,
		CSS:         css,
	})
	body := Body(nil, el.Content()...)
	return []Content{DocumentType(), NewText("\n"), HTML(ctx.Localization, head, body)}, true, nil
}
