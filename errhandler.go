package sdg

import (
	"errors"

	"github.com/dpotapov/go-sdg/sdghtml"
)

var errorTitles = map[sdghtml.Language]string{
	sdghtml.English: "Page could not be rendered",
	sdghtml.German:  "Seite konnte nicht erstellt werden",
}

// errorPage returns a formatted document describing err. Syntax and unfolding errors are shown
// with the offending source; joined errors are listed one by one.
func errorPage(err error, lang sdghtml.Language) *sdghtml.Document {
	errs := []error{err}
	if multierr, ok := err.(interface{ Unwrap() []error }); ok {
		errs = multierr.Unwrap()
	}

	title, ok := errorTitles[lang]
	if !ok {
		title = errorTitles[sdghtml.DefaultLanguage]
	}

	content := []sdghtml.Content{sdghtml.Heading(1, nil, sdghtml.NewText(title))}
	var excerpts []string
	for _, err := range errs {
		section, excerpt := errorSection(err, lang)
		content = append(content, section)
		if excerpt != "" {
			excerpts = append(excerpts, excerpt)
		}
	}

	page := sdghtml.NewDocument(sdghtml.HTML(
		nil,
		sdghtml.Head(sdghtml.Metadata{Title: title}),
		sdghtml.Body(nil, content...),
	))
	sdghtml.Format(page)

	// Excerpts are filled in after formatting to keep their whitespace.
	for i, pre := range sdghtml.Elements(page, "pre") {
		pre.SetContent([]sdghtml.Content{sdghtml.NewText(excerpts[i])})
	}
	return page
}

// errorSection describes err. If the error points into a source, the section contains an empty
// <pre> element for the returned excerpt.
func errorSection(err error, lang sdghtml.Language) (*sdghtml.Element, string) {
	var (
		serr    *sdghtml.SyntaxError
		uerr    *sdghtml.UnfoldingError
		excerpt string
	)
	switch {
	case errors.As(err, &serr):
		serr.Language = lang
		excerpt = serr.Excerpt()
	case errors.As(err, &uerr):
		uerr.Language = lang
		excerpt = uerr.Context
	}

	section := sdghtml.Section(map[string]string{"class": "error"},
		sdghtml.Paragraph(nil, sdghtml.NewText(err.Error())),
	)
	if excerpt != "" {
		section.Append(sdghtml.NewElement("pre", nil))
	}
	return section, excerpt
}
