package sdghtml

import (
	"bytes"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localization(t *testing.T, id string) *Localization {
	t.Helper()
	loc, ok := LookupLocalization(id)
	require.True(t, ok, "unknown localization %q", id)
	return &loc
}

func pageContext(t *testing.T, id string) *Context {
	t.Helper()
	root, err := url.Parse("https://example.org/")
	require.NoError(t, err)
	return &Context{
		Localization: localization(t, id),
		SiteRoot:     root,
		RelativePath: "docs/index.html",
		Title:        "Site",
		Author:       Author("Jane Doe"),
		CSS:          []string{"style.css"},
	}
}

func unfoldSource(t *testing.T, src string, ctx *Context) (string, error) {
	t.Helper()
	doc, err := Parse(src)
	require.NoError(t, err)
	out, err := Unfold(doc, ctx)
	if err != nil {
		return "", err
	}
	return out.Source(), nil
}

func TestUnfold(t *testing.T) {
	tests := []struct {
		name string
		src  string
		ctx  *Context
		want string
	}{
		{
			name: "foreign",
			src:  "<p>Das ist <foreign>English</foreign>.</p>",
			want: `<p>Das ist <span class="foreign">English</span>.</p>`,
		},
		{
			name: "foreign keeps classes",
			src:  `<fremd class="x">Deutsch</fremd>`,
			want: `<span class="fremd x">Deutsch</span>`,
		},
		{
			name: "localized without context",
			src:  "<localized><🇬🇧EN>Hi</🇬🇧EN></localized>",
			want: "<localized><🇬🇧EN>Hi</🇬🇧EN></localized>",
		},
		{
			name: "localized by icon",
			src:  "<p><localized> <🇬🇧EN>Hello</🇬🇧EN> <🇩🇪DE>Hallo</🇩🇪DE> </localized></p>",
			ctx:  &Context{Localization: localization(t, "de")},
			want: "<p>Hallo</p>",
		},
		{
			name: "localized by code",
			src:  "<lokalisiert><en>Hello</en><de>Hallo</de></lokalisiert>",
			ctx:  &Context{Localization: localization(t, "en")},
			want: "Hello",
		},
		{
			name: "nested pseudo-elements",
			src:  "<localized><de>A <foreign>b</foreign></de><en>c</en></localized>",
			ctx:  &Context{Localization: localization(t, "de")},
			want: `A <span class="foreign">b</span>`,
		},
		{
			name: "condition true",
			src:  `<p><if condition="localization == 'de'">Nur deutsch</if></p>`,
			ctx:  &Context{Localization: localization(t, "de")},
			want: "<p>Nur deutsch</p>",
		},
		{
			name: "condition false",
			src:  `<p>a<if condition="localization == 'de'">Nur deutsch</if>b</p>`,
			ctx:  &Context{Localization: localization(t, "en")},
			want: "<p>ab</p>",
		},
		{
			name: "german condition",
			src:  `<wenn bedingung="path startsWith 'docs/'">x</wenn>`,
			ctx:  &Context{Localization: localization(t, "de"), RelativePath: "docs/a.html"},
			want: "x",
		},
		{
			name: "condition without context",
			src:  `<if condition="true">x</if>`,
			want: `<if condition="true">x</if>`,
		},
		{
			name: "page without context",
			src:  `<page title="T" description="D" keywords="K">x</page>`,
			want: `<page title="T" description="D" keywords="K">x</page>`,
		},
		{
			name: "page",
			src:  `<page title="Home" description="Desc" keywords="a, b"><foreign>Hello</foreign></page>`,
			ctx:  pageContext(t, "en"),
			want: "<!DOCTYPE html>\n" +
				`<html dir="ltr" lang="en"><head><meta charset="utf-8"><title>Home | Site</title>` +
				`<link href="https://example.org/docs/index.html" rel="canonical">` +
				`<meta content="Jane Doe" name="author">` +
				`<meta content="Desc" name="description">` +
				`<meta content="a, b" name="keywords">` +
				`<link href="../style.css" rel="stylesheet"></head>` +
				`<body><span class="foreign">Hello</span></body></html>`,
		},
		{
			name: "german page",
			src:  `<seite titel="Start" beschreibung="B" schlüsselwörter="S">x</seite>`,
			ctx:  pageContext(t, "de"),
			want: "<!DOCTYPE html>\n" +
				`<html dir="ltr" lang="de"><head><meta charset="utf-8"><title>Start | Site</title>` +
				`<link href="https://example.org/docs/index.html" rel="canonical">` +
				`<meta content="Jane Doe" name="author">` +
				`<meta content="B" name="description">` +
				`<meta content="S" name="keywords">` +
				`<link href="../style.css" rel="stylesheet"></head>` +
				`<body>x</body></html>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unfoldSource(t, tt.src, tt.ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unfold() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnfoldErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		ctx       *Context
		kind      UnfoldingErrorKind
		element   string
		attribute string
		expected  []string
	}{
		{
			name:     "missing localization",
			src:      "<localized><🇬🇧EN>Hi</🇬🇧EN></localized>",
			ctx:      &Context{Localization: localization(t, "en-US")},
			kind:     MissingLocalization,
			element:  "localized",
			expected: []string{"🇺🇸EN", "en-US"},
		},
		{
			name:      "page missing description",
			src:       `<page title="T" keywords="K">x</page>`,
			ctx:       pageContext(t, "en"),
			kind:      MissingAttribute,
			element:   "page",
			attribute: "description",
		},
		{
			name:      "german page with english attributes",
			src:       `<seite title="T" description="D" keywords="K">x</seite>`,
			ctx:       pageContext(t, "de"),
			kind:      MissingAttribute,
			element:   "seite",
			attribute: "titel",
		},
		{
			name:      "if without condition",
			src:       `<if>x</if>`,
			ctx:       &Context{},
			kind:      MissingAttribute,
			element:   "if",
			attribute: "condition",
		},
		{
			name:    "invalid condition",
			src:     `<if condition="(">x</if>`,
			ctx:     &Context{},
			kind:    InvalidCondition,
			element: "if",
		},
		{
			name:    "condition not boolean",
			src:     `<if condition="title">x</if>`,
			ctx:     &Context{Title: "t"},
			kind:    InvalidCondition,
			element: "if",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.src)
			require.NoError(t, err)

			out, err := Unfold(doc, tt.ctx)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.kind)

			var uerr *UnfoldingError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tt.element, uerr.Element)
			assert.Equal(t, tt.attribute, uerr.Attribute)
			assert.Equal(t, tt.expected, uerr.Expected)
			assert.NotEmpty(t, uerr.Error())

			// The input tree is left as it was.
			assert.Equal(t, tt.src, doc.Source())
		})
	}
}

func TestUnfoldingErrorMessage(t *testing.T) {
	_, err := unfoldSource(t, "<localized><x>y</x></localized>", &Context{Localization: localization(t, "de")})
	require.Error(t, err)
	assert.Equal(t, "<localized> hat kein Kindelement zur Lokalisation (erwartet: 🇩🇪DE, de)", err.Error())

	_, err = unfoldSource(t, `<page title="T">x</page>`, pageContext(t, "en"))
	require.Error(t, err)
	assert.Equal(t, `<page> is missing the "description" attribute`, err.Error())
}

func TestUnfoldLeavesInputUntouched(t *testing.T) {
	const src = "<p><foreign>x</foreign></p>"
	doc, err := Parse(src)
	require.NoError(t, err)

	out, err := Unfold(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, `<p><span class="foreign">x</span></p>`, out.Source())
	assert.Equal(t, src, doc.Source())
}

func TestUnfoldFixedPoint(t *testing.T) {
	inputs := []struct {
		src string
		ctx *Context
	}{
		{"<p><foreign>x</foreign></p>", nil},
		{"<localized><de><fremd>a</fremd></de></localized>", &Context{Localization: localization(t, "de")}},
		{`<page title="T" description="D" keywords="K"><if condition="true">x</if></page>`, pageContext(t, "en")},
	}
	for _, in := range inputs {
		doc, err := Parse(in.src)
		require.NoError(t, err)
		once, err := Unfold(doc, in.ctx)
		require.NoError(t, err)
		twice, err := Unfold(once, in.ctx)
		require.NoError(t, err)
		assert.Equal(t, once.Source(), twice.Source(), "input %q", in.src)
	}
}

func TestUnfolderCustomRules(t *testing.T) {
	// Renames every <note> to <aside>.
	note := RuleFunc(func(el *Element, _ *Context) ([]Content, bool, error) {
		if el.Name() != "note" {
			return nil, false, nil
		}
		el.SetName("aside")
		return []Content{el}, true, nil
	})

	var logs bytes.Buffer
	u := &Unfolder{
		Rules:  []Rule{note},
		Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	doc, err := Parse("<note><note>x</note></note><foreign>y</foreign>")
	require.NoError(t, err)
	out, err := u.Unfold(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "<aside><aside>x</aside></aside><foreign>y</foreign>", out.Source())
	assert.Contains(t, logs.String(), "passes=2")
}

func TestUnfolderMaxPasses(t *testing.T) {
	grow := RuleFunc(func(el *Element, _ *Context) ([]Content, bool, error) {
		if el.Name() != "grow" {
			return nil, false, nil
		}
		return []Content{el, NewElement("grow", nil)}, true, nil
	})
	u := &Unfolder{Rules: []Rule{grow}, MaxPasses: 5}
	doc, err := Parse("<grow></grow>")
	require.NoError(t, err)
	_, err = u.Unfold(doc, nil)
	assert.True(t, errors.Is(err, ErrNotConverged))
}
