package sdghtml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatSource(t *testing.T, f Formatter, src string) string {
	t.Helper()
	doc, err := Parse(src)
	require.NoError(t, err)
	f.Format(doc)
	return doc.Source()
}

func TestFormat(t *testing.T) {
	long := strings.Repeat("x", 60)
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "document",
			src:  `<!DOCTYPE  html > <html lang="zxx" > <head> <title> ... </title> </head> <body> </body> </html>`,
			want: "<!DOCTYPE html>\n<html lang=\"zxx\">\n <head>\n  <title>...</title>\n </head>\n <body></body>\n</html>\n",
		},
		{
			name: "sorted attributes",
			src:  `<p z="1"  a="2" m >x</p>`,
			want: "<p a=\"2\" m z=\"1\">x</p>\n",
		},
		{
			name: "long attributes",
			src:  `<div bbbb="` + long + `" aaaa="` + long + `"></div>`,
			want: "<div\n aaaa=\"" + long + "\"\n bbbb=\"" + long + "\"\n></div>\n",
		},
		{
			name: "comment",
			src:  "<!--   hello\n  world -->",
			want: "<!-- hello world -->\n",
		},
		{
			name: "mixed content",
			src:  "<div>a<p>  b  </p>c</div>",
			want: "<div>\n a\n <p>b</p>\n c\n</div>\n",
		},
		{
			name: "nested lists",
			src:  "<ul><li>a</li>\n\n<li><ul><li>b</li></ul></li></ul>",
			want: "<ul>\n <li>a</li>\n <li>\n  <ul>\n   <li>b</li>\n  </ul>\n </li>\n</ul>\n",
		},
		{
			name: "self-closing",
			src:  "<p>a<br />b</p>",
			want: "<p>\n a\n <br/>\n b\n</p>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatSource(t, Formatter{}, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		`<!DOCTYPE  html > <html lang="zxx" > <head> <title> ... </title> </head> <body> </body> </html>`,
		"<div>a<p>  b  </p>c<!--x--></div>",
		`<p z="1" a="2" m>x</p>`,
		`<div bbbb="` + strings.Repeat("y", 80) + `" aaaa="z"><span>t</span></div>`,
		"<!-- only a comment -->",
		"plain text",
		"<a><b><c>deep</c></b></a>",
	}
	for _, src := range inputs {
		once := formatSource(t, Formatter{}, src)
		twice := formatSource(t, Formatter{}, once)
		assert.Equal(t, once, twice, "input %q", src)
	}
}

func TestFormatAttributeWidth(t *testing.T) {
	got := formatSource(t, Formatter{AttributeWidth: 10}, `<p id="abcdef" class="x"></p>`)
	assert.Equal(t, "<p\n class=\"x\"\n id=\"abcdef\"\n></p>\n", got)

	got = formatSource(t, Formatter{}, `<p id="abcdef" class="x"></p>`)
	assert.Equal(t, "<p class=\"x\" id=\"abcdef\"></p>\n", got)
}

func TestFormatElement(t *testing.T) {
	ul := UnorderedList(nil, ListItem(nil, NewText("a")), ListItem(nil, NewText("b")))
	Format(ul)
	assert.Equal(t, "<ul>\n <li>a</li>\n <li>b</li>\n</ul>", ul.Source())
}
