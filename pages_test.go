package sdg

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-sdg/sdghtml"
)

const indexPage = "<!DOCTYPE html>\n" +
	"<html dir=\"ltr\" lang=\"en\">\n" +
	" <head>\n" +
	"  <meta charset=\"utf-8\">\n" +
	"  <title>Home</title>\n" +
	"  <link href=\"https://example.org/index.html\" rel=\"canonical\">\n" +
	"  <meta content=\"Jane\" name=\"author\">\n" +
	"  <meta content=\"D\" name=\"description\">\n" +
	"  <meta content=\"K\" name=\"keywords\">\n" +
	" </head>\n" +
	" <body>\n" +
	"  <h1>Index</h1>\n" +
	"  Hello\n" +
	" </body>\n" +
	"</html>\n"

func newHandler(t *testing.T) *Handler {
	t.Helper()
	root, err := url.Parse("https://example.org/")
	require.NoError(t, err)
	loc, _ := sdghtml.LookupLocalization("en")
	return &Handler{
		FileSystem:   os.DirFS("testdata"),
		SiteRoot:     root,
		Author:       "Jane",
		Localization: &loc,
	}
}

func TestPages_Handler(t *testing.T) {
	tests := []struct {
		url        string
		wantStatus int
		wantBody   string
	}{
		{"GET /", 200, indexPage},
		{"GET /style.css", 200, "body { background: #fff; }\n"},
		{"GET /index.html", 404, "Not Found\n"},
		{"GET /missing", 404, "Not Found\n"},
		{"GET /docs", 404, "Not Found\n"},
		{"GET /docs/", 200, "<p>Hello</p>\n"},
		{"GET /docs/?localization=de", 200, "<p>Hallo</p>\n"},
		{"GET /docs/guide", 200, "<p>\n <span class=\"foreign\">Guide</span>\n</p>\n"},
		{"GET /docs/notes.txt", 200, "notes\n"},
		{"GET /.hidden/secret", 404, "Not Found\n"},
		{"GET /docs/?localization=xx", 400, "unknown localization \"xx\"\n"},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", i, tt.url), func(t *testing.T) {
			urlParts := strings.SplitN(tt.url, " ", 2)
			method, url := urlParts[0], urlParts[1]
			req, err := http.NewRequest(method, url, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()

			h := newHandler(t)
			h.OnError = func(r *http.Request, pagesErr error) { err = pagesErr }

			h.ServeHTTP(rr, req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestPages_HandlerErrors(t *testing.T) {
	tests := []struct {
		url  string
		want []string
	}{
		{
			url: "/broken",
			want: []string{
				"<title>Page could not be rendered</title>",
				`broken.html:2:1: unpaired "&lt;"; there is no matching "&gt;"`,
				"<pre>&lt;tag attribute=\"value\"\n^</pre>",
			},
		},
		{
			url: "/?localization=de",
			want: []string{
				"<title>Seite konnte nicht erstellt werden</title>",
				`unfold index.html: &lt;page&gt; fehlt das Attribut "titel"`,
				`<pre>&lt;page title="Home" description="D" keywords="K"&gt;</pre>`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			var got error
			h := newHandler(t)
			h.OnError = func(r *http.Request, err error) { got = err }

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Error(t, got)
			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
			for _, want := range tt.want {
				assert.Contains(t, rr.Body.String(), want)
			}
		})
	}
}

func TestPages_HandlerValidation(t *testing.T) {
	var logs bytes.Buffer
	h := newHandler(t)
	h.Validator = &sdghtml.Validator{}
	h.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/docs/hidden", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logs.String(), "Validate page")
	assert.Contains(t, logs.String(), "file=docs/hidden.html")
}

func TestPages_WebSocket(t *testing.T) {
	srv := httptest.NewServer(newHandler(t))
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/docs/", nil)
	require.NoError(t, err)
	defer ws.Close()

	for _, tt := range []struct{ localization, want string }{
		{"de", "<p>Hallo</p>\n"},
		{"", "<p>Hallo</p>\n"},
		{"en", "<p>Hello</p>\n"},
	} {
		require.NoError(t, ws.WriteJSON(localizationMessage{Localization: tt.localization}))
		typ, msg, err := ws.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, typ)
		assert.Equal(t, tt.want, string(msg))
	}

	require.NoError(t, ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}
