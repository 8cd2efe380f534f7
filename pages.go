// Package sdg serves a site of HTML sources for preview. Every page is parsed, unfolded for the
// requested localization and formatted before it is sent to the client.
package sdg

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dpotapov/go-sdg/sdghtml"
)

// htmlExt is the extension of page sources. It is used when matching files in the file system.
const htmlExt = ".html"

// localizationParam is the query parameter selecting the localization of a page.
const localizationParam = "localization"

// wsUpgrader is a Gorilla WebSocket instance, used to respond HTTP requests with WebSocket.
var wsUpgrader = websocket.Upgrader{}

type Handler struct {
	// FileSystem to serve page sources and other web assets from.
	FileSystem fs.FS

	// SiteRoot is the URL the site is published under. It is used for canonical links. If nil,
	// the scheme and host of the request are used.
	SiteRoot *url.URL

	// Title is the site title appended to page titles.
	Title string

	// Author is the name placed into the author metadata of pages.
	Author string

	// CSS lists stylesheet paths relative to the site root.
	CSS []string

	// Localization is used when the request does not select one. If nil, localized content is
	// left as it is.
	Localization *sdghtml.Localization

	// Rules overrides the default unfolding rules.
	Rules []sdghtml.Rule

	// Formatter formats the unfolded pages.
	Formatter sdghtml.Formatter

	// Validator, if set, validates each rendered page and logs the diagnostics as warnings.
	Validator *sdghtml.Validator

	// OnError is a callback that is called when an error occurs while serving a page.
	OnError func(*http.Request, error)

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the handler only once.
	init sync.Once

	// logger is a private logger instance that is used to log internal events.
	logger *slog.Logger
}

// ServeHTTP implements the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.init.Do(func() {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if h.Logger != nil {
			h.logger = h.Logger
		}
	})

	if err := h.handleRequest(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		h.reportError(r, "Serve HTTP request", err)
	}
}

func (h *Handler) reportError(r *http.Request, msg string, err error) {
	h.logger.Error(msg, "url", r.URL.Redacted(), "error", err)
	if h.OnError != nil {
		h.OnError(r, err)
	}
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) error {
	urlPath := cleanPath(r.URL.EscapedPath())

	fsPath, err := h.matchFS(urlPath, ".")
	if err != nil {
		return err
	}

	if fsPath == "" {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return nil
	}

	if strings.HasSuffix(fsPath, htmlExt) {
		return h.servePage(w, r, fsPath)
	}

	return h.serveFile(w, r, fsPath)
}

// localizationMessage is sent by WebSocket clients to request a re-render.
type localizationMessage struct {
	Localization string `json:"localization"`
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request, fsPath string) error {
	loc := h.Localization
	if id := r.URL.Query().Get(localizationParam); id != "" {
		l, ok := sdghtml.LookupLocalization(id)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown localization %q", id), http.StatusBadRequest)
			return nil
		}
		loc = &l
	}

	if !websocket.IsWebSocketUpgrade(r) {
		page, err := h.render(r, fsPath, loc)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err != nil {
			h.reportError(r, "Render page", err)
			w.WriteHeader(http.StatusInternalServerError)
			page = errorPage(err, language(loc))
		}
		if _, err := io.WriteString(w, page.Source()); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		return nil
	}

	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	// Render the page on each incoming message until the connection is closed.
	for {
		var msg localizationMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read websocket message: %w", err)
		}

		if msg.Localization != "" {
			if l, ok := sdghtml.LookupLocalization(msg.Localization); ok {
				loc = &l
			} else {
				h.logger.Warn("Unknown localization", "localization", msg.Localization)
			}
		}

		page, err := h.render(r, fsPath, loc)
		if err != nil {
			h.reportError(r, "Render page", err)
			page = errorPage(err, language(loc))
		}

		if err := ws.WriteMessage(websocket.TextMessage, []byte(page.Source())); err != nil {
			return fmt.Errorf("write websocket message: %w", err)
		}
	}
}

// render parses, unfolds and formats the page at fsPath.
func (h *Handler) render(r *http.Request, fsPath string, loc *sdghtml.Localization) (*sdghtml.Document, error) {
	lang := language(loc)
	doc, err := sdghtml.ParseFile(h.FileSystem, fsPath, lang)
	if err != nil {
		return nil, err
	}

	u := &sdghtml.Unfolder{Rules: h.Rules, Logger: h.logger}
	doc, err = u.Unfold(doc, h.context(r, fsPath, loc))
	if err != nil {
		return nil, fmt.Errorf("unfold %s: %w", fsPath, err)
	}
	h.Formatter.Format(doc)

	if h.Validator != nil {
		base := h.siteRoot(r).ResolveReference(&url.URL{Path: fsPath})
		for _, d := range h.Validator.ValidateContext(r.Context(), doc, base) {
			h.logger.Warn("Validate page", "file", fsPath, "line", d.Line, "message", d.Message)
		}
	}
	return doc, nil
}

func (h *Handler) context(r *http.Request, fsPath string, loc *sdghtml.Localization) *sdghtml.Context {
	ctx := &sdghtml.Context{
		Localization: loc,
		SiteRoot:     h.siteRoot(r),
		RelativePath: fsPath,
		Title:        h.Title,
		CSS:          h.CSS,
	}
	if h.Author != "" {
		ctx.Author = sdghtml.Author(h.Author)
	}
	return ctx
}

func (h *Handler) siteRoot(r *http.Request) *url.URL {
	if h.SiteRoot != nil {
		return h.SiteRoot
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: r.Host, Path: "/"}
}

func language(loc *sdghtml.Localization) sdghtml.Language {
	if loc == nil {
		return sdghtml.DefaultLanguage
	}
	return loc.Language
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, fsPath string) error {
	r.URL.Path = fsPath
	r.URL.RawPath = fsPath
	http.FileServerFS(h.FileSystem).ServeHTTP(w, r)
	return nil
}

// match examples:
// - / -> /index.html
// - /foo -> /foo.html
// - /foo/ -> /foo/index.html
// - /foo/bar -> /foo/bar.html
// - /foo/file.txt -> /foo/file.txt
// - /foo/bar.html -> no match
func (h *Handler) matchFS(urlPath, dir string) (string, error) {
	if urlPath == "" {
		return "", nil
	}

	entries, err := fs.ReadDir(h.FileSystem, dir)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", dir, err)
	}

	seg, rest := firstSegment(urlPath)

	// skip hidden files and directories
	if seg[0] == '.' {
		return "", nil
	}

	if rest == "" {
		return matchFile(seg, dir, entries), nil
	}
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() == seg {
			return h.matchFS(rest, path.Join(dir, seg))
		}
	}
	return "", nil // no match
}

func matchFile(seg, dir string, entries []fs.DirEntry) string {
	if seg == "/" {
		seg = "index"
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		if path.Ext(name) == htmlExt {
			// match page by base name
			if strings.TrimSuffix(name, htmlExt) == seg {
				return path.Join(dir, name)
			}
		} else if name == seg {
			return path.Join(dir, name)
		}
	}

	return "" // no match
}

// cleanPath returns the canonical path for p, eliminating . and .. elements.
//
// Copied from net/http/server.go
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	// path.Clean removes trailing slash except for root;
	// put the trailing slash back if necessary.
	if p[len(p)-1] == '/' && np != "/" {
		// Fast path for common case of p being the string we want:
		if len(p) == len(np)+1 && strings.HasPrefix(p, np) {
			np = p
		} else {
			np += "/"
		}
	}
	return np
}

// firstSegment splits path into its first segment, and the rest.
// The path must begin with "/".
// If path consists of only a slash, firstSegment returns ("/", "").
// The segment is returned unescaped, if possible.
//
// Copied from net/http/routing_tree.go.
func firstSegment(path string) (seg, rest string) {
	if path == "/" {
		return "/", ""
	}
	path = path[1:] // drop initial slash
	i := strings.IndexByte(path, '/')
	if i < 0 {
		i = len(path)
	}
	return pathUnescape(path[:i]), path[i:]
}

// Copied from net/http/routing_tree.go.
func pathUnescape(path string) string {
	u, err := url.PathUnescape(path)
	if err != nil {
		// Invalidly escaped path; use the original
		return path
	}
	return u
}
