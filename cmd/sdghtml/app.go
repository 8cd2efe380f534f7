package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dpotapov/go-sdg/linkcheck"
	"github.com/dpotapov/go-sdg/sdghtml"
)

// command processes files and reports whether all of them succeeded.
type command func(ctx context.Context, a *app, files []string) bool

var commands = map[string]command{
	"format":   formatFiles,
	"unfold":   unfoldFiles,
	"validate": validateFiles,
	"dump":     dumpFiles,
	"serve":    serveSite,
}

type app struct {
	cfg      config
	loc      *sdghtml.Localization
	siteRoot *url.URL
	write    bool
	addr     string
	stdout   io.Writer
	out      *printer
	logger   *slog.Logger

	links sdghtml.LinkChecker
	cache *linkcheck.Cache
}

func newApp(cfg config, write bool, stdout io.Writer, out *printer, logger *slog.Logger) (*app, error) {
	loc, err := cfg.localization()
	if err != nil {
		return nil, err
	}
	siteRoot, err := cfg.siteRoot()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		loc:      loc,
		siteRoot: siteRoot,
		write:    write,
		stdout:   stdout,
		out:      out,
		logger:   logger,
	}

	if cfg.CheckLinks {
		a.links = &linkcheck.HTTPChecker{Timeout: cfg.LinkTimeout, Logger: logger}
		if cfg.LinkCache != "" {
			a.cache, err = linkcheck.Open(cfg.LinkCache, a.links, cfg.LinkCacheTTL)
			if err != nil {
				return nil, err
			}
			a.links = a.cache
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("Close link cache", "error", err)
		}
	}
}

// relPath returns the slash-separated path of file relative to the configured root.
func (a *app) relPath(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs(a.cfg.Root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside of the root directory %s", file, a.cfg.Root)
	}
	return filepath.ToSlash(rel), nil
}

func (a *app) parse(file string) (*sdghtml.Document, string, error) {
	rel, err := a.relPath(file)
	if err != nil {
		return nil, "", err
	}
	doc, err := sdghtml.ParseFile(os.DirFS(a.cfg.Root), rel, a.loc.Language)
	if err != nil {
		return nil, "", err
	}
	return doc, rel, nil
}

func (a *app) context(rel string) *sdghtml.Context {
	ctx := &sdghtml.Context{
		Localization: a.loc,
		SiteRoot:     a.siteRoot,
		RelativePath: rel,
		Title:        a.cfg.Title,
		CSS:          a.cfg.CSS,
	}
	if a.cfg.Author != "" {
		ctx.Author = sdghtml.Author(a.cfg.Author)
	}
	return ctx
}

func (a *app) formatter() sdghtml.Formatter {
	return sdghtml.Formatter{AttributeWidth: a.cfg.AttributeWidth}
}

// emit writes the source of doc to stdout, or back to file with --write.
func (a *app) emit(file string, doc *sdghtml.Document) error {
	if !a.write {
		_, err := io.WriteString(a.stdout, doc.Source())
		return err
	}
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	return os.WriteFile(file, []byte(doc.Source()), info.Mode().Perm())
}

func formatFiles(_ context.Context, a *app, files []string) bool {
	ok := true
	for _, file := range files {
		doc, _, err := a.parse(file)
		if err == nil {
			a.formatter().Format(doc)
			err = a.emit(file, doc)
		}
		if err != nil {
			a.out.error(err)
			ok = false
		}
	}
	return ok
}

func unfoldFiles(_ context.Context, a *app, files []string) bool {
	ok := true
	for _, file := range files {
		if err := a.unfold(file); err != nil {
			a.out.error(err)
			ok = false
		}
	}
	return ok
}

func (a *app) unfold(file string) error {
	doc, rel, err := a.parse(file)
	if err != nil {
		return err
	}
	u := &sdghtml.Unfolder{Logger: a.logger}
	doc, err = u.Unfold(doc, a.context(rel))
	if err != nil {
		return fmt.Errorf("unfold %s: %w", file, err)
	}
	a.formatter().Format(doc)
	return a.emit(file, doc)
}

func dumpFiles(_ context.Context, a *app, files []string) bool {
	ok := true
	for _, file := range files {
		doc, _, err := a.parse(file)
		if err != nil {
			a.out.error(err)
			ok = false
			continue
		}
		fmt.Fprint(a.stdout, sdghtml.Dump(doc))
	}
	return ok
}

type validation struct {
	diags []sdghtml.Diagnostic
	err   error
}

// validateFiles validates the files concurrently and reports the results in argument order.
func validateFiles(ctx context.Context, a *app, files []string) bool {
	v := &sdghtml.Validator{Links: a.links, Language: a.loc.Language, Logger: a.logger}

	results := make([]validation, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, rel, err := a.parse(file)
			if err != nil {
				results[i].err = err
				return
			}
			results[i].diags = v.ValidateContext(ctx, doc, a.baseURL(file, rel))
		}()
	}
	wg.Wait()

	ok := true
	for i, r := range results {
		if r.err != nil {
			a.out.error(r.err)
			ok = false
			continue
		}
		for _, d := range r.diags {
			a.out.diagnostic(files[i], d)
			ok = false
		}
	}
	return ok
}

// baseURL is the published URL of the page, or its file URL if no site root is configured.
func (a *app) baseURL(file, rel string) *url.URL {
	if a.siteRoot != nil {
		return a.siteRoot.ResolveReference(&url.URL{Path: rel})
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
}
