package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/dpotapov/go-sdg"
	"github.com/dpotapov/go-sdg/sdghtml"
)

const shutdownTimeout = 5 * time.Second

func logRequests(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("HTTP request", "method", r.Method, "url", r.URL)
		next.ServeHTTP(w, r)
	})
}

// handler previews the site in dir. Pages are validated on every request and the diagnostics
// are logged.
func (a *app) handler(dir string) http.Handler {
	h := &sdg.Handler{
		FileSystem:   os.DirFS(dir),
		SiteRoot:     a.siteRoot,
		Title:        a.cfg.Title,
		Author:       a.cfg.Author,
		CSS:          a.cfg.CSS,
		Localization: a.loc,
		Formatter:    a.formatter(),
		Validator:    &sdghtml.Validator{Links: a.links, Language: a.loc.Language, Logger: a.logger},
		Logger:       a.logger,
	}
	return logRequests(h, a.logger)
}

// serveSite serves the preview of a site directory until ctx is done.
func serveSite(ctx context.Context, a *app, args []string) bool {
	if len(args) != 1 {
		a.out.error(fmt.Errorf("serve expects one directory, got %d arguments", len(args)))
		return false
	}

	l, err := net.Listen("tcp", a.addr)
	if err != nil {
		a.out.error(err)
		return false
	}
	srv := &http.Server{Handler: a.handler(args[0])}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Shutdown server", "error", err)
		}
	}()

	a.logger.Info("Serve site", "addr", l.Addr().String(), "dir", args[0])
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.out.error(err)
		return false
	}
	return true
}
