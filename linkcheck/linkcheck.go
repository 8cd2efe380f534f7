// Package linkcheck reports whether remote links are reachable.
package linkcheck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dpotapov/go-sdg/sdghtml"
)

// DefaultTimeout bounds a single check.
const DefaultTimeout = 10 * time.Second

// StatusError is returned for responses with a status code of 400 or above.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPChecker checks links with a HEAD request, falling back to GET for servers that reject
// HEAD. Failed requests are not retried.
type HTTPChecker struct {
	// Client is used for requests. If nil, http.DefaultClient is used.
	Client *http.Client

	// Timeout bounds each check. If zero, DefaultTimeout is used.
	Timeout time.Duration

	// Logger receives debug events. If nil, nothing is logged.
	Logger *slog.Logger
}

var _ sdghtml.LinkChecker = (*HTTPChecker)(nil)

// Check implements sdghtml.LinkChecker.
func (c *HTTPChecker) Check(ctx context.Context, u *url.URL) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	code, err := c.do(ctx, http.MethodHead, u)
	if err == nil && (code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented) {
		code, err = c.do(ctx, http.MethodGet, u)
	}
	c.logger().Debug("Link checked", "url", u.String(), "status", code, "error", err)
	if err != nil {
		return err
	}
	if code >= http.StatusBadRequest {
		return &StatusError{URL: u.String(), StatusCode: code}
	}
	return nil
}

func (c *HTTPChecker) do(ctx context.Context, method string, u *url.URL) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	return resp.StatusCode, nil
}

func (c *HTTPChecker) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
