package linkcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/dpotapov/go-sdg/sdghtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/missing", http.NotFound)
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func mustParse(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestHTTPChecker(t *testing.T) {
	srv := newServer(t)
	c := &HTTPChecker{Client: srv.Client(), Timeout: 100 * time.Millisecond}

	tests := []struct {
		path   string
		status int
		dead   bool
	}{
		{"/ok", 0, false},
		{"/get-only", 0, false},
		{"/missing", http.StatusNotFound, true},
		{"/slow", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := c.Check(context.Background(), mustParse(t, srv.URL+tt.path))
			if !tt.dead {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var serr *StatusError
			if tt.status != 0 {
				require.ErrorAs(t, err, &serr)
				assert.Equal(t, tt.status, serr.StatusCode)
			} else {
				assert.False(t, errors.As(err, &serr))
			}
		})
	}
}

func TestHTTPCheckerWithValidator(t *testing.T) {
	srv := newServer(t)
	doc, err := sdghtml.Parse(`<a href="/ok">a</a><a href="/missing">b</a>`)
	require.NoError(t, err)

	v := &sdghtml.Validator{Links: &HTTPChecker{Client: srv.Client()}}
	diags := v.Validate(doc, mustParse(t, srv.URL+"/"))
	require.Len(t, diags, 1)
	assert.Equal(t, "dead link: "+srv.URL+"/missing", diags[0].Message)
}

type countingChecker struct {
	calls int
	err   error
}

func (c *countingChecker) Check(context.Context, *url.URL) error {
	c.calls++
	return c.err
}

func TestCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.db")
	next := &countingChecker{}
	c, err := Open(path, next, time.Hour)
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	live := mustParse(t, "https://live.invalid/")
	require.NoError(t, c.Check(context.Background(), live))
	require.NoError(t, c.Check(context.Background(), live))
	assert.Equal(t, 1, next.calls)

	now = now.Add(2 * time.Hour)
	require.NoError(t, c.Check(context.Background(), live))
	assert.Equal(t, 2, next.calls)

	require.NoError(t, c.Forget(live))
	require.NoError(t, c.Check(context.Background(), live))
	assert.Equal(t, 3, next.calls)

	next.err = errors.New("dead")
	dead := mustParse(t, "https://dead.invalid/")
	assert.Error(t, c.Check(context.Background(), dead))
	assert.Error(t, c.Check(context.Background(), dead))
	assert.Equal(t, 5, next.calls)
	require.NoError(t, c.Close())

	// Entries survive reopening.
	next.err = nil
	c, err = Open(path, next, 0)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Check(context.Background(), live))
	assert.Equal(t, 5, next.calls)
}
