package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher(config FetcherConfig) *Fetcher {
	if config.RateLimit == 0 {
		config.RateLimit = 1000
	}
	return NewWithConfig(config)
}

func TestFetcherConfig(t *testing.T) {
	f := New()
	assert.Equal(t, 10*time.Second, f.config.Timeout)
	assert.Equal(t, "copyscan/1.0", f.config.UserAgent)
	assert.Equal(t, int64(5<<20), f.config.MaxBodyBytes)
	assert.Nil(t, f.robots)
}

func TestFetchWithMockServer(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><p>This is a test paragraph.</p></body></html>`))
	}))
	defer server.Close()

	f := testFetcher(FetcherConfig{UserAgent: "test-agent"})
	page := f.Fetch(context.Background(), server.URL)

	require.True(t, page.OK, "err: %v", page.Err)
	assert.Equal(t, server.URL, page.URL)
	assert.Equal(t, http.StatusOK, page.Status)
	assert.Contains(t, page.RawHTML, "This is a test paragraph.")
	assert.Equal(t, "test-agent", userAgent)
}

func TestFetchDecodesCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "café" in Latin-1
		w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer server.Close()

	page := testFetcher(FetcherConfig{}).Fetch(context.Background(), server.URL)
	require.True(t, page.OK)
	assert.Contains(t, page.RawHTML, "café")
}

func TestFetchNonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte("<p>error page text</p>"))
			}))
			defer server.Close()

			page := testFetcher(FetcherConfig{}).Fetch(context.Background(), server.URL)
			assert.False(t, page.OK)
			assert.Empty(t, page.RawHTML)
			assert.Equal(t, status, page.Status)
			assert.ErrorIs(t, page.Err, ErrBadStatus)
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	f := testFetcher(FetcherConfig{Timeout: 50 * time.Millisecond})
	start := time.Now()
	page := f.Fetch(context.Background(), server.URL)

	assert.False(t, page.OK)
	assert.Error(t, page.Err)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := testFetcher(FetcherConfig{}).Fetch(ctx, "http://127.0.0.1:1/")
	assert.False(t, page.OK)
	assert.Error(t, page.Err)
}

func TestFetchUnsupportedURL(t *testing.T) {
	f := testFetcher(FetcherConfig{})
	for _, u := range []string{"ftp://example.com/file", "mailto:someone@example.com", "://bad"} {
		page := f.Fetch(context.Background(), u)
		assert.False(t, page.OK, u)
		assert.ErrorIs(t, page.Err, ErrUnsupportedURL, u)
	}
}

func TestFetchBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(strings.Repeat("a", 1000)))
	}))
	defer server.Close()

	page := testFetcher(FetcherConfig{MaxBodyBytes: 100}).Fetch(context.Background(), server.URL)
	require.True(t, page.OK)
	assert.Len(t, page.RawHTML, 100)
}

func TestFetchRespectsRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		default:
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<p>content</p>"))
		}
	}))
	defer server.Close()

	f := testFetcher(FetcherConfig{RespectRobots: true})

	page := f.Fetch(context.Background(), server.URL+"/private/page.html")
	assert.False(t, page.OK)
	assert.ErrorIs(t, page.Err, ErrRobotsDisallow)

	page = f.Fetch(context.Background(), server.URL+"/public/page.html")
	assert.True(t, page.OK)
}
