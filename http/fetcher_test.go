package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/stash"
	stashhttp "github.com/fwojciec/stash/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := stashhttp.NewFetcher()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("identifies itself as a bot", func(t *testing.T) {
		t.Parallel()

		gotUA := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA <- r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		_, err := stashhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "Mozilla/5.0 (compatible; BookmarkBot/1.0)", <-gotUA)
	})

	t.Run("decodes declared charset to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			// "café" in Latin-1
			_, _ = w.Write([]byte{'<', 'p', '>', 'c', 'a', 'f', 0xe9, '<', '/', 'p', '>'})
		}))
		defer server.Close()

		html, err := stashhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", html)
	})

	t.Run("truncates bodies beyond the size limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer server.Close()

		fetcher := stashhttp.NewFetcher(stashhttp.WithMaxBodySize(10))

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, html, 10)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := stashhttp.NewFetcher(stashhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, stash.EFETCH, stash.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := stashhttp.NewFetcher().Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.Equal(t, stash.EFETCH, stash.ErrorCode(err))
	})

	t.Run("returns fetch error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := stashhttp.NewFetcher(stashhttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, stash.EFETCH, stash.ErrorCode(err))
	})

	t.Run("returns fetch error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		_, err := stashhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, stash.EFETCH, stash.ErrorCode(err))
		assert.Contains(t, stash.ErrorMessage(err), "404")
	})

	t.Run("accepts other 2xx responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("partial"))
		}))
		defer server.Close()

		html, err := stashhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "partial", html)
	})
}
