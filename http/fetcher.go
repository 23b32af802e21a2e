// Package http provides the HTTP side of stash: a page Fetcher used for
// metadata extraction and the gin-based JSON API server.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/stash"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for page fetches.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a page is read. Metadata lives in the
// document head, so truncating large bodies loses nothing useful.
const DefaultMaxBodySize = 5 << 20

// UserAgent identifies the fetcher to remote sites as a bot.
const UserAgent = "Mozilla/5.0 (compatible; BookmarkBot/1.0)"

// Ensure Fetcher implements stash.Fetcher at compile time.
var _ stash.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using a single HTTP GET.
// It never retries.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize sets how many bytes of the response body are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8.
// Every failure is reported with the EFETCH code.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", stash.Errorf(stash.EFETCH, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", stash.Errorf(stash.EFETCH, "timed out fetching %s", url)
		}
		return "", stash.Errorf(stash.EFETCH, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", stash.Errorf(stash.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", stash.Errorf(stash.EFETCH, "decoding %s: %v", url, err)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", stash.Errorf(stash.EFETCH, "reading %s: %v", url, err)
	}

	return string(b), nil
}
