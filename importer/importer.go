// Package importer bulk-creates bookmarks from a list of URLs.
package importer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fwojciec/stash"
	"github.com/fwojciec/stash/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of bookmarks created in parallel.
const DefaultConcurrency = 4

// Importer creates a bookmark for every new URL in a list. Each bookmark
// goes through the regular creation pipeline; the importer only adds
// deduplication, bounded parallelism and per-host rate limiting.
type Importer struct {
	Creator     stash.BookmarkCreator
	Bookmarks   stash.BookmarkService
	RateLimiter stash.DomainLimiter
	Concurrency int
}

// Result holds the outcome of an import.
type Result struct {
	Created int
	Skipped int
	Failed  int
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Bookmark  *stash.Bookmark
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCreated
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

type outcome struct {
	url      string
	bookmark *stash.Bookmark
	skipped  bool
	err      error
}

// ParseURLList reads one URL per line. Blank lines and lines starting
// with # are ignored.
func ParseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read URL list: %w", err)
	}
	return urls, nil
}

// Import creates bookmarks owned by userID for urls. Duplicates within the
// list and URLs the user already saved are skipped. Individual failures are
// reported through progress and counted; the returned error is non-nil only
// when ctx ends the import early.
func (im *Importer) Import(ctx context.Context, userID string, urls []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := im.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	seen := bloom.NewFilter(uint(total), 0.0001)
	outcomes := make(chan outcome, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range urls {
			if seen.TestAndAdd(u) {
				outcomes <- outcome{url: u, skipped: true}
				continue
			}
			g.Go(func() error {
				outcomes <- im.importURL(gctx, userID, u)
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	result := &Result{}
	completed := 0
	for o := range outcomes {
		completed++
		event := ProgressEvent{Completed: completed, Total: total, URL: o.url}
		switch {
		case o.err != nil:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = o.err
		case o.skipped:
			result.Skipped++
			event.Type = ProgressSkipped
		default:
			result.Created++
			event.Type = ProgressCreated
			event.Bookmark = o.bookmark
		}
		progress(event)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	return result, ctx.Err()
}

func (im *Importer) importURL(ctx context.Context, userID, rawURL string) outcome {
	o := outcome{url: rawURL}

	existing, err := im.Bookmarks.FindBookmarks(ctx, stash.BookmarkFilter{UserID: userID, URL: &rawURL, Limit: 1})
	if err != nil {
		o.err = err
		return o
	}
	if len(existing) > 0 {
		o.skipped = true
		return o
	}

	if im.RateLimiter != nil {
		if err := im.RateLimiter.Wait(ctx, host(rawURL)); err != nil {
			o.err = err
			return o
		}
	}

	o.bookmark, o.err = im.Creator.CreateBookmark(ctx, userID, &stash.BookmarkRequest{URL: rawURL}, nil)
	return o
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return strings.ToLower(u.Hostname())
}
