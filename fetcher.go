package stash

import "context"

// Fetcher retrieves the raw markup of a web page.
type Fetcher interface {
	// Fetch performs a single bounded GET of url and returns the body
	// decoded to UTF-8. Unreachable hosts and non-success responses
	// return an EFETCH error.
	Fetch(ctx context.Context, url string) (html string, err error)
}
