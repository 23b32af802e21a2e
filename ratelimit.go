package stash

import "context"

// DomainLimiter provides per-domain rate limiting for outbound requests.
// Implementations should be safe for concurrent use.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
