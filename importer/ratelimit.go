package importer

import (
	"context"
	"sync"

	"github.com/fwojciec/stash"
	"golang.org/x/time/rate"
)

// DefaultRate is the number of page fetches per second allowed to a single
// host during an import.
const DefaultRate = 1.0

var _ stash.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out imports that hit the same host. A bookmark list
// often holds many links to one site; hosts never wait on each other.
type DomainLimiter struct {
	rate rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing perHost fetches per second to
// each host. Values of zero or less select DefaultRate.
func NewDomainLimiter(perHost float64) *DomainLimiter {
	if perHost <= 0 {
		perHost = DefaultRate
	}
	return &DomainLimiter{
		rate:  rate.Limit(perHost),
		hosts: make(map[string]*rate.Limiter),
	}
}

// Rate returns the per-host fetch rate in requests per second.
func (d *DomainLimiter) Rate() float64 {
	return float64(d.rate)
}

// Wait blocks until host may be fetched again or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.forHost(host).Wait(ctx)
}

func (d *DomainLimiter) forHost(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.rate, 1)
		d.hosts[host] = l
	}
	return l
}
