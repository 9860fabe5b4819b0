package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/linkcheck"
	"golang.org/x/time/rate"
)

// Compile-time interface verification.
var _ linkcheck.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles requests per domain using token buckets, so a
// crawl stays polite to each host it touches while still fetching from
// different hosts concurrently. This is client-side throttling only;
// server rate-limit responses (429) are recorded as outcomes like any
// other status.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per domain with a burst of one.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
