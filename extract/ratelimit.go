package extract

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/vidinfo"
	"golang.org/x/time/rate"
)

var _ vidinfo.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Requests to different domains proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per domain, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

var _ vidinfo.Fetcher = (*LimitedFetcher)(nil)

// LimitedFetcher waits on a DomainLimiter before each fetch.
type LimitedFetcher struct {
	next    vidinfo.Fetcher
	limiter vidinfo.DomainLimiter
}

// NewLimitedFetcher wraps next with limiter.
func NewLimitedFetcher(next vidinfo.Fetcher, limiter vidinfo.DomainLimiter) *LimitedFetcher {
	return &LimitedFetcher{next: next, limiter: limiter}
}

// Fetch waits for the URL's host and delegates.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL, note string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", vidinfo.Errorf(vidinfo.EINVALID, "invalid URL %q", rawURL)
	}
	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return "", err
	}
	return f.next.Fetch(ctx, rawURL, note)
}

// Close delegates to the wrapped fetcher.
func (f *LimitedFetcher) Close() error {
	return f.next.Close()
}
