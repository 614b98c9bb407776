package mock

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

var _ vidinfo.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of vidinfo.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url, note string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url, note string) (string, error) {
	return f.FetchFn(ctx, url, note)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ vidinfo.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of vidinfo.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
