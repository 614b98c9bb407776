package extract

import (
	"context"
	"time"

	"github.com/fwojciec/vidinfo"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

var _ vidinfo.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries failed fetches with backoff. Each retry is reported
// to the warner.
type RetryFetcher struct {
	next   vidinfo.Fetcher
	warner vidinfo.Warner
	delays []time.Duration
}

// NewRetryFetcher wraps next. A nil delays slice uses DefaultRetryDelays.
func NewRetryFetcher(next vidinfo.Fetcher, warner vidinfo.Warner, delays []time.Duration) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, warner: warner, delays: delays}
}

// Fetch attempts the fetch up to len(delays)+1 times.
func (f *RetryFetcher) Fetch(ctx context.Context, url, note string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := f.next.Fetch(ctx, url, note)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if f.warner != nil {
			env := vidinfo.Env{Warner: f.warner}
			env.Warnf("retrying %s %s (attempt %d): %v", note, url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
