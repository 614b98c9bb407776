package vidinfo

import "context"

// Fetcher retrieves page text from URLs.
type Fetcher interface {
	// Fetch returns the body of url. The note describes the purpose of the
	// request ("webpage", "HD check page") and is used only for progress
	// reporting. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url, note string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter rate-limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, domain string) error
}
