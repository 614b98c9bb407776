package vidinfo

import (
	"context"
	"fmt"
)

// Extractor is one source-specific extraction variant.
type Extractor interface {
	// Name is the unique key used for registration and extractor hints.
	Name() string

	// URLPattern is the pattern a URL must match as a whole for this
	// variant to handle it.
	URLPattern() Pattern

	// Validate reports whether the variant handles url. It agrees with
	// the Dispatcher's use of URLPattern.
	Validate(url string) bool

	// Extract fetches and parses url. The result is a media record, a
	// reference to another URL, or a playlist.
	Extract(ctx context.Context, url string, env *Env) (*Result, error)
}

// Dispatcher selects the extractor for a URL.
type Dispatcher interface {
	// Resolve returns the first registered extractor whose pattern matches
	// the whole url. Returns an ENOMATCH error when none does.
	Resolve(url string) (Extractor, error)

	// Lookup returns the extractor registered under name.
	Lookup(name string) (Extractor, bool)

	// List returns the registered extractors in registration order.
	List() []Extractor
}

// Env is the per-call environment handed to an extractor.
type Env struct {
	Fetcher Fetcher
	Warner  Warner
}

// Fetch retrieves url through the environment's fetcher.
func (e *Env) Fetch(ctx context.Context, url, note string) (string, error) {
	return e.Fetcher.Fetch(ctx, url, note)
}

// Warnf reports a formatted warning. A nil Warner discards it.
func (e *Env) Warnf(format string, args ...any) {
	if e.Warner == nil {
		return
	}
	e.Warner.Warn(fmt.Sprintf(format, args...))
}
