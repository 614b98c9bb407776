// Package http provides a plain HTTP implementation of vidinfo.Fetcher.
// Extractors only read page sources, so no JavaScript is executed.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/vidinfo"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent unless WithUserAgent overrides it. Several
// sources serve a stripped page to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:10.0) Gecko/20100101 Firefox/10.0"

// DefaultMaxBodySize caps the bytes read from a response.
const DefaultMaxBodySize = 16 << 20

// Ensure Fetcher implements vidinfo.Fetcher at compile time.
var _ vidinfo.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page sources with HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the response size. Longer bodies fail with EEXTRACT.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of url. A non-200 response is an EEXTRACT error
// naming the note, e.g. "unable to download webpage: HTTP 404".
func (f *Fetcher) Fetch(ctx context.Context, url, note string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", vidinfo.Errorf(vidinfo.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-us,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", vidinfo.Errorf(vidinfo.EEXTRACT, "unable to download %s: %v", note, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", vidinfo.Errorf(vidinfo.EEXTRACT, "unable to download %s: HTTP %d for %s", note, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", vidinfo.Errorf(vidinfo.EEXTRACT, "unable to read %s: %v", note, err)
	}
	if int64(len(body)) > f.maxBody {
		return "", vidinfo.Errorf(vidinfo.EEXTRACT, "%s too large: more than %d bytes", note, f.maxBody)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
