package extract

import (
	"context"

	"github.com/fwojciec/vidinfo"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxDepth is the number of delegation hops at which a reference
// chain is treated as a loop.
const DefaultMaxDepth = 5

// DefaultConcurrency is the number of playlist entries resolved at once.
const DefaultConcurrency = 4

// Resolver turns a URL into a terminal result. It follows references
// returned by extractors and resolves playlist entries through the same
// pipeline.
type Resolver struct {
	Dispatcher vidinfo.Dispatcher
	Fetcher    vidinfo.Fetcher
	Warner     vidinfo.Warner

	// MaxDepth bounds reference chains. A chain of MaxDepth references
	// fails with ELOOP. Defaults to DefaultMaxDepth.
	MaxDepth int

	// Concurrency bounds parallel playlist entry resolution.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// IgnoreErrors drops failing playlist entries with a warning instead
	// of failing the whole playlist.
	IgnoreErrors bool

	// Flat leaves playlist entries unresolved.
	Flat bool
}

// chain tracks one delegation path. It is copied, never shared, so sibling
// playlist entries do not see each other's visits.
type chain struct {
	visited map[string]bool
	hops    int
}

func (c chain) with(url string) chain {
	visited := make(map[string]bool, len(c.visited)+1)
	for u := range c.visited {
		visited[u] = true
	}
	visited[url] = true
	return chain{visited: visited, hops: c.hops}
}

// Resolve extracts url and resolves the outcome until it holds only media
// records, or playlists of them.
//
// If ctx is canceled while a playlist is being expanded, Resolve returns the
// entries resolved so far without error. It returns the context error when
// no entry was resolved.
func (r *Resolver) Resolve(ctx context.Context, url string) (*vidinfo.Result, error) {
	return r.resolve(ctx, vidinfo.Reference{URL: url}, chain{})
}

func (r *Resolver) resolve(ctx context.Context, ref vidinfo.Reference, c chain) (*vidinfo.Result, error) {
	if c.visited[ref.URL] {
		return nil, vidinfo.Errorf(vidinfo.ELOOP, "delegation cycle: %s was already visited", ref.URL)
	}
	c = c.with(ref.URL)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ex, err := r.pick(ref)
	if err != nil {
		return nil, err
	}

	env := &vidinfo.Env{Fetcher: r.Fetcher, Warner: r.Warner}
	res, err := ex.Extract(ctx, ref.URL, env)
	if err != nil {
		return nil, err
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}

	switch res.Kind {
	case vidinfo.KindReference:
		return r.follow(ctx, *res.Reference, c)
	case vidinfo.KindPlaylist:
		return r.expand(ctx, res.Playlist, ex.Name(), ref.URL, c)
	default:
		return vidinfo.MediaResult(stamp(res.Media, ex.Name(), ref.URL)), nil
	}
}

// follow resolves ref as one more hop of c. Playlist entries count as
// hops too, so chains through nested playlists are bounded.
func (r *Resolver) follow(ctx context.Context, ref vidinfo.Reference, c chain) (*vidinfo.Result, error) {
	c.hops++
	if c.hops >= r.maxDepth() {
		return nil, vidinfo.Errorf(vidinfo.ELOOP, "delegation depth %d exceeded at %s", r.maxDepth(), ref.URL)
	}
	return r.resolve(ctx, ref, c)
}

// pick selects the extractor for a reference, preferring its hint.
func (r *Resolver) pick(ref vidinfo.Reference) (vidinfo.Extractor, error) {
	if ref.ExtractorHint != "" {
		if ex, ok := r.Dispatcher.Lookup(ref.ExtractorHint); ok {
			return ex, nil
		}
		r.warnf("unknown extractor %q for %s; falling back to URL dispatch", ref.ExtractorHint, ref.URL)
	}
	return r.Dispatcher.Resolve(ref.URL)
}

// expand resolves playlist entries on a bounded worker pool and keeps
// them in their original order.
func (r *Resolver) expand(ctx context.Context, pl *vidinfo.Playlist, name, url string, c chain) (*vidinfo.Result, error) {
	if r.Flat {
		return vidinfo.PlaylistResult(pl.ID, pl.Title, pl.Entries), nil
	}

	results := make([]*vidinfo.Result, len(pl.Entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency())

	for i, e := range pl.Entries {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := r.resolveEntry(gctx, e, name, url, c)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				if r.IgnoreErrors {
					r.warnf("skipping playlist entry %d: %v", i+1, err)
					return nil
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()

	entries := make([]*vidinfo.Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			entries = append(entries, res)
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if len(entries) == 0 {
			return nil, ctxErr
		}
		return vidinfo.PlaylistResult(pl.ID, pl.Title, entries), nil
	}
	if err != nil {
		return nil, err
	}
	return vidinfo.PlaylistResult(pl.ID, pl.Title, entries), nil
}

func (r *Resolver) resolveEntry(ctx context.Context, e *vidinfo.Result, name, url string, c chain) (*vidinfo.Result, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	switch e.Kind {
	case vidinfo.KindReference:
		return r.follow(ctx, *e.Reference, c)
	case vidinfo.KindPlaylist:
		return r.expand(ctx, e.Playlist, name, url, c)
	default:
		return vidinfo.MediaResult(stamp(e.Media, name, url)), nil
	}
}

// stamp returns a copy of m carrying the extractor name and page URL
// unless the extractor already set them.
func stamp(m *vidinfo.MediaRecord, name, url string) *vidinfo.MediaRecord {
	out := *m
	if out.Extractor == "" {
		out.Extractor = name
	}
	if out.WebpageURL == "" {
		out.WebpageURL = url
	}
	return &out
}

func (r *Resolver) warnf(format string, args ...any) {
	env := vidinfo.Env{Warner: r.Warner}
	env.Warnf(format, args...)
}

func (r *Resolver) maxDepth() int {
	if r.MaxDepth > 0 {
		return r.MaxDepth
	}
	return DefaultMaxDepth
}

func (r *Resolver) concurrency() int {
	if r.Concurrency > 0 {
		return r.Concurrency
	}
	return DefaultConcurrency
}
