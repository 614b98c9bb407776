// Package extract orchestrates site extractors: URL dispatch, delegation
// and playlist resolution, quality probing and listing aggregation.
package extract

import (
	"strings"
	"sync"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/regexp2"
)

var _ vidinfo.Dispatcher = (*Registry)(nil)

// Registry is an ordered set of extractors. Resolve tests a URL against
// each extractor's pattern in registration order and returns the first
// whole-URL match, so catch-all extractors must be registered last.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	extractor vidinfo.Extractor
	matcher   *regexp2.URLMatcher
}

// NewRegistry creates a Registry holding the given extractors.
func NewRegistry(extractors ...vidinfo.Extractor) (*Registry, error) {
	r := &Registry{}
	for _, e := range extractors {
		if err := r.Register(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends an extractor. It fails for an empty or duplicate name
// and for a pattern that does not compile.
func (r *Registry) Register(e vidinfo.Extractor) error {
	name := e.Name()
	if name == "" {
		return vidinfo.Errorf(vidinfo.EINVALID, "extractor name required")
	}

	m, err := regexp2.NewURLMatcher(e.URLPattern())
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if strings.EqualFold(existing.extractor.Name(), name) {
			return vidinfo.Errorf(vidinfo.ECONFLICT, "extractor %q already registered", name)
		}
	}
	r.entries = append(r.entries, entry{extractor: e, matcher: m})
	return nil
}

// Resolve returns the first extractor whose pattern matches the whole url.
func (r *Registry) Resolve(url string) (vidinfo.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.matcher.Match(url) {
			return e.extractor, nil
		}
	}
	return nil, vidinfo.Errorf(vidinfo.ENOMATCH, "no extractor matches %s", url)
}

// Lookup returns the extractor registered under name, ignoring case.
func (r *Registry) Lookup(name string) (vidinfo.Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if strings.EqualFold(e.extractor.Name(), name) {
			return e.extractor, true
		}
	}
	return nil, false
}

// List returns the extractors in registration order.
func (r *Registry) List() []vidinfo.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vidinfo.Extractor, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.extractor
	}
	return out
}
