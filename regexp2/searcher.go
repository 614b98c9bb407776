// Package regexp2 implements vidinfo.FieldSearcher and anchored URL matching
// on top of github.com/dlclark/regexp2.
package regexp2

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/fwojciec/vidinfo"
)

// DefaultMatchTimeout bounds a single match attempt.
const DefaultMatchTimeout = 2 * time.Second

// Ensure Searcher implements vidinfo.FieldSearcher at compile time.
var _ vidinfo.FieldSearcher = (*Searcher)(nil)

// Searcher runs ordered fallback pattern searches. Compiled patterns are
// cached, so a Searcher should be shared. It is safe for concurrent use.
type Searcher struct {
	timeout time.Duration

	mu    sync.Mutex
	cache map[vidinfo.Pattern]*regexp2.Regexp
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithMatchTimeout sets the per-match timeout.
// Defaults to DefaultMatchTimeout if not specified.
func WithMatchTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// NewSearcher creates a new Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		timeout: DefaultMatchTimeout,
		cache:   make(map[vidinfo.Pattern]*regexp2.Regexp),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search tries each pattern in order and returns the first match.
func (s *Searcher) Search(patterns vidinfo.PatternSet, text, field string) (*vidinfo.Match, error) {
	for _, p := range patterns {
		re, err := s.compile(p)
		if err != nil {
			return nil, err
		}
		m, err := re.FindStringMatch(text)
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", field, err)
		}
		if m != nil {
			return convert(m), nil
		}
	}
	return nil, vidinfo.FieldNotFound(field)
}

// FindAll returns every non-overlapping match of p in text, in order.
func (s *Searcher) FindAll(p vidinfo.Pattern, text string) ([]*vidinfo.Match, error) {
	re, err := s.compile(p)
	if err != nil {
		return nil, err
	}

	var matches []*vidinfo.Match
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		matches = append(matches, convert(m))
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *Searcher) compile(p vidinfo.Pattern) (*regexp2.Regexp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if re, ok := s.cache[p]; ok {
		return re, nil
	}
	re, err := Compile(p)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = s.timeout
	s.cache[p] = re
	return re, nil
}

// Compile compiles a pattern with the regexp2 options named by its flags.
func Compile(p vidinfo.Pattern) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(p.Expr, options(p))
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "invalid pattern %q: %v", p.Expr, err)
	}
	return re, nil
}

func options(p vidinfo.Pattern) regexp2.RegexOptions {
	opts := regexp2.None
	if p.Has(vidinfo.IgnoreCase) {
		opts |= regexp2.IgnoreCase
	}
	if p.Has(vidinfo.Multiline) {
		opts |= regexp2.Multiline
	}
	if p.Has(vidinfo.DotAll) {
		opts |= regexp2.Singleline
	}
	return opts
}

// convert copies a regexp2 match into a vidinfo.Match. Group 0 is the whole
// match and is stored as Text only.
func convert(m *regexp2.Match) *vidinfo.Match {
	groups := m.Groups()
	out := &vidinfo.Match{Text: m.String()}
	for _, g := range groups[1:] {
		out.Groups = append(out.Groups, vidinfo.Group{
			Name:    g.Name,
			Value:   g.String(),
			Matched: len(g.Captures) > 0,
		})
	}
	return out
}
