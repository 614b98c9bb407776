package regexp2

import (
	"github.com/dlclark/regexp2"
	"github.com/fwojciec/vidinfo"
)

// URLMatcher tests whole URLs against an extractor's pattern.
type URLMatcher struct {
	re *regexp2.Regexp
}

// NewURLMatcher compiles p anchored at both ends of the input.
func NewURLMatcher(p vidinfo.Pattern) (*URLMatcher, error) {
	anchored := p
	anchored.Expr = `\A(?:` + p.Expr + `)\z`
	re, err := Compile(anchored)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = DefaultMatchTimeout
	return &URLMatcher{re: re}, nil
}

// MustURLMatcher is like NewURLMatcher but panics on an invalid pattern.
// It is meant for package-level extractor patterns.
func MustURLMatcher(p vidinfo.Pattern) *URLMatcher {
	m, err := NewURLMatcher(p)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether the whole url matches.
func (m *URLMatcher) Match(url string) bool {
	ok, err := m.re.MatchString(url)
	return err == nil && ok
}

// Submatch returns the captures of a whole-url match.
func (m *URLMatcher) Submatch(url string) (*vidinfo.Match, bool) {
	match, err := m.re.FindStringMatch(url)
	if err != nil || match == nil {
		return nil, false
	}
	return convert(match), true
}
