// Package site holds one extractor per supported source. Every extractor
// matches its URLs with an anchored pattern and builds its result from
// fetched pages with the shared field searcher.
package site

import (
	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/regexp2"
)

// Dependencies are the collaborators shared by the extractors.
type Dependencies struct {
	Searcher vidinfo.FieldSearcher

	// Converter turns description HTML into text. Optional.
	Converter vidinfo.Converter

	// Metadata is consulted in order by the generic extractor.
	Metadata []vidinfo.MetadataExtractor
}

// All returns every extractor in registration order. The generic
// extractor matches any http(s) URL and comes last.
func All(deps Dependencies) []vidinfo.Extractor {
	return []vidinfo.Extractor{
		NewXHamster(deps.Searcher),
		NewIMDb(deps.Searcher, deps.Converter),
		NewIMDbList(deps.Searcher),
		NewSpace(),
		NewBrightcove(deps.Searcher),
		NewGameTrailers(deps.Searcher),
		NewGeneric(deps.Metadata...),
	}
}

// base implements the identity half of vidinfo.Extractor.
type base struct {
	name    string
	pattern vidinfo.Pattern
	matcher *regexp2.URLMatcher
}

func newBase(name string, pattern vidinfo.Pattern) base {
	return base{
		name:    name,
		pattern: pattern,
		matcher: regexp2.MustURLMatcher(pattern),
	}
}

// Name returns the extractor's registration key.
func (b *base) Name() string {
	return b.name
}

// URLPattern returns the pattern URLs must match as a whole.
func (b *base) URLPattern() vidinfo.Pattern {
	return b.pattern
}

// Validate reports whether url is handled by the extractor.
func (b *base) Validate(url string) bool {
	return b.matcher.Match(url)
}

// match returns the URL captures, or ENOMATCH for a foreign URL.
func (b *base) match(url string) (*vidinfo.Match, error) {
	m, ok := b.matcher.Submatch(url)
	if !ok {
		return nil, vidinfo.Errorf(vidinfo.ENOMATCH, "%s cannot handle %s", b.name, url)
	}
	return m, nil
}

// searchOptional returns the first match's value, or "" with a warning.
func searchOptional(s vidinfo.FieldSearcher, env *vidinfo.Env, patterns vidinfo.PatternSet, text, field string) (string, error) {
	m, err := s.Search(patterns, text, field)
	if vidinfo.ErrorCode(err) == vidinfo.ENOTFOUND {
		env.Warnf("unable to extract %s; please report this issue", field)
		return "", nil
	} else if err != nil {
		return "", err
	}
	return m.Value(), nil
}
