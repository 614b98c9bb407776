package mock

import "github.com/fwojciec/vidinfo"

var _ vidinfo.Converter = (*Converter)(nil)

// Converter is a mock implementation of vidinfo.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ vidinfo.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of vidinfo.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html, pageURL string) (*vidinfo.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html, pageURL string) (*vidinfo.PageMetadata, error) {
	return e.ExtractMetadataFn(html, pageURL)
}

var _ vidinfo.FieldSearcher = (*FieldSearcher)(nil)

// FieldSearcher is a mock implementation of vidinfo.FieldSearcher.
type FieldSearcher struct {
	SearchFn  func(patterns vidinfo.PatternSet, text, field string) (*vidinfo.Match, error)
	FindAllFn func(p vidinfo.Pattern, text string) ([]*vidinfo.Match, error)
}

func (s *FieldSearcher) Search(patterns vidinfo.PatternSet, text, field string) (*vidinfo.Match, error) {
	return s.SearchFn(patterns, text, field)
}

func (s *FieldSearcher) FindAll(p vidinfo.Pattern, text string) ([]*vidinfo.Match, error) {
	return s.FindAllFn(p, text)
}
