package goquery

import (
	"time"

	"github.com/fwojciec/vidinfo"
)

// Ensure MetadataExtractor implements vidinfo.MetadataExtractor at compile time.
var _ vidinfo.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor reads page metadata from Open Graph and standard meta
// tags.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns the metadata declared in the page head.
func (e *MetadataExtractor) ExtractMetadata(html, pageURL string) (*vidinfo.PageMetadata, error) {
	if html == "" {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "empty HTML input")
	}
	p, err := NewPage(html, pageURL)
	if err != nil {
		return nil, err
	}

	meta := &vidinfo.PageMetadata{
		Title:       firstNonEmpty(p.OpenGraph("title"), p.Title()),
		Description: firstNonEmpty(p.OpenGraph("description"), p.Meta("description")),
		Author:      firstNonEmpty(p.Meta("author"), p.Meta("article:author")),
		Image:       p.resolve(p.OpenGraph("image")),
		SiteName:    p.OpenGraph("site_name"),
	}
	if published := p.Meta("article:published_time"); published != "" {
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			meta.Date = t
		}
	}
	return meta, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
