// Package trafilatura recovers page metadata with go-trafilatura, which
// reads JSON-LD, Dublin Core and meta tags and falls back to the page body.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/vidinfo"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetadataExtractor implements vidinfo.MetadataExtractor at compile time.
var _ vidinfo.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor wraps go-trafilatura.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns the metadata trafilatura finds in rawHTML.
func (e *MetadataExtractor) ExtractMetadata(rawHTML, pageURL string) (*vidinfo.PageMetadata, error) {
	if rawHTML == "" {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, vidinfo.Errorf(vidinfo.EINVALID, "invalid page URL: %v", err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "trafilatura: %v", err)
	}

	m := result.Metadata
	return &vidinfo.PageMetadata{
		Title:       strings.TrimSpace(m.Title),
		Description: strings.TrimSpace(m.Description),
		Author:      strings.TrimSpace(m.Author),
		Image:       strings.TrimSpace(m.Image),
		SiteName:    strings.TrimSpace(m.Sitename),
		Date:        m.Date,
	}, nil
}
