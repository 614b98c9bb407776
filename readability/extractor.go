// Package readability recovers page metadata with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/vidinfo"
	"github.com/go-shiori/go-readability"
)

// Ensure MetadataExtractor implements vidinfo.MetadataExtractor at compile time.
var _ vidinfo.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor wraps go-readability.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns the article metadata readability finds in
// rawHTML. The excerpt stands in for a missing description.
func (e *MetadataExtractor) ExtractMetadata(rawHTML, pageURL string) (*vidinfo.PageMetadata, error) {
	if rawHTML == "" {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		var err error
		if u, err = url.Parse(pageURL); err != nil {
			return nil, vidinfo.Errorf(vidinfo.EINVALID, "invalid page URL: %v", err)
		}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "readability: %v", err)
	}

	meta := &vidinfo.PageMetadata{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		Author:      strings.TrimSpace(article.Byline),
		Image:       strings.TrimSpace(article.Image),
		SiteName:    strings.TrimSpace(article.SiteName),
	}
	if article.PublishedTime != nil {
		meta.Date = *article.PublishedTime
	}
	return meta, nil
}
