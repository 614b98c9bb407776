package vidinfo

import "time"

// PageMetadata is descriptive metadata recovered from an arbitrary page.
type PageMetadata struct {
	Title       string
	Description string
	Author      string
	Image       string
	SiteName    string
	Date        time.Time
}

// MetadataExtractor recovers descriptive metadata from page HTML.
// pageURL is used to resolve relative links.
type MetadataExtractor interface {
	ExtractMetadata(html, pageURL string) (*PageMetadata, error)
}
