package vidinfo

import (
	"context"
	"time"
)

// ArchiveEntry records one media item that was extracted before.
type ArchiveEntry struct {
	ID          string    `json:"id"`
	Extractor   string    `json:"extractor"`
	MediaID     string    `json:"mediaId"`
	Title       string    `json:"title"`
	WebpageURL  string    `json:"webpageUrl"`
	FormatCount int       `json:"formatCount"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *ArchiveEntry) Validate() error {
	if e.Extractor == "" {
		return Errorf(EINVALID, "archive entry extractor required")
	}
	if e.MediaID == "" {
		return Errorf(EINVALID, "archive entry media ID required")
	}
	return nil
}

// ArchiveService records extracted media so repeated runs can skip them.
type ArchiveService interface {
	// RecordMedia stores an entry for the record. Recording the same
	// extractor and media ID twice updates the existing entry.
	RecordMedia(ctx context.Context, m *MediaRecord) (*ArchiveEntry, error)

	// HasMedia reports whether the extractor's media ID was recorded.
	HasMedia(ctx context.Context, extractor, mediaID string) (bool, error)

	// FindEntries retrieves entries matching the filter, newest first.
	FindEntries(ctx context.Context, filter ArchiveFilter) ([]*ArchiveEntry, error)

	// DeleteEntry removes an entry.
	// Returns ENOTFOUND if the entry does not exist.
	DeleteEntry(ctx context.Context, id string) error
}

// ArchiveFilter represents a filter for FindEntries.
type ArchiveFilter struct {
	Extractor *string `json:"extractor"`
	MediaID   *string `json:"mediaId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// InfoWriter persists the JSON description of a media record.
type InfoWriter interface {
	// WriteInfo writes the record and returns the path written.
	WriteInfo(ctx context.Context, m *MediaRecord) (string, error)
}
