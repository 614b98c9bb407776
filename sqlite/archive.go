package sqlite

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/bloom"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ vidinfo.ArchiveService = (*ArchiveService)(nil)

// bloomFalsePositiveRate is the target rate of HasMedia lookups that reach
// the database for unrecorded media.
const bloomFalsePositiveRate = 0.01

// minBloomCapacity sizes the filter for archives that are still small.
const minBloomCapacity = 1024

// ArchiveService implements vidinfo.ArchiveService using SQLite. HasMedia
// consults an in-memory Bloom filter of recorded keys before querying, so
// runs over mostly new media rarely touch the database.
type ArchiveService struct {
	db *DB

	// filter is nil until the first successful load. mu guards it.
	mu     sync.Mutex
	filter *bloom.Filter
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(db *DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// archiveKey identifies a media item across extractors.
func archiveKey(extractor, mediaID string) string {
	return extractor + " " + mediaID
}

// hashRecord computes the xxHash of the record's JSON form as a hex string.
func hashRecord(m *vidinfo.MediaRecord) (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16), nil
}

// RecordMedia stores an entry for m, replacing the entry of an earlier
// extraction of the same media.
func (s *ArchiveService) RecordMedia(ctx context.Context, m *vidinfo.MediaRecord) (*vidinfo.ArchiveEntry, error) {
	entry := &vidinfo.ArchiveEntry{
		ID:          uuid.New().String(),
		Extractor:   m.Extractor,
		MediaID:     m.ID,
		Title:       m.Title,
		WebpageURL:  m.WebpageURL,
		FormatCount: len(m.Formats),
		CreatedAt:   time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	hash, err := hashRecord(m)
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "encoding media record: %v", err)
	}
	entry.ContentHash = hash

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO archive (id, extractor, media_id, title, webpage_url, format_count, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (extractor, media_id) DO UPDATE SET
			title = excluded.title,
			webpage_url = excluded.webpage_url,
			format_count = excluded.format_count,
			content_hash = excluded.content_hash,
			created_at = excluded.created_at
	`, entry.ID, entry.Extractor, entry.MediaID, entry.Title, entry.WebpageURL,
		entry.FormatCount, entry.ContentHash, entry.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	// A conflicting row keeps its original id.
	if err := s.db.QueryRowContext(ctx,
		"SELECT id FROM archive WHERE extractor = ? AND media_id = ?",
		entry.Extractor, entry.MediaID,
	).Scan(&entry.ID); err != nil {
		return nil, err
	}

	// An unloaded filter picks the row up from the table when it loads.
	s.mu.Lock()
	if s.filter != nil {
		s.filter.Add(archiveKey(entry.Extractor, entry.MediaID))
	}
	s.mu.Unlock()
	return entry, nil
}

// HasMedia reports whether the extractor's media ID was recorded.
func (s *ArchiveService) HasMedia(ctx context.Context, extractor, mediaID string) (bool, error) {
	if err := s.load(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	maybe := s.filter.Test(archiveKey(extractor, mediaID))
	s.mu.Unlock()
	if !maybe {
		return false, nil
	}

	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM archive WHERE extractor = ? AND media_id = ?",
		extractor, mediaID,
	).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// load fills the Bloom filter from the archive unless an earlier call
// succeeded. A failed load is retried by the next call.
func (s *ArchiveService) load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter != nil {
		return nil
	}
	filter, err := s.fill(ctx)
	if err != nil {
		return err
	}
	s.filter = filter
	return nil
}

func (s *ArchiveService) fill(ctx context.Context) (*bloom.Filter, error) {
	var n uint
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM archive").Scan(&n); err != nil {
		return nil, err
	}
	filter := bloom.NewFilter(max(2*n, minBloomCapacity), bloomFalsePositiveRate)

	rows, err := s.db.QueryContext(ctx, "SELECT extractor, media_id FROM archive")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var extractor, mediaID string
		if err := rows.Scan(&extractor, &mediaID); err != nil {
			return nil, err
		}
		filter.Add(archiveKey(extractor, mediaID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return filter, nil
}

// FindEntries retrieves entries matching the filter, newest first.
func (s *ArchiveService) FindEntries(ctx context.Context, filter vidinfo.ArchiveFilter) ([]*vidinfo.ArchiveEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, extractor, media_id, title, webpage_url, format_count, content_hash, created_at FROM archive WHERE 1=1")

	if filter.Extractor != nil {
		query.WriteString(" AND extractor = ?")
		args = append(args, *filter.Extractor)
	}
	if filter.MediaID != nil {
		query.WriteString(" AND media_id = ?")
		args = append(args, *filter.MediaID)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*vidinfo.ArchiveEntry
	for rows.Next() {
		var e vidinfo.ArchiveEntry
		var createdAt string

		if err := rows.Scan(&e.ID, &e.Extractor, &e.MediaID, &e.Title, &e.WebpageURL,
			&e.FormatCount, &e.ContentHash, &createdAt); err != nil {
			return nil, err
		}

		if e.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// DeleteEntry permanently removes an entry. The Bloom filter keeps the
// key, so later HasMedia calls for it fall through to the database.
func (s *ArchiveService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM archive WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return vidinfo.Errorf(vidinfo.ENOTFOUND, "archive entry not found")
	}
	return nil
}
