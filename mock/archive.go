package mock

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

var _ vidinfo.ArchiveService = (*ArchiveService)(nil)

// ArchiveService is a mock implementation of vidinfo.ArchiveService.
type ArchiveService struct {
	RecordMediaFn func(ctx context.Context, m *vidinfo.MediaRecord) (*vidinfo.ArchiveEntry, error)
	HasMediaFn    func(ctx context.Context, extractor, mediaID string) (bool, error)
	FindEntriesFn func(ctx context.Context, filter vidinfo.ArchiveFilter) ([]*vidinfo.ArchiveEntry, error)
	DeleteEntryFn func(ctx context.Context, id string) error
}

func (s *ArchiveService) RecordMedia(ctx context.Context, m *vidinfo.MediaRecord) (*vidinfo.ArchiveEntry, error) {
	return s.RecordMediaFn(ctx, m)
}

func (s *ArchiveService) HasMedia(ctx context.Context, extractor, mediaID string) (bool, error) {
	return s.HasMediaFn(ctx, extractor, mediaID)
}

func (s *ArchiveService) FindEntries(ctx context.Context, filter vidinfo.ArchiveFilter) ([]*vidinfo.ArchiveEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *ArchiveService) DeleteEntry(ctx context.Context, id string) error {
	return s.DeleteEntryFn(ctx, id)
}

var _ vidinfo.InfoWriter = (*InfoWriter)(nil)

// InfoWriter is a mock implementation of vidinfo.InfoWriter.
type InfoWriter struct {
	WriteInfoFn func(ctx context.Context, m *vidinfo.MediaRecord) (string, error)
}

func (w *InfoWriter) WriteInfo(ctx context.Context, m *vidinfo.MediaRecord) (string, error) {
	return w.WriteInfoFn(ctx, m)
}
