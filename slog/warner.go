package slog

import (
	"log/slog"

	"github.com/fwojciec/vidinfo"
)

var _ vidinfo.Warner = (*Warner)(nil)

// Warner logs warnings at WARN level.
type Warner struct {
	logger *slog.Logger
	attrs  []any
}

// NewWarner returns a Warner writing to logger. attrs are attached to
// every record, e.g. the URL being extracted.
func NewWarner(logger *slog.Logger, attrs ...any) *Warner {
	return &Warner{logger: logger, attrs: attrs}
}

// Warn logs msg.
func (w *Warner) Warn(msg string) {
	w.logger.Warn(msg, w.attrs...)
}

// WithURL returns a Warner that also attaches url.
func (w *Warner) WithURL(url string) vidinfo.Warner {
	attrs := append(w.attrs[:len(w.attrs):len(w.attrs)], "url", url)
	return &Warner{logger: w.logger, attrs: attrs}
}
