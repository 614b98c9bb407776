// Package zerolog reports extraction warnings on a console with zerolog.
package zerolog

import (
	"io"
	"time"

	"github.com/fwojciec/vidinfo"
	"github.com/rs/zerolog"
)

var _ vidinfo.Warner = (*Warner)(nil)

// Warner writes warnings as human-readable console lines, e.g.
//
//	15:04:05 WRN unable to extract thumbnail url=http://...
type Warner struct {
	logger zerolog.Logger
}

// Option configures a Warner.
type Option func(*zerolog.ConsoleWriter)

// WithoutColor disables ANSI colors.
func WithoutColor() Option {
	return func(w *zerolog.ConsoleWriter) {
		w.NoColor = true
	}
}

// WithoutTimestamp omits the time column.
func WithoutTimestamp() Option {
	return func(w *zerolog.ConsoleWriter) {
		w.PartsExclude = append(w.PartsExclude, zerolog.TimestampFieldName)
	}
}

// NewWarner returns a Warner writing to out.
func NewWarner(out io.Writer, opts ...Option) *Warner {
	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	for _, opt := range opts {
		opt(&cw)
	}
	return &Warner{logger: zerolog.New(cw).With().Timestamp().Logger()}
}

// WithURL returns a Warner that attaches the URL being extracted to every
// warning.
func (w *Warner) WithURL(url string) vidinfo.Warner {
	return &Warner{logger: w.logger.With().Str("url", url).Logger()}
}

// Warn writes msg at warn level.
func (w *Warner) Warn(msg string) {
	w.logger.Warn().Msg(msg)
}
