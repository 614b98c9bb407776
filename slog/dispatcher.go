package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/vidinfo"
)

// Ensure LoggingDispatcher implements vidinfo.Dispatcher.
var _ vidinfo.Dispatcher = (*LoggingDispatcher)(nil)

// LoggingDispatcher wraps a Dispatcher with logging of extractor selection.
type LoggingDispatcher struct {
	next   vidinfo.Dispatcher
	logger *slog.Logger
}

// NewLoggingDispatcher creates a new LoggingDispatcher.
func NewLoggingDispatcher(next vidinfo.Dispatcher, logger *slog.Logger) *LoggingDispatcher {
	return &LoggingDispatcher{next: next, logger: logger}
}

// Resolve logs the selected extractor and delegates to the wrapped
// dispatcher.
func (d *LoggingDispatcher) Resolve(url string) (e vidinfo.Extractor, err error) {
	defer func(begin time.Time) {
		name := "(none)"
		if e != nil {
			name = e.Name()
		}
		d.logger.Info("dispatch",
			"url", url,
			"extractor", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Resolve(url)
}

// Lookup delegates to the wrapped dispatcher.
func (d *LoggingDispatcher) Lookup(name string) (vidinfo.Extractor, bool) {
	e, ok := d.next.Lookup(name)
	if !ok {
		d.logger.Warn("unknown extractor", "name", name)
	}
	return e, ok
}

// List delegates to the wrapped dispatcher.
func (d *LoggingDispatcher) List() []vidinfo.Extractor {
	return d.next.List()
}
