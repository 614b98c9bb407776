// Package slog decorates vidinfo services with structured logging.
package slog
