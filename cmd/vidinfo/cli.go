package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/vidinfo"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Config     *Config
	Dispatcher vidinfo.Dispatcher
	Fetcher    vidinfo.Fetcher
	Warner     vidinfo.Warner
	Archive    vidinfo.ArchiveService
	Info       vidinfo.InfoWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract    ExtractCmd    `cmd:"" help:"Extract media information from URLs"`
	Extractors ExtractorsCmd `cmd:"" help:"List supported extractors"`
	History    HistoryCmd    `cmd:"" help:"List archived media"`
	Forget     ForgetCmd     `cmd:"" help:"Remove a media item from the archive"`
}

// ExtractCmd is the "extract" subcommand. Zero-valued numeric flags take
// their value from the config file.
type ExtractCmd struct {
	URLs         []string      `arg:"" name:"url" help:"URLs to extract"`
	Timeout      time.Duration `short:"t" help:"Per-request timeout"`
	Concurrency  int           `short:"c" help:"Concurrent playlist entry limit"`
	MaxDepth     int           `help:"Maximum delegation chain length"`
	IgnoreErrors bool          `short:"i" help:"Skip failing playlist entries"`
	Flat         bool          `help:"Do not resolve playlist entries"`
	Browser      bool          `short:"b" help:"Fetch pages with a headless browser"`
	Rate         float64       `help:"Requests per second per host"`
	Retries      int           `help:"Retries per failed request" default:"-1"`
	InfoDir      string        `type:"path" help:"Write <extractor>-<id>.info.json files to this directory"`
	Archive      bool          `short:"a" help:"Record extracted media in the archive"`
	Verbose      bool          `short:"v" help:"Log requests and extractor selection"`
}

// ExtractorsCmd is the "extractors" subcommand.
type ExtractorsCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Extractor string `short:"e" help:"Only show media from this extractor"`
	Limit     int    `short:"n" default:"20" help:"Maximum entries to show"`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	Media string `arg:"" help:"Archived media as extractor:id, as printed by history"`
	Force bool   `short:"f" help:"Confirm removal"`
}
