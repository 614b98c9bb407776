package main

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/extract"
)

// urlWarner is a warning sink that can tag warnings with the URL being
// extracted.
type urlWarner interface {
	WithURL(url string) vidinfo.Warner
}

// effective returns cfg overridden by the flags that were set.
func (c *ExtractCmd) effective(cfg *Config) Config {
	out := *cfg
	out.Timeout = cmp.Or(c.Timeout, cfg.Timeout)
	out.Concurrency = cmp.Or(c.Concurrency, cfg.Concurrency)
	out.MaxDepth = cmp.Or(c.MaxDepth, cfg.MaxDepth)
	out.Rate = cmp.Or(c.Rate, cfg.Rate)
	out.InfoDir = cmp.Or(c.InfoDir, cfg.InfoDir)
	if c.Retries >= 0 {
		out.Retries = c.Retries
	}
	return out
}

// Run executes the extract command. Each URL's result is written to
// stdout as one JSON document per line. A failing URL is reported on
// stderr and does not stop the others.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	cfg := c.effective(cmp.Or(deps.Config, DefaultConfig()))

	resolver := extract.Resolver{
		Dispatcher:   deps.Dispatcher,
		Fetcher:      deps.Fetcher,
		Warner:       deps.Warner,
		MaxDepth:     cfg.MaxDepth,
		Concurrency:  cfg.Concurrency,
		IgnoreErrors: c.IgnoreErrors,
		Flat:         c.Flat,
	}
	enc := json.NewEncoder(deps.Stdout)

	var failed int
	for _, url := range c.URLs {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		r := resolver
		if w, ok := deps.Warner.(urlWarner); ok {
			r.Warner = w.WithURL(url)
		}
		res, err := r.Resolve(deps.Ctx, url)
		if err != nil {
			reportError(deps.Stderr, url, err)
			failed++
			continue
		}
		if err := enc.Encode(res); err != nil {
			return err
		}
		if err := c.persist(deps, res); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", vidinfo.ErrorMessage(err))
			return err
		}
	}

	if failed > 0 {
		return vidinfo.Errorf(vidinfo.EEXTRACT, "%d of %d URLs failed", failed, len(c.URLs))
	}
	return nil
}

// persist writes info documents and archive entries for every media
// record of res.
func (c *ExtractCmd) persist(deps *Dependencies, res *vidinfo.Result) error {
	for _, m := range res.MediaRecords() {
		if deps.Info != nil {
			path, err := deps.Info.WriteInfo(deps.Ctx, m)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stderr, "wrote %s\n", path)
		}
		if deps.Archive != nil && c.Archive {
			seen, err := deps.Archive.HasMedia(deps.Ctx, m.Extractor, m.ID)
			if err != nil {
				return err
			}
			if seen {
				fmt.Fprintf(deps.Stderr, "%s %s: already in archive\n", m.Extractor, m.ID)
			}
			if _, err := deps.Archive.RecordMedia(deps.Ctx, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// reportError prints an extraction failure. Unexpected failures point at
// the extractor and ask for a bug report.
func reportError(w io.Writer, url string, err error) {
	msg := vidinfo.ErrorMessage(err)
	var e *vidinfo.Error
	if !errors.As(err, &e) {
		msg = err.Error()
	}
	switch {
	case vidinfo.IsExpected(err):
		fmt.Fprintf(w, "ERROR: %s\n", msg)
	case vidinfo.ErrorCode(err) == vidinfo.ENOMATCH:
		fmt.Fprintf(w, "ERROR: unsupported URL: %s\n", url)
	default:
		fmt.Fprintf(w, "ERROR: %s: %s (%s); please report this issue\n", url, msg, vidinfo.ErrorCode(err))
	}
}
