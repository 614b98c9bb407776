package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/vidinfo"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := vidinfo.ArchiveFilter{Limit: c.Limit}
	if c.Extractor != "" {
		filter.Extractor = &c.Extractor
	}

	entries, err := deps.Archive.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidinfo.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived media. Use 'vidinfo extract --archive' to record some.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %s:%s  %s  %s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Extractor, e.MediaID, e.Title, e.WebpageURL)
	}
	return nil
}
