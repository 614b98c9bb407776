package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/vidinfo"
)

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm removal\n")
		return vidinfo.Errorf(vidinfo.EINVALID, "use --force to confirm removal")
	}

	extractor, mediaID, ok := strings.Cut(c.Media, ":")
	if !ok || extractor == "" || mediaID == "" {
		fmt.Fprintf(deps.Stderr, "error: expected extractor:id, got %q\n", c.Media)
		return vidinfo.Errorf(vidinfo.EINVALID, "invalid media key %q", c.Media)
	}

	entries, err := deps.Archive.FindEntries(deps.Ctx, vidinfo.ArchiveFilter{
		Extractor: &extractor,
		MediaID:   &mediaID,
		Limit:     1,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidinfo.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %s is not archived. Use 'vidinfo history' to see archived media.\n", c.Media)
		return vidinfo.Errorf(vidinfo.ENOTFOUND, "%s is not archived", c.Media)
	}

	entry := entries[0]
	if err := deps.Archive.DeleteEntry(deps.Ctx, entry.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidinfo.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %s:%s %q\n", entry.Extractor, entry.MediaID, entry.Title)
	return nil
}
