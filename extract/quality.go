package extract

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

// Format ids assigned by the QualityProber.
const (
	FormatSD = "sd"
	FormatHD = "hd"
)

// ProbeNote labels the secondary fetch issued by the QualityProber.
const ProbeNote = "HD check page"

// QualityProber assembles sd/hd formats for sources that serve the higher
// quality rendition only on request.
//
// The first page yields a base format tagged hd when IsHD reports so, sd
// otherwise. An sd base triggers one fetch of ProbeURL; if that page is HD
// its media URL is appended as the hd format. Formats are only appended,
// never replaced.
type QualityProber struct {
	// IsHD reports whether a page carries the high quality marker.
	IsHD func(page string) bool

	// MediaURL extracts the playable URL from a page.
	MediaURL func(page string) (string, error)

	// ProbeURL returns the URL requesting the high quality page for pageURL.
	ProbeURL func(pageURL string) string
}

// Assemble builds the formats for the item at pageURL whose body is page.
// A failure to extract the base media URL is returned; a failed probe is
// reported as a warning.
func (q *QualityProber) Assemble(ctx context.Context, env *vidinfo.Env, pageURL, page string) (vidinfo.Formats, error) {
	u, err := q.MediaURL(page)
	if err != nil {
		return nil, err
	}

	id := FormatSD
	if q.IsHD(page) {
		id = FormatHD
	}

	var formats vidinfo.Formats
	if err := formats.Add(newQualityFormat(u, id)); err != nil {
		return nil, err
	}
	return q.Probe(ctx, env, pageURL, formats)
}

// Probe appends an hd format when formats holds an sd entry and no hd
// entry yet, and the probe page is HD. Calling Probe on its own output is a
// no-op. The input slice is never modified.
//
// Probe returns an error only when ctx is canceled.
func (q *QualityProber) Probe(ctx context.Context, env *vidinfo.Env, pageURL string, formats vidinfo.Formats) (vidinfo.Formats, error) {
	if formats.Has(FormatHD) || !formats.Has(FormatSD) {
		return formats, nil
	}

	probe, err := env.Fetch(ctx, q.ProbeURL(pageURL), ProbeNote)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		env.Warnf("unable to check for HD version of %s: %v", pageURL, err)
		return formats, nil
	}
	if !q.IsHD(probe) {
		return formats, nil
	}

	u, err := q.MediaURL(probe)
	if err != nil {
		env.Warnf("unable to extract HD media URL of %s: %v", pageURL, err)
		return formats, nil
	}

	out := make(vidinfo.Formats, len(formats), len(formats)+1)
	copy(out, formats)
	if err := out.Add(newQualityFormat(u, FormatHD)); err != nil {
		env.Warnf("discarding HD format of %s: %v", pageURL, err)
		return formats, nil
	}
	return out, nil
}

func newQualityFormat(url, id string) *vidinfo.Format {
	quality := 0
	if id == FormatHD {
		quality = 1
	}
	return &vidinfo.Format{
		URL:      url,
		Ext:      vidinfo.DetermineExt(url),
		FormatID: id,
		Quality:  quality,
	}
}
