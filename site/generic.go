package site

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/goquery"
)

var genericURL = vidinfo.NewPattern(`https?://.+`)

// mediaExts are extensions the generic extractor treats as playable files.
var mediaExts = map[string]bool{
	"mp4": true, "m4v": true, "webm": true, "flv": true, "mov": true,
	"ogv": true, "ogg": true, "m3u8": true, "mpd": true, "mp3": true,
}

// Generic extracts media from arbitrary pages that expose an og:video tag
// or an HTML5 <video> element. It matches any http(s) URL and must be
// registered after every site-specific extractor.
type Generic struct {
	base
	metadata []vidinfo.MetadataExtractor
}

// NewGeneric creates the generic extractor. Metadata extractors are
// consulted in order; the first non-empty value of each field wins.
func NewGeneric(metadata ...vidinfo.MetadataExtractor) *Generic {
	return &Generic{
		base:     newBase("generic", genericURL),
		metadata: metadata,
	}
}

// Extract returns the page's media. An og:video that is not a media file is
// returned as a reference so that another extractor can resolve the player.
func (e *Generic) Extract(ctx context.Context, rawURL string, env *vidinfo.Env) (*vidinfo.Result, error) {
	page, err := env.Fetch(ctx, rawURL, "webpage")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewPage(page, rawURL)
	if err != nil {
		return nil, err
	}

	var sources []string
	ogVideo := doc.OpenGraphVideo()
	if ogVideo != "" && mediaExts[vidinfo.DetermineExt(ogVideo)] {
		sources = append(sources, ogVideo)
	}
	for _, src := range doc.VideoSources() {
		if src != ogVideo {
			sources = append(sources, src)
		}
	}

	if len(sources) == 0 {
		if ogVideo != "" && ogVideo != rawURL {
			return vidinfo.ReferenceResult(ogVideo, ""), nil
		}
		return nil, vidinfo.ExpectedErrorf("Unsupported URL: %s", rawURL)
	}

	var formats vidinfo.Formats
	for i, src := range sources {
		ext := vidinfo.DetermineExt(src)
		id := ext
		if formats.Has(id) {
			id = fmt.Sprintf("%s-%d", ext, i)
		}
		if err := formats.Add(&vidinfo.Format{URL: src, Ext: ext, FormatID: id}); err != nil {
			return nil, err
		}
	}

	meta := e.pageMetadata(env, page, rawURL)
	id := idFromPageURL(rawURL)
	rec := &vidinfo.MediaRecord{
		ID:          id,
		Title:       meta.Title,
		Formats:     formats,
		Description: meta.Description,
		Thumbnail:   meta.Image,
		Uploader:    meta.Author,
	}
	if rec.Title == "" {
		env.Warnf("unable to extract title; using %q", id)
		rec.Title = id
	}
	if !meta.Date.IsZero() {
		d := vidinfo.NewDate(meta.Date)
		rec.UploadDate = &d
	}
	return vidinfo.MediaResult(rec), nil
}

// pageMetadata merges the extractors' results field by field.
func (e *Generic) pageMetadata(env *vidinfo.Env, page, pageURL string) *vidinfo.PageMetadata {
	merged := &vidinfo.PageMetadata{}
	for _, m := range e.metadata {
		meta, err := m.ExtractMetadata(page, pageURL)
		if err != nil || meta == nil {
			continue
		}
		merged.Title = cmp.Or(merged.Title, strings.TrimSpace(meta.Title))
		merged.Description = cmp.Or(merged.Description, strings.TrimSpace(meta.Description))
		merged.Author = cmp.Or(merged.Author, strings.TrimSpace(meta.Author))
		merged.Image = cmp.Or(merged.Image, strings.TrimSpace(meta.Image))
		merged.SiteName = cmp.Or(merged.SiteName, strings.TrimSpace(meta.SiteName))
		if merged.Date.IsZero() {
			merged.Date = meta.Date
		}
	}
	return merged
}

// idFromPageURL derives an id from the last path segment without its
// extension, falling back to the host.
func idFromPageURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	base := path.Base(strings.TrimSuffix(u.Path, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return u.Host
	}
	return base
}
