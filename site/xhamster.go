package site

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/extract"
	"github.com/fwojciec/vidinfo/goquery"
)

var (
	xhamsterURL = vidinfo.NewPattern(`(?:http://)?(?:www\.)?xhamster\.com/movies/(?<id>[0-9]+)/(?<seo>.+?)\.html(?:\?.*)?`)

	xhamsterTitle       = vidinfo.Patterns(`<title>(?<title>.+?) - xHamster\.com</title>`)
	xhamsterDescription = vidinfo.Patterns(`<span>Description: </span>(?<description>[^<]+)`)
	xhamsterUploadDate  = vidinfo.Patterns(`hint='(?<date>[0-9]{4}-[0-9]{2}-[0-9]{2}) [0-9]{2}:[0-9]{2}:[0-9]{2} [A-Z]{3,4}'`)
	xhamsterUploader    = vidinfo.Patterns(`<a href='/user/[^>]+>(?<uploader_id>[^<]+)`)
	xhamsterThumbnail   = vidinfo.Patterns(`'image':'(?<thumbnail>[^']+)'`)
	xhamsterMedia       = vidinfo.Patterns(`'srv': '(?<server>[^']*)',\s*'file': '(?<file>[^']+)',`)

	rtaRating = vidinfo.PatternSet{vidinfo.NewPattern(`<meta\s+name="rating"\s+content="RTA-5042-1996-1400-1577-RTA"`, vidinfo.IgnoreCase)}
)

// xhamsterHDMarker is present on pages served in high definition.
const xhamsterHDMarker = `<div class='icon iconHD'`

// XHamster extracts xhamster.com movie pages. The HD rendition is only
// served to requests carrying the "hd" query signal, so formats are
// assembled by a QualityProber.
type XHamster struct {
	base
	search vidinfo.FieldSearcher
	prober *extract.QualityProber
}

// NewXHamster creates the xhamster extractor.
func NewXHamster(search vidinfo.FieldSearcher) *XHamster {
	x := &XHamster{
		base:   newBase("xhamster", xhamsterURL),
		search: search,
	}
	x.prober = &extract.QualityProber{
		IsHD:     func(page string) bool { return strings.Contains(page, xhamsterHDMarker) },
		MediaURL: x.mediaURL,
		ProbeURL: func(pageURL string) string { return pageURL + "?hd" },
	}
	return x
}

// Extract returns the media record of a movie page.
func (x *XHamster) Extract(ctx context.Context, rawURL string, env *vidinfo.Env) (*vidinfo.Result, error) {
	m, err := x.match(rawURL)
	if err != nil {
		return nil, err
	}
	id := m.Group("id")
	pageURL := fmt.Sprintf("http://xhamster.com/movies/%s/%s.html", id, m.Group("seo"))

	page, err := env.Fetch(ctx, pageURL, "webpage "+id)
	if err != nil {
		return nil, err
	}

	title, err := vidinfo.SearchValue(x.search, xhamsterTitle, page, "title")
	if err != nil {
		return nil, err
	}

	// Only a few videos have a description.
	description, err := vidinfo.SearchDefault(x.search, xhamsterDescription, page, "description", "")
	if err != nil {
		return nil, err
	}

	var uploadDate *vidinfo.Date
	date, err := vidinfo.SearchDefault(x.search, xhamsterUploadDate, page, "upload date", "")
	if err != nil {
		return nil, err
	}
	if date == "" {
		env.Warnf("Unable to extract upload date")
	} else if d, err := vidinfo.ParseDate(time.DateOnly, date); err == nil {
		uploadDate = &d
	}

	uploader, err := vidinfo.SearchDefault(x.search, xhamsterUploader, page, "uploader id", "anonymous")
	if err != nil {
		return nil, err
	}

	thumbnail, err := searchOptional(x.search, env, xhamsterThumbnail, page, "thumbnail")
	if err != nil {
		return nil, err
	}

	formats, err := x.prober.Assemble(ctx, env, pageURL, page)
	if err != nil {
		return nil, err
	}

	return vidinfo.MediaResult(&vidinfo.MediaRecord{
		ID:          id,
		Title:       goquery.CleanHTML(title),
		Formats:     formats,
		Description: html.UnescapeString(description),
		Thumbnail:   thumbnail,
		Uploader:    goquery.CleanHTML(uploader),
		UploadDate:  uploadDate,
		AgeLimit:    vidinfo.AgeLimit(x.ageLimit(page)),
	}), nil
}

// mediaURL builds the playable URL from the player configuration. Without
// a server the file is a percent-encoded absolute URL.
func (x *XHamster) mediaURL(page string) (string, error) {
	m, err := x.search.Search(xhamsterMedia, page, "media URL")
	if vidinfo.ErrorCode(err) == vidinfo.ENOTFOUND {
		return "", vidinfo.Errorf(vidinfo.EEXTRACT, "Unable to extract media URL")
	} else if err != nil {
		return "", err
	}

	server, file := m.Group("server"), m.Group("file")
	if server == "" {
		u, err := url.PathUnescape(file)
		if err != nil {
			return "", vidinfo.Errorf(vidinfo.EEXTRACT, "invalid media URL %q", file)
		}
		return u, nil
	}
	return server + "/key=" + file, nil
}

// ageLimit returns 18 for pages labelled with the RTA rating.
func (x *XHamster) ageLimit(page string) int {
	if _, err := x.search.Search(rtaRating, page, "age limit"); err == nil {
		return 18
	}
	return 0
}
