package site

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/extract"
	"github.com/fwojciec/vidinfo/etree"
	"github.com/fwojciec/vidinfo/goquery"
	"golang.org/x/sync/errgroup"
)

var (
	imdbURL     = vidinfo.NewPattern(`http://(?:www|m)\.imdb\.com/video/imdb/vi(?<id>\d+)`)
	imdbListURL = vidinfo.NewPattern(`http://www\.imdb\.com/list/(?<id>[\da-zA-Z_-]{11})`)

	imdbFormats    = vidinfo.NewPattern(`case '(?<f_id>.*?)' :$\s+url = '(?<path>.*?)'`, vidinfo.Multiline)
	imdbPlayerData = vidinfo.PatternSet{vidinfo.NewPattern(`<script[^>]+class="imdb-player-data"[^>]*?>(?<json>.*?)</script>`, vidinfo.DotAll)}
	imdbListTitle  = vidinfo.Patterns(`<title>(?<title>.*?)</title>`)
)

// imdbFormatConcurrency bounds parallel format page fetches.
const imdbFormatConcurrency = 4

// IMDb extracts Internet Movie Database trailers. Each format listed by the
// player script lives on its own page that is fetched separately.
type IMDb struct {
	base
	search    vidinfo.FieldSearcher
	converter vidinfo.Converter
}

// NewIMDb creates the IMDb video extractor. converter may be nil, in which
// case descriptions are reduced to plain text.
func NewIMDb(search vidinfo.FieldSearcher, converter vidinfo.Converter) *IMDb {
	return &IMDb{
		base:      newBase("imdb", imdbURL),
		search:    search,
		converter: converter,
	}
}

type imdbPlayer struct {
	VideoPlayerObject struct {
		Video struct {
			URL   string `json:"url"`
			Slate string `json:"slate"`
		} `json:"video"`
	} `json:"videoPlayerObject"`
}

// Extract returns the media record of a trailer page.
func (e *IMDb) Extract(ctx context.Context, rawURL string, env *vidinfo.Env) (*vidinfo.Result, error) {
	m, err := e.match(rawURL)
	if err != nil {
		return nil, err
	}
	id := m.Group("id")

	page, err := env.Fetch(ctx, "http://www.imdb.com/video/imdb/vi"+id, "webpage "+id)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewPage(page, rawURL)
	if err != nil {
		return nil, err
	}
	title := doc.OpenGraph("title")
	if title == "" {
		return nil, vidinfo.FieldNotFound("title")
	}

	matches, err := e.search.FindAll(imdbFormats, page)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "no formats found for %s", id)
	}

	players := make([]*imdbPlayer, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imdbFormatConcurrency)
	for i, f := range matches {
		g.Go(func() error {
			p, err := e.formatInfo(gctx, env, rawURL, f.Group("f_id"), f.Group("path"))
			if err != nil {
				return err
			}
			players[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var formats vidinfo.Formats
	for i, f := range matches {
		u := players[i].VideoPlayerObject.Video.URL
		if err := formats.Add(&vidinfo.Format{
			URL:      u,
			Ext:      vidinfo.DetermineExt(u),
			FormatID: f.Group("f_id"),
		}); err != nil {
			return nil, err
		}
	}

	return vidinfo.MediaResult(&vidinfo.MediaRecord{
		ID:          id,
		Title:       title,
		Formats:     formats,
		Description: e.description(doc),
		Thumbnail:   players[len(players)-1].VideoPlayerObject.Video.Slate,
	}), nil
}

// formatInfo fetches one format page and decodes its player data.
func (e *IMDb) formatInfo(ctx context.Context, env *vidinfo.Env, pageURL, formatID, path string) (*imdbPlayer, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "invalid page URL %q", pageURL)
	}
	ref, err := url.Parse(strings.TrimSpace(path))
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "invalid format path %q", path)
	}

	page, err := env.Fetch(ctx, base.ResolveReference(ref).String(), fmt.Sprintf("Downloading info for %s format", formatID))
	if err != nil {
		return nil, err
	}

	data, err := vidinfo.SearchValue(e.search, imdbPlayerData, page, "json data")
	if err != nil {
		return nil, err
	}
	var player imdbPlayer
	if err := json.Unmarshal([]byte(data), &player); err != nil {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "invalid player data for %s format: %v", formatID, err)
	}
	if player.VideoPlayerObject.Video.URL == "" {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "player data for %s format has no url", formatID)
	}
	return &player, nil
}

// description returns the itemprop=description block as text.
func (e *IMDb) description(doc *goquery.Page) string {
	inner, ok := doc.ElementHTML("itemprop", "description")
	if !ok || inner == "" {
		return ""
	}
	if e.converter != nil {
		if md, err := e.converter.Convert(inner); err == nil {
			return strings.TrimSpace(md)
		}
	}
	return goquery.CleanHTML(inner)
}

// IMDbList expands an IMDb user list into references to its videos.
type IMDbList struct {
	base
	search     vidinfo.FieldSearcher
	aggregator *extract.ListingAggregator
}

// NewIMDbList creates the IMDb list extractor.
func NewIMDbList(search vidinfo.FieldSearcher) *IMDbList {
	return &IMDbList{
		base:   newBase("imdb:list", imdbListURL),
		search: search,
		aggregator: &extract.ListingAggregator{
			HeaderRows:    1,
			IDColumn:      1,
			Prefix:        "vi",
			URLTemplate:   "http://www.imdb.com/video/imdb/%s",
			ExtractorHint: "imdb",
		},
	}
}

// Extract returns a playlist of references to the list's videos.
func (e *IMDbList) Extract(ctx context.Context, rawURL string, env *vidinfo.Env) (*vidinfo.Result, error) {
	m, err := e.match(rawURL)
	if err != nil {
		return nil, err
	}
	listID := m.Group("id")

	rss, err := env.Fetch(ctx, "http://rss.imdb.com/list/"+listID, "list RSS")
	if err != nil {
		return nil, err
	}
	title, err := e.title(rss)
	if err != nil {
		return nil, err
	}

	// The export ignores the author but answers 404 without one.
	csv, err := env.Fetch(ctx, fmt.Sprintf("http://www.imdb.com/list/export?list_id=%s&author_id=ur00000000", listID), "list CSV")
	if err != nil {
		return nil, err
	}

	return e.aggregator.Aggregate(extract.ParseCSV(csv), listID, title), nil
}

// title reads the feed title, falling back to a pattern search because the
// RSS is sometimes malformed.
func (e *IMDbList) title(rss string) (string, error) {
	if title, err := etree.FeedTitle(rss); err == nil && title != "" {
		return title, nil
	}
	title, err := vidinfo.SearchValue(e.search, imdbListTitle, rss, "list title")
	if err != nil {
		return "", err
	}
	return goquery.CleanHTML(title), nil
}
