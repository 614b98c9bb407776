package site

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/etree"
)

var (
	gametrailersURL = vidinfo.NewPattern(`http://www\.gametrailers\.com/(?<type>videos|reviews|full-episodes)/(?<id>.*?)/(?<title>.*)`)

	gametrailersMGID = vidinfo.Patterns(
		`data-video="(?<mgid>mgid:.*?)"`,
		`data-contentId='(?<mgid>mgid:.*?)'`,
	)
)

const gametrailersFeedURL = "http://www.gametrailers.com/feeds/mrss"

// countryBlockMarker appears in mediagen documents of geo-blocked videos.
const countryBlockMarker = "/error_country_block.swf"

// GameTrailers extracts gametrailers.com pages through the MTV Networks
// Media RSS feed. Each feed item's renditions come from a separate
// mediagen document.
type GameTrailers struct {
	base
	search vidinfo.FieldSearcher
}

// NewGameTrailers creates the GameTrailers extractor.
func NewGameTrailers(search vidinfo.FieldSearcher) *GameTrailers {
	return &GameTrailers{
		base:   newBase("gametrailers", gametrailersURL),
		search: search,
	}
}

// Extract returns the media of the page's feed: a single record for one
// item, a playlist for several.
func (e *GameTrailers) Extract(ctx context.Context, rawURL string, env *vidinfo.Env) (*vidinfo.Result, error) {
	m, err := e.match(rawURL)
	if err != nil {
		return nil, err
	}
	pageID := m.Group("id")

	page, err := env.Fetch(ctx, rawURL, "webpage "+pageID)
	if err != nil {
		return nil, err
	}
	mgid, err := vidinfo.SearchValue(e.search, gametrailersMGID, page, "mgid")
	if err != nil {
		return nil, err
	}

	feedURL := gametrailersFeedURL + "?" + url.Values{"uri": {mgid}}.Encode()
	feed, err := env.Fetch(ctx, feedURL, "Downloading info")
	if err != nil {
		return nil, err
	}
	items, err := etree.ParseFeed(feed)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "feed for %s lists no videos", mgid)
	}

	entries := make([]*vidinfo.Result, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := e.item(ctx, env, item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, vidinfo.MediaResult(rec))
	}

	if len(entries) == 1 {
		return entries[0], nil
	}
	return vidinfo.PlaylistResult(idFromURI(mgid), "", entries), nil
}

func (e *GameTrailers) item(ctx context.Context, env *vidinfo.Env, item etree.FeedItem) (*vidinfo.MediaRecord, error) {
	id := idFromURI(item.GUID)
	if id == "" {
		return nil, vidinfo.FieldNotFound("guid")
	}
	if item.MediaURL == "" {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "feed item %s has no media content", id)
	}

	mediagen := stripTemplates(item.MediaURL)
	if !strings.Contains(mediagen, "acceptMethods") {
		mediagen += "&acceptMethods=fms"
	}
	doc, err := env.Fetch(ctx, mediagen, "Downloading video urls")
	if err != nil {
		return nil, err
	}
	if strings.Contains(doc, countryBlockMarker) {
		return nil, vidinfo.ExpectedErrorf("This video is not available from your country.")
	}

	renditions, err := etree.ParseRenditions(doc)
	if err != nil {
		return nil, err
	}

	rec := &vidinfo.MediaRecord{
		ID:          id,
		Title:       item.Title,
		Description: item.Description,
		Thumbnail:   item.Thumbnail,
	}
	for i, r := range renditions {
		formatID := r.Bitrate
		if formatID == "" || rec.Formats.Has(formatID) {
			formatID = fmt.Sprintf("%s-%d", r.Ext(), i)
		}
		if err := rec.Formats.Add(&vidinfo.Format{
			URL:      r.URL,
			Ext:      r.Ext(),
			FormatID: formatID,
			Quality:  i,
		}); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// idFromURI returns the last colon-separated segment of an mgid.
func idFromURI(uri string) string {
	i := strings.LastIndex(uri, ":")
	return strings.TrimSpace(uri[i+1:])
}

// stripTemplates removes query parameters whose value is an unfilled
// {template}, such as &device={device}.
func stripTemplates(rawURL string) string {
	path, query, ok := strings.Cut(rawURL, "?")
	if !ok {
		return rawURL
	}
	var kept []string
	for _, part := range strings.Split(query, "&") {
		_, value, _ := strings.Cut(part, "=")
		if strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
			continue
		}
		kept = append(kept, part)
	}
	return path + "?" + strings.Join(kept, "&")
}
