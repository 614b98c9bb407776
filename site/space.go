package site

import (
	"context"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/goquery"
)

var spaceURL = vidinfo.NewPattern(`https?://www\.space\.com/\d+-(?<title>[^/\.\?]*?)-video\.html`)

// Space extracts space.com video pages, which are landing pages over
// Brightcove-hosted players.
type Space struct {
	base
}

// NewSpace creates the space.com extractor.
func NewSpace() *Space {
	return &Space{base: newBase("space", spaceURL)}
}

// Extract returns a reference to the page's Brightcove player. Some videos
// need the playerKey only present in og:video; others work from the
// embedded BrightcoveExperience object.
func (e *Space) Extract(ctx context.Context, rawURL string, env *vidinfo.Env) (*vidinfo.Result, error) {
	m, err := e.match(rawURL)
	if err != nil {
		return nil, err
	}

	page, err := env.Fetch(ctx, rawURL, m.Group("title"))
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewPage(page, rawURL)
	if err != nil {
		return nil, err
	}

	playerURL := doc.OpenGraphVideo()
	if playerURL == "" {
		playerURL, _ = doc.BrightcoveURL()
	}
	if playerURL == "" {
		return nil, vidinfo.ExpectedErrorf("The webpage does not contain a video")
	}
	return vidinfo.ReferenceResult(playerURL, "brightcove"), nil
}
