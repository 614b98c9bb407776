package site

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/goquery"
)

var (
	brightcoveURL = vidinfo.NewPattern(`https?://.*brightcove\.com/(?:services|viewer).*\?(?<query>.*)`)

	brightcoveExperience = vidinfo.Patterns(`var experienceJSON = (?<json>\{.*?\});`)
)

// brightcovePlaylistURL returns the programming of a player as JSON.
const brightcovePlaylistURL = "http://c.brightcove.com/services/json/experience/runtime/?command=get_programming_for_experience&playerKey=%s"

// Brightcove extracts videos and playlists served by Brightcove players.
type Brightcove struct {
	base
	search vidinfo.FieldSearcher
}

// NewBrightcove creates the Brightcove extractor.
func NewBrightcove(search vidinfo.FieldSearcher) *Brightcove {
	return &Brightcove{
		base:   newBase("brightcove", brightcoveURL),
		search: search,
	}
}

type brightcoveRendition struct {
	DefaultURL  string `json:"defaultURL"`
	Size        int64  `json:"size"`
	FrameWidth  int    `json:"frameWidth"`
	FrameHeight int    `json:"frameHeight"`
}

type brightcoveVideo struct {
	ID               json.Number           `json:"id"`
	DisplayName      string                `json:"displayName"`
	ShortDescription string                `json:"shortDescription"`
	VideoStillURL    string                `json:"videoStillURL"`
	ThumbnailURL     string                `json:"thumbnailURL"`
	PublisherName    string                `json:"publisherName"`
	Renditions       []brightcoveRendition `json:"renditions"`
	FLVFullLengthURL string                `json:"FLVFullLengthURL"`
}

type brightcoveExperienceJSON struct {
	Data struct {
		ProgrammedContent struct {
			VideoPlayer struct {
				MediaDTO *brightcoveVideo `json:"mediaDTO"`
			} `json:"videoPlayer"`
		} `json:"programmedContent"`
	} `json:"data"`
}

type brightcoveProgramming struct {
	VideoList struct {
		ID                 json.Number `json:"id"`
		MediaCollectionDTO struct {
			DisplayName string            `json:"displayName"`
			VideoDTOs   []brightcoveVideo `json:"videoDTOs"`
		} `json:"mediaCollectionDTO"`
	} `json:"videoList"`
}

// Extract returns a single video when the URL names one with @videoPlayer,
// otherwise the playlist programmed for the player's playerKey.
func (e *Brightcove) Extract(ctx context.Context, rawURL string, env *vidinfo.Env) (*vidinfo.Result, error) {
	m, err := e.match(rawURL)
	if err != nil {
		return nil, err
	}
	rawQuery := m.Group("query")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "invalid Brightcove query %q", rawQuery)
	}

	if videoID := query.Get("@videoPlayer"); videoID != "" {
		return e.video(ctx, env, videoID, rawQuery)
	}
	if key := query.Get("playerKey"); key != "" {
		return e.playlist(ctx, env, key)
	}
	return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "Brightcove URL names neither a video nor a player")
}

func (e *Brightcove) video(ctx context.Context, env *vidinfo.Env, videoID, rawQuery string) (*vidinfo.Result, error) {
	page, err := env.Fetch(ctx, goquery.BrightcoveFederatedURL+"?"+rawQuery, "webpage "+videoID)
	if err != nil {
		return nil, err
	}

	data, err := vidinfo.SearchValue(e.search, brightcoveExperience, page, "json")
	if err != nil {
		return nil, err
	}
	var exp brightcoveExperienceJSON
	if err := json.Unmarshal([]byte(data), &exp); err != nil {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "invalid experience JSON for %s: %v", videoID, err)
	}
	dto := exp.Data.ProgrammedContent.VideoPlayer.MediaDTO
	if dto == nil {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "experience JSON for %s has no media", videoID)
	}

	rec, err := brightcoveRecord(dto)
	if err != nil {
		return nil, err
	}
	return vidinfo.MediaResult(rec), nil
}

func (e *Brightcove) playlist(ctx context.Context, env *vidinfo.Env, playerKey string) (*vidinfo.Result, error) {
	body, err := env.Fetch(ctx, fmt.Sprintf(brightcovePlaylistURL, url.QueryEscape(playerKey)), "Downloading playlist information")
	if err != nil {
		return nil, err
	}

	var prog brightcoveProgramming
	if err := json.Unmarshal([]byte(body), &prog); err != nil {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "invalid playlist JSON for %s: %v", playerKey, err)
	}

	list := prog.VideoList
	entries := make([]*vidinfo.Result, 0, len(list.MediaCollectionDTO.VideoDTOs))
	for i := range list.MediaCollectionDTO.VideoDTOs {
		rec, err := brightcoveRecord(&list.MediaCollectionDTO.VideoDTOs[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, vidinfo.MediaResult(rec))
	}
	return vidinfo.PlaylistResult(list.ID.String(), list.MediaCollectionDTO.DisplayName, entries), nil
}

// brightcoveRecord converts a media DTO. Renditions are ordered by size,
// smallest first; without renditions the full length FLV is used.
func brightcoveRecord(v *brightcoveVideo) (*vidinfo.MediaRecord, error) {
	rec := &vidinfo.MediaRecord{
		ID:          v.ID.String(),
		Title:       v.DisplayName,
		Description: v.ShortDescription,
		Thumbnail:   cmp.Or(v.VideoStillURL, v.ThumbnailURL),
		Uploader:    v.PublisherName,
	}

	renditions := slices.Clone(v.Renditions)
	slices.SortStableFunc(renditions, func(a, b brightcoveRendition) int {
		return cmp.Compare(a.Size, b.Size)
	})
	for i, r := range renditions {
		if r.DefaultURL == "" {
			continue
		}
		id := fmt.Sprintf("mp4-%d", i)
		if r.FrameHeight > 0 && !rec.Formats.Has(fmt.Sprintf("%dp", r.FrameHeight)) {
			id = fmt.Sprintf("%dp", r.FrameHeight)
		}
		ext := vidinfo.DetermineExt(r.DefaultURL)
		if ext == vidinfo.UnknownExt {
			ext = "mp4"
		}
		if err := rec.Formats.Add(&vidinfo.Format{URL: r.DefaultURL, Ext: ext, FormatID: id, Quality: i}); err != nil {
			return nil, err
		}
	}

	if len(rec.Formats) == 0 && v.FLVFullLengthURL != "" {
		rec.Formats = vidinfo.Formats{{URL: v.FLVFullLengthURL, Ext: "flv", FormatID: "flv"}}
	}
	if len(rec.Formats) == 0 {
		return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "Unable to extract video url for %s", rec.ID)
	}
	return rec, nil
}
