package site_test

import (
	"context"
	"testing"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrightcove_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts a single video", func(t *testing.T) {
		t.Parallel()

		const query = "playerID=1362235914001&@videoPlayer=2780843233001"
		p := &pages{bodies: map[string]string{
			"http://c.brightcove.com/services/viewer/htmlFederated?" + query: `<script>
var experienceJSON = {"data":{"programmedContent":{"videoPlayer":{"mediaDTO":{"id":2780843233001,"displayName":"Martian Landforms","shortDescription":"Mars Express","videoStillURL":"http://bc.example.com/still.jpg","publisherName":"Space.com","renditions":[{"defaultURL":"http://bc.example.com/720.mp4","size":900,"frameWidth":1280,"frameHeight":720},{"defaultURL":"http://bc.example.com/360.mp4","size":300,"frameWidth":640,"frameHeight":360}]}}}}};
</script>`,
		}}
		env, _ := p.env()

		res, err := site.NewBrightcove(searcher()).Extract(context.Background(), "http://c.brightcove.com/services/viewer/htmlFederated?"+query, env)

		require.NoError(t, err)
		require.Equal(t, vidinfo.KindMedia, res.Kind)
		rec := res.Media
		assert.Equal(t, "2780843233001", rec.ID)
		assert.Equal(t, "Martian Landforms", rec.Title)
		assert.Equal(t, "Mars Express", rec.Description)
		assert.Equal(t, "http://bc.example.com/still.jpg", rec.Thumbnail)
		assert.Equal(t, "Space.com", rec.Uploader)
		require.Len(t, rec.Formats, 2)
		assert.Equal(t, "360p", rec.Formats[0].FormatID)
		assert.Equal(t, "http://bc.example.com/360.mp4", rec.Formats[0].URL)
		assert.Equal(t, "720p", rec.Formats[1].FormatID)
		assert.Equal(t, "http://bc.example.com/720.mp4", rec.Formats.Best().URL)
	})

	t.Run("extracts the playlist of a player", func(t *testing.T) {
		t.Parallel()

		p := &pages{bodies: map[string]string{
			"http://c.brightcove.com/services/json/experience/runtime/?command=get_programming_for_experience&playerKey=AQ~~%2CAAAB": `{"videoList":{"id":1001,
"mediaCollectionDTO":{"displayName":"Launches","videoDTOs":[
 {"id":1,"displayName":"One","FLVFullLengthURL":"http://bc.example.com/one.flv"},
 {"id":2,"displayName":"Two","renditions":[{"defaultURL":"http://bc.example.com/two","size":1}]}
]}}}`,
		}}
		env, _ := p.env()

		res, err := site.NewBrightcove(searcher()).Extract(context.Background(), "http://c.brightcove.com/services/viewer/federated_f9?playerKey=AQ~~,AAAB", env)

		require.NoError(t, err)
		require.Equal(t, vidinfo.KindPlaylist, res.Kind)
		assert.Equal(t, "1001", res.Playlist.ID)
		assert.Equal(t, "Launches", res.Playlist.Title)
		require.Len(t, res.Playlist.Entries, 2)

		one := res.Playlist.Entries[0].Media
		assert.Equal(t, "1", one.ID)
		require.Len(t, one.Formats, 1)
		assert.Equal(t, "flv", one.Formats[0].Ext)

		two := res.Playlist.Entries[1].Media
		require.Len(t, two.Formats, 1)
		assert.Equal(t, "mp4-0", two.Formats[0].FormatID)
		assert.Equal(t, "mp4", two.Formats[0].Ext)
	})

	t.Run("fails for a video without renditions", func(t *testing.T) {
		t.Parallel()

		p := &pages{bodies: map[string]string{
			"http://c.brightcove.com/services/json/experience/runtime/?command=get_programming_for_experience&playerKey=k": `{"videoList":{"id":1,"mediaCollectionDTO":{"videoDTOs":[{"id":9}]}}}`,
		}}
		env, _ := p.env()

		_, err := site.NewBrightcove(searcher()).Extract(context.Background(), "http://c.brightcove.com/services/viewer/federated_f9?playerKey=k", env)

		assert.Equal(t, vidinfo.EEXTRACT, vidinfo.ErrorCode(err))
		assert.Equal(t, "Unable to extract video url for 9", vidinfo.ErrorMessage(err))
	})

	t.Run("fails without a video or player key", func(t *testing.T) {
		t.Parallel()

		env, _ := (&pages{}).env()

		_, err := site.NewBrightcove(searcher()).Extract(context.Background(), "http://c.brightcove.com/services/viewer/federated_f9?playerID=1", env)

		assert.Equal(t, vidinfo.EEXTRACT, vidinfo.ErrorCode(err))
	})
}
