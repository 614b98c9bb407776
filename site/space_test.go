package site_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spaceURL = "http://www.space.com/23373-huge-martian-landforms-detail-revealed-by-european-probe-video.html"

func TestSpace_Extract(t *testing.T) {
	t.Parallel()

	t.Run("refers to the og video player", func(t *testing.T) {
		t.Parallel()

		p := &pages{bodies: map[string]string{spaceURL: `<html><head>
<meta property="og:video" content="http://c.brightcove.com/services/viewer/federated_f9?playerKey=AQ~~,AAAB&amp;@videoPlayer=2780843233001">
</head></html>`}}
		env, _ := p.env()

		res, err := site.NewSpace().Extract(context.Background(), spaceURL, env)

		require.NoError(t, err)
		require.Equal(t, vidinfo.KindReference, res.Kind)
		assert.Equal(t, "http://c.brightcove.com/services/viewer/federated_f9?playerKey=AQ~~,AAAB&@videoPlayer=2780843233001", res.Reference.URL)
		assert.Equal(t, "brightcove", res.Reference.ExtractorHint)
		assert.Equal(t, []string{"huge-martian-landforms-detail-revealed-by-european-probe"}, p.notes)
	})

	t.Run("falls back to the embedded player object", func(t *testing.T) {
		t.Parallel()

		p := &pages{bodies: map[string]string{spaceURL: `<html><body>
<object id="myExperience2780843233001" class="BrightcoveExperience">
  <param name="playerID" value="1362235914001" />
  <param name="@videoPlayer" value="2780843233001" />
</object></body></html>`}}
		env, _ := p.env()

		res, err := site.NewSpace().Extract(context.Background(), spaceURL, env)

		require.NoError(t, err)
		require.Equal(t, vidinfo.KindReference, res.Kind)
		assert.Equal(t, "brightcove", res.Reference.ExtractorHint)
		require.True(t, strings.HasPrefix(res.Reference.URL, "http://c.brightcove.com/services/viewer/htmlFederated?"))
		u, err := url.Parse(res.Reference.URL)
		require.NoError(t, err)
		assert.Equal(t, "1362235914001", u.Query().Get("playerID"))
		assert.Equal(t, "2780843233001", u.Query().Get("@videoPlayer"))
		assert.Equal(t, "myExperience2780843233001", u.Query().Get("flashID"))
	})

	t.Run("reports a page without a video as expected", func(t *testing.T) {
		t.Parallel()

		p := &pages{bodies: map[string]string{spaceURL: `<html><body>No video</body></html>`}}
		env, _ := p.env()

		_, err := site.NewSpace().Extract(context.Background(), spaceURL, env)

		require.Error(t, err)
		assert.True(t, vidinfo.IsExpected(err))
		assert.Equal(t, vidinfo.EEXTRACT, vidinfo.ErrorCode(err))
		assert.Equal(t, "The webpage does not contain a video", vidinfo.ErrorMessage(err))
	})
}
