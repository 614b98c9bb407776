//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/goquery"
	"github.com/fwojciec/vidinfo/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements vidinfo.Fetcher.
var _ vidinfo.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL, "webpage")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_ReturnsScriptInjectedPlayer(t *testing.T) {
	t.Parallel()

	// The player element only exists after the script runs.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Player</title></head>
<body>
<div id="player"></div>
<script>
const v = document.createElement('video');
v.src = '/media/clip.mp4';
document.getElementById('player').appendChild(v);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL, "webpage")
	require.NoError(t, err)

	page, err := goquery.NewPage(html, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/media/clip.mp4"}, page.VideoSources())
}

// recorder collects warnings; safe for concurrent use.
type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func servePlayer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><video src="/clip.mp4"></video></body></html>`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch_RestartsBrowserAfterTimeout(t *testing.T) {
	t.Parallel()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer slow.Close()
	fast := servePlayer(t)

	var warnings recorder
	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100*time.Millisecond), rod.WithWarner(&warnings))
	require.NoError(t, err)
	defer fetcher.Close()
	firstPID := fetcher.LauncherPID()

	_, err = fetcher.Fetch(context.Background(), slow.URL, "webpage")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = fetcher.Fetch(context.Background(), fast.URL, "webpage")
	require.NoError(t, err)

	assert.NotEqual(t, firstPID, fetcher.LauncherPID())
	require.Len(t, warnings.all(), 1)
	assert.Contains(t, warnings.all()[0], "restarting browser: page load timed out")
}

func TestFetcher_Fetch_RestartsBrowserAfterPageBudget(t *testing.T) {
	t.Parallel()

	srv := servePlayer(t)
	var warnings recorder
	fetcher, err := rod.NewFetcher(rod.WithRecycleAfter(2), rod.WithWarner(&warnings))
	require.NoError(t, err)
	defer fetcher.Close()
	firstPID := fetcher.LauncherPID()

	for range 2 {
		_, err := fetcher.Fetch(context.Background(), srv.URL, "webpage")
		require.NoError(t, err)
	}
	assert.Equal(t, firstPID, fetcher.LauncherPID())
	assert.Empty(t, warnings.all())

	_, err = fetcher.Fetch(context.Background(), srv.URL, "webpage")
	require.NoError(t, err)

	assert.NotEqual(t, firstPID, fetcher.LauncherPID())
	assert.Equal(t, []string{"restarting browser: page budget reached after 2 pages"}, warnings.all())
}

func TestFetcher_Close_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com", "webpage")

	require.Error(t, err)
	assert.Equal(t, vidinfo.EINVALID, vidinfo.ErrorCode(err))
	assert.Contains(t, vidinfo.ErrorMessage(err), "closed")
}

func TestFetcher_LauncherPID_ZeroAfterClose(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	require.NotZero(t, fetcher.LauncherPID())

	require.NoError(t, fetcher.Close())

	assert.Zero(t, fetcher.LauncherPID())
}
