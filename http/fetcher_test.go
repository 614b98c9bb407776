package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/vidinfo"
	vidinfohttp "github.com/fwojciec/vidinfo/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := vidinfohttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL, "webpage")
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.UserAgent()
		}))
		defer server.Close()

		fetcher := vidinfohttp.NewFetcher(vidinfohttp.WithUserAgent("vidinfo-test"))
		_, err := fetcher.Fetch(context.Background(), server.URL, "webpage")

		require.NoError(t, err)
		assert.Equal(t, "vidinfo-test", got)
	})

	t.Run("rejects bodies over the size cap", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("0123456789"))
		}))
		defer server.Close()

		fetcher := vidinfohttp.NewFetcher(vidinfohttp.WithMaxBodySize(4))
		_, err := fetcher.Fetch(context.Background(), server.URL, "webpage")

		require.Error(t, err)
		assert.Equal(t, vidinfo.EEXTRACT, vidinfo.ErrorCode(err))
		assert.Equal(t, "webpage too large: more than 4 bytes", vidinfo.ErrorMessage(err))
	})

	t.Run("accepts bodies exactly at the size cap", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("0123"))
		}))
		defer server.Close()

		fetcher := vidinfohttp.NewFetcher(vidinfohttp.WithMaxBodySize(4))
		body, err := fetcher.Fetch(context.Background(), server.URL, "webpage")

		require.NoError(t, err)
		assert.Equal(t, "0123", body)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := vidinfohttp.NewFetcher(vidinfohttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL, "webpage")
		require.Error(t, err)
		assert.Equal(t, vidinfo.EEXTRACT, vidinfo.ErrorCode(err))
	})

	t.Run("returns the context error when canceled", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := vidinfohttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL, "webpage")
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := vidinfohttp.NewFetcher(vidinfohttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page", "webpage")
		require.Error(t, err)
	})

	t.Run("names the note for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := vidinfohttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL, "list RSS")
		require.Error(t, err)
		assert.Equal(t, vidinfo.EEXTRACT, vidinfo.ErrorCode(err))
		assert.Contains(t, vidinfo.ErrorMessage(err), "unable to download list RSS: HTTP 404")
	})
}
