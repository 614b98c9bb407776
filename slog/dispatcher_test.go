package slog_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/mock"
	vslog "github.com/fwojciec/vidinfo/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDispatcher_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("logs the selected extractor", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ex := &mock.Extractor{NameFn: func() string { return "imdb" }}
		inner := &mock.Dispatcher{ResolveFn: func(url string) (vidinfo.Extractor, error) {
			return ex, nil
		}}

		got, err := vslog.NewLoggingDispatcher(inner, logger).Resolve("http://www.imdb.com/video/imdb/vi1")

		require.NoError(t, err)
		assert.Same(t, ex, got)
		output := buf.String()
		assert.Contains(t, output, "dispatch")
		assert.Contains(t, output, "extractor=imdb")
	})

	t.Run("logs no match", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Dispatcher{ResolveFn: func(url string) (vidinfo.Extractor, error) {
			return nil, vidinfo.Errorf(vidinfo.ENOMATCH, "no extractor")
		}}

		_, err := vslog.NewLoggingDispatcher(inner, logger).Resolve("ftp://x")

		assert.Equal(t, vidinfo.ENOMATCH, vidinfo.ErrorCode(err))
		assert.Contains(t, buf.String(), "extractor=(none)")
	})
}

func TestLoggingDispatcher_Lookup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Dispatcher{LookupFn: func(name string) (vidinfo.Extractor, bool) {
		return nil, false
	}}

	_, ok := vslog.NewLoggingDispatcher(inner, logger).Lookup("nope")

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "unknown extractor")
}

func TestWarner_Warn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	vslog.NewWarner(logger, "url", "http://a.test/").Warn("unable to extract thumbnail")

	output := buf.String()
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, `msg="unable to extract thumbnail"`)
	assert.Contains(t, output, "url=http://a.test/")
}

func TestWarner_WithURL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	base := vslog.NewWarner(logger, "extractor", "imdb")

	base.WithURL("http://a.test/1").Warn("unable to extract description")
	base.Warn("unable to extract thumbnail")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "extractor=imdb url=http://a.test/1")
	assert.NotContains(t, lines[1], "url=")
}
