package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extractor string
		id        string
		want      string
	}{
		{
			name:      "joins extractor and id",
			extractor: "imdb",
			id:        "2524815897",
			want:      "imdb-2524815897.info.json",
		},
		{
			name:      "replaces unsafe characters",
			extractor: "imdb:list",
			id:        "a/b",
			want:      "imdb_list-a_b.info.json",
		},
		{
			name: "uses the id alone without extractor",
			id:   "..hidden",
			want: "hidden.info.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fs.InfoPath(&vidinfo.MediaRecord{ID: tt.id, Extractor: tt.extractor})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_WriteInfo(t *testing.T) {
	t.Parallel()

	rec := func() *vidinfo.MediaRecord {
		return &vidinfo.MediaRecord{
			ID:    "1509445",
			Title: "Clip",
			Formats: vidinfo.Formats{
				{URL: "http://cdn.example.com/1509445.flv", Ext: "flv", FormatID: "sd"},
			},
			AgeLimit:  vidinfo.AgeLimit(18),
			Extractor: "xhamster",
		}
	}

	t.Run("writes the record as json", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "info")
		path, err := fs.NewWriter(dir).WriteInfo(context.Background(), rec())

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "xhamster-1509445.info.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "1509445", got["id"])
		assert.Equal(t, "Clip", got["title"])
		assert.Equal(t, float64(18), got["age_limit"])
	})

	t.Run("overwrites an earlier document and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		_, err := w.WriteInfo(context.Background(), rec())
		require.NoError(t, err)

		updated := rec()
		updated.Title = "Renamed"
		path, err := w.WriteInfo(context.Background(), updated)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"title": "Renamed"`)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("rejects an invalid record", func(t *testing.T) {
		t.Parallel()

		invalid := rec()
		invalid.Formats = nil

		_, err := fs.NewWriter(t.TempDir()).WriteInfo(context.Background(), invalid)

		assert.Equal(t, vidinfo.EINVALID, vidinfo.ErrorCode(err))
	})
}
