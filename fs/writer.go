// Package fs writes media info documents to the file system.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/vidinfo"
)

// InfoExt is the suffix of written info documents.
const InfoExt = ".info.json"

// InfoPath returns the file name of the record's info document,
// "<extractor>-<id>.info.json". Characters that are unsafe in file names
// are replaced by underscores.
func InfoPath(m *vidinfo.MediaRecord) string {
	name := m.ID
	if m.Extractor != "" {
		name = m.Extractor + "-" + m.ID
	}
	return sanitize(name) + InfoExt
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)
	return strings.TrimLeft(name, ".")
}

// Ensure Writer implements vidinfo.InfoWriter at compile time.
var _ vidinfo.InfoWriter = (*Writer)(nil)

// Writer writes info documents into a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteInfo writes m as indented JSON. The document is written to a
// temporary file first and renamed into place, so readers never observe a
// partial document.
func (w *Writer) WriteInfo(ctx context.Context, m *vidinfo.MediaRecord) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", vidinfo.Errorf(vidinfo.EINTERNAL, "encoding %s: %v", m.ID, err)
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, InfoPath(m))
	tmp, err := os.CreateTemp(w.baseDir, ".info-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
