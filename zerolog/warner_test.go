package zerolog_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/vidinfo/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWarner_Warn(t *testing.T) {
	t.Parallel()

	t.Run("writes a console line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := zerolog.NewWarner(&buf, zerolog.WithoutColor(), zerolog.WithoutTimestamp())

		w.Warn("unable to extract thumbnail; please report this issue")

		assert.Contains(t, buf.String(), "WRN unable to extract thumbnail; please report this issue")
	})

	t.Run("attaches the url", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := zerolog.NewWarner(&buf, zerolog.WithoutColor(), zerolog.WithoutTimestamp())

		w.WithURL("http://a.test/1").Warn("Unable to extract upload date")

		assert.Contains(t, buf.String(), "WRN Unable to extract upload date")
		assert.Contains(t, buf.String(), "url=http://a.test/1")
	})
}
