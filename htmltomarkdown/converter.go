// Package htmltomarkdown renders description HTML as Markdown so that
// links and emphasis survive in the info document.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/vidinfo"
)

// Ensure Converter implements vidinfo.Converter at compile time.
var _ vidinfo.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithStrongDelimiter("**"),
			),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into trimmed Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", vidinfo.Errorf(vidinfo.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", vidinfo.Errorf(vidinfo.EEXTRACT, "converting description: %v", err)
	}

	return strings.TrimSpace(result), nil
}
