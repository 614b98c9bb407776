// Package etree parses the XML documents video sites publish alongside
// their pages: RSS list feeds, Media RSS feeds and mediagen rendition lists.
package etree

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/vidinfo"
)

// FeedItem is one <item> of a Media RSS feed.
type FeedItem struct {
	GUID        string
	Title       string
	Description string

	// MediaURL is the url attribute of media:group/media:content, or of a
	// bare media:content.
	MediaURL  string
	Thumbnail string
}

// read parses xml leniently; feeds in the wild are often not well formed.
func read(xml string) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(xml); err != nil {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "failed to parse XML: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "XML document has no root element")
	}
	return root, nil
}

// FeedTitle returns the channel title of an RSS feed.
func FeedTitle(xml string) (string, error) {
	root, err := read(xml)
	if err != nil {
		return "", err
	}
	title := root.FindElement(".//channel/title")
	if title == nil {
		title = root.FindElement(".//title")
	}
	if title == nil {
		return "", vidinfo.FieldNotFound("list title")
	}
	return strings.TrimSpace(title.Text()), nil
}

// ParseFeed returns the items of a Media RSS feed in document order.
func ParseFeed(xml string) ([]FeedItem, error) {
	root, err := read(xml)
	if err != nil {
		return nil, err
	}

	var items []FeedItem
	for _, el := range root.FindElements(".//item") {
		item := FeedItem{
			GUID:        childText(el, "guid"),
			Title:       childText(el, "title"),
			Description: childText(el, "description"),
		}
		media := el
		if group := el.SelectElement("media:group"); group != nil {
			media = group
		}
		if content := media.SelectElement("media:content"); content != nil {
			item.MediaURL = strings.TrimSpace(content.SelectAttrValue("url", ""))
		}
		if thumb := media.SelectElement("media:thumbnail"); thumb != nil {
			item.Thumbnail = strings.TrimSpace(thumb.SelectAttrValue("url", ""))
		}
		items = append(items, item)
	}
	return items, nil
}

// Rendition is one encoded variant listed by a mediagen document.
type Rendition struct {
	URL     string
	Type    string
	Width   int
	Height  int
	Bitrate string
}

// Ext returns the subtype of the rendition's MIME type, e.g. "mp4".
func (r Rendition) Ext() string {
	_, ext, ok := strings.Cut(r.Type, "/")
	if !ok || ext == "" {
		return vidinfo.DetermineExt(r.URL)
	}
	return ext
}

// ParseRenditions returns the renditions of a mediagen document in
// document order. A rendition without a type or src fails the whole
// document.
func ParseRenditions(xml string) ([]Rendition, error) {
	root, err := read(xml)
	if err != nil {
		return nil, err
	}

	var out []Rendition
	for _, el := range root.FindElements(".//rendition") {
		src := el.SelectElement("src")
		typ := el.SelectAttrValue("type", "")
		if src == nil || strings.TrimSpace(src.Text()) == "" || typ == "" {
			return nil, vidinfo.Errorf(vidinfo.EEXTRACT, "invalid rendition field")
		}
		width, _ := strconv.Atoi(el.SelectAttrValue("width", ""))
		height, _ := strconv.Atoi(el.SelectAttrValue("height", ""))
		out = append(out, Rendition{
			URL:     strings.TrimSpace(src.Text()),
			Type:    typ,
			Width:   width,
			Height:  height,
			Bitrate: el.SelectAttrValue("bitrate", ""),
		})
	}
	return out, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
