// Package goquery reads video-relevant markup from HTML pages: Open Graph
// and meta tags, elements selected by attribute, embedded player objects
// and HTML5 video sources.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/vidinfo"
)

// Page is a parsed HTML page.
type Page struct {
	doc  *goquery.Document
	base *url.URL
}

// NewPage parses html. pageURL is used to resolve relative links and may
// be empty.
func NewPage(html, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, vidinfo.Errorf(vidinfo.EINVALID, "failed to parse HTML: %v", err)
	}
	var base *url.URL
	if pageURL != "" {
		base, err = url.Parse(pageURL)
		if err != nil {
			return nil, vidinfo.Errorf(vidinfo.EINVALID, "invalid page URL: %v", err)
		}
	}
	return &Page{doc: doc, base: base}, nil
}

// Title returns the trimmed text of the first <title> element.
func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

// Meta returns the content of the first <meta> whose property, name or
// itemprop attribute equals key, ignoring case.
func (p *Page) Meta(key string) string {
	var content string
	p.doc.Find("meta[content]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, attr := range []string{"property", "name", "itemprop"} {
			if v, ok := sel.Attr(attr); ok && strings.EqualFold(strings.TrimSpace(v), key) {
				content, _ = sel.Attr("content")
				return false
			}
		}
		return true
	})
	return strings.TrimSpace(content)
}

// OpenGraph returns the og:<prop> meta content.
func (p *Page) OpenGraph(prop string) string {
	return p.Meta("og:" + prop)
}

// OpenGraphVideo returns the page's og:video URL, preferring the secure
// variant, resolved against the page URL.
func (p *Page) OpenGraphVideo() string {
	for _, prop := range []string{"video:secure_url", "video", "video:url"} {
		if v := p.OpenGraph(prop); v != "" {
			return p.resolve(v)
		}
	}
	return ""
}

// ElementHTML returns the inner HTML of the first element whose attr
// equals value.
func (p *Page) ElementHTML(attr, value string) (string, bool) {
	var (
		inner string
		found bool
	)
	p.doc.Find("[" + attr + "]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if v, _ := sel.Attr(attr); v != value {
			return true
		}
		inner, _ = sel.Html()
		found = true
		return false
	})
	return strings.TrimSpace(inner), found
}

// VideoSources returns the absolute URLs of <video src> and <video>
// <source src> elements in document order, without duplicates.
func (p *Page) VideoSources() []string {
	seen := make(map[string]bool)
	var sources []string
	p.doc.Find("video[src], video source[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		src = p.resolve(strings.TrimSpace(src))
		if src == "" || seen[src] {
			return
		}
		seen[src] = true
		sources = append(sources, src)
	})
	return sources
}

// resolve makes href absolute against the page URL. Unparseable hrefs
// resolve to "".
func (p *Page) resolve(href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if p.base == nil {
		return ref.String()
	}
	return p.base.ResolveReference(ref).String()
}

// CleanHTML turns an HTML fragment into trimmed plain text: tags are
// removed, entities decoded and newlines in the source collapsed.
func CleanHTML(fragment string) string {
	fragment = strings.ReplaceAll(fragment, "\n", " ")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	return strings.TrimSpace(doc.Text())
}
