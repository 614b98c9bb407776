package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BrightcoveFederatedURL is the viewer endpoint embedded Brightcove players
// are resolved through.
const BrightcoveFederatedURL = "http://c.brightcove.com/services/viewer/htmlFederated"

// BrightcoveURL builds the federated viewer URL from the first
// BrightcoveExperience <object> on the page. It returns false when the page
// has no such object or the object lacks a playerID.
func (p *Page) BrightcoveURL() (string, bool) {
	obj := p.doc.Find("object").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		return strings.Contains(class, "BrightcoveExperience")
	}).First()
	if obj.Length() == 0 {
		return "", false
	}

	params := make(map[string]string)
	obj.Find("param").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		value, _ := sel.Attr("value")
		params[name] = value
	})

	playerID := params["playerID"]
	if playerID == "" {
		return "", false
	}

	q := url.Values{}
	q.Set("playerID", playerID)
	if id, ok := obj.Attr("id"); ok {
		q.Set("flashID", id)
	}
	if key := params["playerKey"]; key != "" {
		q.Set("playerKey", key)
	}
	if player := params["@videoPlayer"]; player != "" {
		q.Set("@videoPlayer", player)
	}
	return BrightcoveFederatedURL + "?" + q.Encode(), true
}
