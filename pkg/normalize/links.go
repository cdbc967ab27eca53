package normalize

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// trackingParams are stripped from every link; utm_* parameters are
// matched by prefix.
var trackingParams = map[string]bool{
	"fbclid": true,
	"gclid":  true,
	"mc_cid": true,
	"mc_eid": true,
	"ref":    true,
}

// NormalizeLinks resolves anchor hrefs against the page location and
// strips known tracking parameters. Empty, javascript:, and hash-only
// hrefs are skipped; parse failures leave the href untouched.
func NormalizeLinks(doc *goquery.Document, base *url.URL) {
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "#") {
			return
		}

		var u *url.URL
		var err error
		if base != nil {
			u, err = base.Parse(href)
		} else {
			u, err = url.Parse(href)
		}
		if err != nil {
			return
		}

		q := u.Query()
		for key := range q {
			if trackingParams[key] || strings.HasPrefix(key, "utm_") {
				q.Del(key)
			}
		}
		u.RawQuery = q.Encode()

		a.SetAttr("href", u.String())
	})
}

// UnwrapHeadingLinks replaces a heading's content with its anchor's
// inner content when the anchor is the heading's only child. Inline
// formatting inside the anchor survives; the link itself is dropped.
func UnwrapHeadingLinks(doc *goquery.Document) {
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		children := h.Children()
		if children.Length() != 1 {
			return
		}
		anchor := children.First()
		if goquery.NodeName(anchor) != "a" {
			return
		}
		// Text outside the anchor means the link is not the whole
		// heading.
		if strings.TrimSpace(h.Text()) != strings.TrimSpace(anchor.Text()) {
			return
		}
		inner, err := anchor.Html()
		if err != nil {
			return
		}
		h.SetHtml(inner)
	})
}
