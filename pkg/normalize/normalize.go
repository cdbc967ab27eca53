// Package normalize contains the element-level mutators that prepare
// a content root for Markdown conversion. Every function operates
// in place on a goquery document that the pipeline run owns
// exclusively.
//
// The steps depend on ordering (later steps assume earlier cleanup);
// that order is encoded only by the pipeline, never assumed here.
package normalize

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultRemoveSelectors are the built-in noise selectors stripped
// from every content root: scripts, page chrome, ads, popups,
// comments, and related-content blocks.
var DefaultRemoveSelectors = []string{
	"script", "style", "noscript", "template", "link", "meta",
	"nav", "header", "footer", "aside",
	"form", "select", "textarea", "input:not([type='checkbox'])",
	".ad", ".ads", ".advert", ".advertisement", "ins.adsbygoogle",
	"[class*='sponsored']", "[id*='google_ads']",
	".popup", ".modal", ".modal-backdrop",
	"[class*='cookie-banner']", "[class*='newsletter-signup']",
	".comments", "#comments", ".comment-section", "#disqus_thread",
	".related", ".related-posts", ".related-articles", ".recommended",
	".share-buttons", ".social-share", ".sharing-buttons",
	".sidebar", ".breadcrumb", ".breadcrumbs", ".skip-link",
	"[role='navigation']", "[role='banner']", "[role='contentinfo']",
	"[role='complementary']", "[role='dialog']",
}

// mediaTags are exempt from the empty-element check and count as
// meaningful descendants for their containers.
var mediaTags = map[string]bool{
	"img": true, "picture": true, "video": true, "audio": true,
	"iframe": true, "embed": true, "object": true, "svg": true,
	"canvas": true, "source": true, "track": true,
}

// voidTags never have content and must survive the emptiness check.
var voidTags = map[string]bool{
	"br": true, "hr": true, "input": true, "wbr": true,
	"col": true, "area": true,
}

const minImageSize = 32

// CleanContent removes every element matching the merged selector
// list (built-in noise plus site-specific extras), then drops hidden
// and contentless elements in a single pass, and finally resolves and
// filters images. Relative URLs are resolved against base; a nil base
// leaves them untouched.
func CleanContent(doc *goquery.Document, extraSelectors []string, base *url.URL) {
	for _, sel := range DefaultRemoveSelectors {
		doc.Find(sel).Remove()
	}
	for _, sel := range extraSelectors {
		doc.Find(sel).Remove()
	}

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if isHidden(s) {
			s.Remove()
			return
		}
		if isEmpty(s) {
			s.Remove()
		}
	})

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		resolveLazyImage(img)
		if isTinyImage(img) {
			parent := img.Parent()
			img.Remove()
			pruneEmptyAncestors(parent)
			return
		}
		if src, ok := img.Attr("src"); ok && src != "" {
			img.SetAttr("src", absoluteURL(src, base))
		}
	})
}

// pruneEmptyAncestors removes containers left contentless after an
// image removal, walking up until an ancestor still has content. The
// hidden/empty sweep runs before the image pass, so this is the only
// place elements can be emptied afterwards.
func pruneEmptyAncestors(s *goquery.Selection) {
	for s.Length() > 0 && !s.Is("html, body") && isEmpty(s) {
		parent := s.Parent()
		s.Remove()
		s = parent
	}
}

// isHidden reports elements hidden via attribute or inline style.
func isHidden(s *goquery.Selection) bool {
	if _, ok := s.Attr("hidden"); ok {
		return true
	}
	if s.AttrOr("aria-hidden", "") == "true" {
		return true
	}
	style := strings.ToLower(s.AttrOr("style", ""))
	if style == "" {
		return false
	}
	style = strings.ReplaceAll(style, " ", "")
	return strings.Contains(style, "display:none") ||
		strings.Contains(style, "visibility:hidden")
}

// isEmpty reports elements with no text and no media descendants.
// Media and void tags are exempt.
func isEmpty(s *goquery.Selection) bool {
	tag := goquery.NodeName(s)
	if mediaTags[tag] || voidTags[tag] {
		return false
	}
	if strings.TrimSpace(s.Text()) != "" {
		return false
	}
	return s.Find("img, picture, video, audio, iframe, embed, object, svg, canvas").Length() == 0
}

// isTinyImage reports images whose explicit dimensions are both below
// the tracking-pixel threshold. Images without explicit dimensions
// are kept.
func isTinyImage(img *goquery.Selection) bool {
	w, wok := dimension(img, "width")
	h, hok := dimension(img, "height")
	return wok && hok && w < minImageSize && h < minImageSize
}

// dimension parses a numeric size attribute, tolerating a unit suffix
// like "24px".
func dimension(s *goquery.Selection, attr string) (int, bool) {
	raw := strings.TrimSpace(s.AttrOr(attr, ""))
	if raw == "" {
		return 0, false
	}
	end := 0
	for end < len(raw) && (raw[end] >= '0' && raw[end] <= '9') {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// absoluteURL resolves raw against base, keeping the raw string on
// any parse failure.
func absoluteURL(raw string, base *url.URL) string {
	if raw == "" || base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
