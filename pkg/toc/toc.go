// Package toc builds a Markdown table of contents from the headings
// of a content root and guarantees unique heading IDs.
package toc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

// Generate scans heading levels 1-6 in document order and returns a
// Markdown list, indented two spaces per level below h1. Headings
// without an ID get one written back so the Markdown renderer can
// attach matching anchors; colliding slugs are suffixed -1, -2, ...
// on each repeat.
func Generate(doc *goquery.Document) string {
	counters := map[string]int{}
	var b strings.Builder

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		tag := goquery.NodeName(h)
		level := int(tag[1] - '0')
		text := textutil.CollapseWhitespace(h.Text())

		slug := h.AttrOr("id", "")
		if slug == "" {
			slug = textutil.Slugify(text)
		}
		if slug == "" {
			slug = "section"
		}

		if n, seen := counters[slug]; seen {
			// A suffixed candidate can itself be taken when an earlier
			// heading produced it as a base slug, so keep advancing.
			candidate := fmt.Sprintf("%s-%d", slug, n)
			for counters[candidate] != 0 {
				n++
				candidate = fmt.Sprintf("%s-%d", slug, n)
			}
			counters[slug] = n + 1
			counters[candidate] = 1
			slug = candidate
		} else {
			counters[slug] = 1
		}
		h.SetAttr("id", slug)

		b.WriteString(strings.Repeat("  ", level-1))
		b.WriteString("- [" + text + "](#" + slug + ")\n")
	})

	return strings.TrimRight(b.String(), "\n")
}
