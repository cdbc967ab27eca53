package normalize

import (
	stdhtml "html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DescribeEmbeddedMedia replaces iframe, video, and audio elements
// with a block quote describing the embed, so players survive the
// Markdown conversion as text. The description reads
//
//	Embedded <tag> from <provider> "<title>" <url>
//
// with absent parts omitted. A URL that cannot be parsed is kept as
// its raw (possibly relative) string rather than failing the step.
func DescribeEmbeddedMedia(doc *goquery.Document, base *url.URL) {
	doc.Find("iframe, video, audio").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)

		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" && tag != "iframe" {
			src = strings.TrimSpace(s.Find("source[src]").First().AttrOr("src", ""))
		}
		src = absoluteURL(src, base)

		provider := ""
		if u, err := url.Parse(src); err == nil && u.Hostname() != "" {
			provider = strings.TrimPrefix(u.Hostname(), "www.")
		}

		title := strings.TrimSpace(s.AttrOr("title", ""))

		parts := []string{"Embedded", tag}
		if provider != "" {
			parts = append(parts, "from", provider)
		}
		if title != "" {
			parts = append(parts, `"`+title+`"`)
		}
		if src != "" {
			parts = append(parts, src)
		}

		s.ReplaceWithHtml("<blockquote><p>" + stdhtml.EscapeString(strings.Join(parts, " ")) + "</p></blockquote>")
	})
}
