package normalize

import (
	stdhtml "html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

const maxIconSize = 48

// DescribeSVGs handles inline SVGs. Icon-sized ones (both dimensions
// explicit and under 48) are removed. Described SVGs become a
// "[SVG: <description>]" paragraph; SVGs that are decoration next to
// richer sibling text are dropped; anything left becomes a generic
// "[SVG diagram]" placeholder. Placeholders are plain paragraphs so
// they survive Markdown conversion as text.
func DescribeSVGs(doc *goquery.Document) {
	doc.Find("svg").Each(func(_ int, svg *goquery.Selection) {
		w, wok := dimension(svg, "width")
		h, hok := dimension(svg, "height")
		if wok && hok && w < maxIconSize && h < maxIconSize {
			svg.Remove()
			return
		}

		desc := textutil.CollapseWhitespace(svg.Find("title").First().Text())
		if desc == "" {
			desc = textutil.CollapseWhitespace(svg.Find("desc").First().Text())
		}
		if desc == "" {
			desc = textutil.CollapseWhitespace(svg.AttrOr("aria-label", ""))
		}
		if desc != "" {
			svg.ReplaceWithHtml("<p>[SVG: " + stdhtml.EscapeString(desc) + "]</p>")
			return
		}

		// No description: an SVG whose siblings carry more text than
		// the SVG itself is assumed decorative.
		own := len(strings.TrimSpace(svg.Text()))
		surrounding := len(strings.TrimSpace(svg.Parent().Text())) - own
		if surrounding > own {
			svg.Remove()
			return
		}

		svg.ReplaceWithHtml("<p>[SVG diagram]</p>")
	})
}
