package normalize

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

// prettyCodeWrappers matches the figure-style containers produced by
// syntax highlighters (rehype-pretty-code, shiki, docs themes).
const prettyCodeWrappers = "figure, [data-rehype-pretty-code-fragment], [data-rehype-pretty-code-figure], .code-block, .highlight"

// titlePanels matches the wrapper children that carry a code block's
// display title.
const titlePanels = "[data-rehype-pretty-code-title], .code-title, .code-block-title"

// PrepareCodeBlocks consolidates "pretty code" containers so the
// Markdown renderer only has to look at the <pre> element. Language
// and title markup from the wrapper is promoted onto the <pre>'s own
// data attributes, and interactive chrome (copy buttons, tab strips,
// scrollbar panels) is stripped from figures that hold code.
func PrepareCodeBlocks(doc *goquery.Document) {
	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		wrapper := pre.Closest(prettyCodeWrappers)

		if pre.AttrOr("data-language", "") == "" {
			lang := pre.Find("code[data-language]").First().AttrOr("data-language", "")
			if lang == "" && wrapper.Length() > 0 {
				lang = wrapper.AttrOr("data-language", "")
			}
			if lang != "" {
				pre.SetAttr("data-language", lang)
			}
		}

		if pre.AttrOr("data-title", "") == "" {
			if title := resolveTitle(doc, pre, wrapper); title != "" {
				pre.SetAttr("data-title", title)
			}
		}

		if wrapper.Length() > 0 {
			// Once promoted, the title panel must not render as body text.
			wrapper.Find(titlePanels).Remove()
			wrapper.Find("button, [role='tablist'], [role='scrollbar'], [data-radix-scroll-area-scrollbar]").Remove()
		}
	})
}

// resolveTitle finds a human title for a code block: the wrapper's
// title panel first, then an aria-labelledby reference.
func resolveTitle(doc *goquery.Document, pre, wrapper *goquery.Selection) string {
	if wrapper.Length() > 0 {
		panel := wrapper.Find(titlePanels).First()
		if panel.Length() > 0 {
			if title := textutil.CollapseWhitespace(panel.Text()); title != "" {
				return title
			}
		}
	}

	if id := pre.AttrOr("aria-labelledby", ""); id != "" {
		label := doc.Find(fmt.Sprintf("[id=%q]", id)).First()
		if title := textutil.CollapseWhitespace(label.Text()); title != "" {
			return title
		}
	}

	return ""
}
