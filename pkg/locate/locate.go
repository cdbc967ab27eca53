// Package locate picks the element subtree that represents the
// article body of a page. It tries a readability extraction first and
// falls back through hostname-configured and generic selectors.
package locate

import (
	"bytes"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/Aias/page-to-markdown/internal/logger"
	"github.com/Aias/page-to-markdown/pkg/siteconfig"
)

// Locate returns the HTML of the content root for a page. The chain
// is: readability extraction, the hostname's configured selector, a
// generic "article, main" selector, then the document body. The
// result is always a serialized copy, never a view into the caller's
// document, and Locate never fails: in the worst case it returns the
// input unchanged.
func Locate(pageHTML string, base *url.URL, hostname string, configs map[string]siteconfig.Config) string {
	if frag := fromReadability(pageHTML, base); frag != "" {
		logger.Debug("content located via readability", "host", hostname, "size", len(frag))
		return frag
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		logger.Debug("content parse failed, using raw input", "error", err)
		return pageHTML
	}

	cfg := siteconfig.Lookup(configs, hostname)
	for _, sel := range []string{cfg.Selector, "article, main", "body"} {
		if sel == "" {
			continue
		}
		found := doc.Find(sel)
		if found.Length() == 0 {
			continue
		}
		out, err := goquery.OuterHtml(found.First())
		if err != nil || strings.TrimSpace(out) == "" {
			continue
		}
		logger.Debug("content located via selector", "host", hostname, "selector", sel)
		return out
	}

	return pageHTML
}

// fromReadability runs the readability heuristic and returns the
// extracted fragment wrapped in a fresh container, or "" when the
// page does not look like an article.
func fromReadability(pageHTML string, base *url.URL) string {
	parser := readability.NewParser()

	article, err := parser.Parse(strings.NewReader(pageHTML), base)
	if err != nil || article.Node == nil {
		return ""
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return ""
	}
	frag := strings.TrimSpace(buf.String())
	if frag == "" {
		return ""
	}
	return "<div>" + frag + "</div>"
}
