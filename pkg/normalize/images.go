package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

// lazySrcAttrs are tried in order when an image has no usable src.
var lazySrcAttrs = []string{
	"data-src", "data-lazy-src", "data-original", "data-actualsrc", "data-url",
}

// srcsetAttrs are srcset-shaped attributes tried after the plain
// lazy-src attributes.
var srcsetAttrs = []string{
	"srcset", "data-srcset", "data-lazy-srcset",
}

// resolveLazyImage fills in the src of a lazy-loaded image. It tries
// the known data attributes for a non-data: URL, then the srcset
// attributes (best candidate wins), and finally the <source> elements
// of an enclosing <picture>.
func resolveLazyImage(img *goquery.Selection) {
	if src := img.AttrOr("src", ""); src != "" && !strings.HasPrefix(src, "data:") {
		return
	}

	for _, attr := range lazySrcAttrs {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" && !strings.HasPrefix(v, "data:") {
			img.SetAttr("src", v)
			return
		}
	}

	if src := bestFromAttrs(img); src != "" {
		img.SetAttr("src", src)
		return
	}

	picture := img.Closest("picture")
	if picture.Length() == 0 {
		return
	}
	picture.Find("source").EachWithBreak(func(_ int, source *goquery.Selection) bool {
		if src := bestFromAttrs(source); src != "" {
			img.SetAttr("src", src)
			return false
		}
		return true
	})
}

// bestFromAttrs scans the srcset-shaped attributes of an element and
// returns the best candidate URL, or "".
func bestFromAttrs(s *goquery.Selection) string {
	for _, attr := range srcsetAttrs {
		if src := textutil.BestSrcFromSrcset(s.AttrOr(attr, "")); src != "" && !strings.HasPrefix(src, "data:") {
			return src
		}
	}
	return ""
}
