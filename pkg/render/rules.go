package render

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

// renderHeading emits "## text {#id}" so anchor targets survive the
// flattening to Markdown. Headings without an ID fall through to the
// default rule.
func renderHeading(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	id := dom.GetAttributeOr(n, "id", "")
	if id == "" {
		return converter.RenderTryNext
	}

	level := int(n.Data[1] - '0')

	w.WriteString("\n\n")
	w.WriteString(strings.Repeat("#", level))
	w.WriteString(" ")
	ctx.RenderChildNodes(ctx, w, n)
	w.WriteString(" {#" + id + "}")
	w.WriteString("\n\n")
	return converter.RenderSuccess
}

// languageAttrs and languagePrefixes drive code-block language
// detection, checked across the <pre>, its <code>, and an enclosing
// pretty-code figure; the first non-empty hit wins.
var (
	languageAttrs    = []string{"data-language", "data-lang", "data-code-language"}
	languagePrefixes = []string{"language-", "lang-", "code-language-", "highlight-"}
)

// renderCodeBlock emits a fenced block for any <pre> holding a
// <code>, with an info string of the form `lang title="..."` (either
// part omitted when absent).
func renderCodeBlock(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	code := firstDescendant(n, "code")
	if code == nil {
		return converter.RenderTryNext
	}

	raw := textutil.TrimFencePadding(collectText(code))
	lang := detectLanguage(n, code)
	title := detectTitle(n, code)

	info := lang
	if title != "" {
		if info != "" {
			info += " "
		}
		info += `title="` + textutil.EscapeInfoString(title) + `"`
	}

	w.WriteString("\n\n```")
	w.WriteString(info)
	w.WriteString("\n")
	w.WriteString(raw)
	w.WriteString("\n```\n\n")
	return converter.RenderSuccess
}

// detectLanguage checks the pre, the code, and an enclosing figure
// for a language hint, first in data attributes and then in prefixed
// class names. Matching is case-insensitive.
func detectLanguage(pre, code *html.Node) string {
	for _, n := range codeContextNodes(pre, code) {
		for _, attr := range languageAttrs {
			if v := strings.TrimSpace(attrValue(n, attr)); v != "" {
				return v
			}
		}
		for _, cls := range strings.Fields(attrValue(n, "class")) {
			lower := strings.ToLower(cls)
			for _, prefix := range languagePrefixes {
				if strings.HasPrefix(lower, prefix) && len(cls) > len(prefix) {
					return cls[len(prefix):]
				}
			}
		}
	}
	return ""
}

// detectTitle resolves a code-block title: data/title attributes,
// then a pretty-code title node or caption inside the wrapper, then
// an aria-labelledby reference, then the active tab label inside a
// demo container. Whitespace is collapsed.
func detectTitle(pre, code *html.Node) string {
	for _, n := range codeContextNodes(pre, code) {
		for _, attr := range []string{"data-title", "title"} {
			if v := textutil.CollapseWhitespace(attrValue(n, attr)); v != "" {
				return v
			}
		}
	}

	if wrapper := enclosingFigure(pre); wrapper != nil {
		var title string
		eachDescendant(wrapper, func(node *html.Node) bool {
			if hasAttr(node, "data-rehype-pretty-code-title") ||
				classContains(node, "code-title") ||
				classContains(node, "code-block-title") ||
				classContains(node, "caption") {
				title = textutil.CollapseWhitespace(collectText(node))
				return title != ""
			}
			return false
		})
		if title != "" {
			return title
		}
	}

	if id := attrValue(pre, "aria-labelledby"); id != "" {
		if label := findByID(documentRoot(pre), id); label != nil {
			if v := textutil.CollapseWhitespace(collectText(label)); v != "" {
				return v
			}
		}
	}

	if demo := closestAncestor(pre, func(n *html.Node) bool {
		return hasAttr(n, "data-demo") || classContains(n, "demo")
	}); demo != nil {
		var title string
		eachDescendant(demo, func(node *html.Node) bool {
			if attrValue(node, "role") == "tab" && attrValue(node, "aria-selected") == "true" {
				title = textutil.CollapseWhitespace(collectText(node))
				return title != ""
			}
			return false
		})
		if title != "" {
			return title
		}
	}

	return ""
}

// codeContextNodes orders the nodes consulted for language and title
// hints: the pre itself, its code, then the enclosing figure.
func codeContextNodes(pre, code *html.Node) []*html.Node {
	nodes := []*html.Node{pre}
	if code != nil {
		nodes = append(nodes, code)
	}
	if fig := enclosingFigure(pre); fig != nil {
		nodes = append(nodes, fig)
	}
	return nodes
}

func enclosingFigure(n *html.Node) *html.Node {
	return closestAncestor(n, func(p *html.Node) bool {
		return p.Data == "figure" ||
			hasAttr(p, "data-rehype-pretty-code-fragment") ||
			hasAttr(p, "data-rehype-pretty-code-figure")
	})
}

// renderFigure emits the images of a figure as Markdown image syntax
// followed by the caption in italics. Figures holding code defer to
// the code-block rule; figures with neither images nor code render as
// blank lines so their content is not duplicated by default rules.
func renderFigure(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	var images []*html.Node
	eachDescendant(n, func(node *html.Node) bool {
		if node.Data == "img" {
			images = append(images, node)
		}
		return false
	})

	if len(images) == 0 {
		if firstDescendant(n, "pre") != nil {
			return converter.RenderTryNext
		}
		w.WriteString("\n\n")
		return converter.RenderSuccess
	}

	w.WriteString("\n\n")
	for _, img := range images {
		src := dom.GetAttributeOr(img, "src", "")
		if src == "" {
			continue
		}
		alt := textutil.CollapseWhitespace(dom.GetAttributeOr(img, "alt", ""))
		title := textutil.CollapseWhitespace(dom.GetAttributeOr(img, "title", ""))

		w.WriteString("![" + alt + "](" + src)
		if title != "" {
			w.WriteString(` "` + title + `"`)
		}
		w.WriteString(")\n\n")
	}

	if caption := figureCaption(n); caption != "" {
		w.WriteString("_" + caption + "_\n\n")
	}
	return converter.RenderSuccess
}

func figureCaption(fig *html.Node) string {
	fc := firstDescendant(fig, "figcaption")
	if fc == nil {
		return ""
	}
	return textutil.CollapseWhitespace(collectText(fc))
}

// renderCheckbox turns task-list checkboxes into GitHub-flavored
// "[ ]"/"[x]" markers. Other inputs render as nothing.
func renderCheckbox(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if dom.GetAttributeOr(n, "type", "") != "checkbox" {
		return converter.RenderSuccess
	}
	if hasAttr(n, "checked") {
		w.WriteString("[x] ")
	} else {
		w.WriteString("[ ] ")
	}
	return converter.RenderSuccess
}
