package pipeline

import "github.com/microcosm-cc/bluemonday"

// contentPolicy builds the sanitization policy applied to the
// normalized content region before Markdown rendering. It starts from
// bluemonday's UGC policy and re-admits the structural markup the
// renderer's custom rules depend on: heading and definition IDs, code
// block language/title attributes, figures, and task-list checkboxes.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("id").Globally()

	p.AllowElements("figure", "figcaption", "picture", "source")
	p.AllowAttrs("src", "srcset", "media", "type").OnElements("source")

	p.AllowAttrs("data-language", "data-title", "title").OnElements("pre", "code", "figure")
	p.AllowAttrs("class").OnElements("pre", "code", "figure", "div", "span")
	p.AllowAttrs("aria-labelledby").OnElements("pre")

	p.AllowElements("input")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")

	p.AllowAttrs("title").OnElements("img")
	p.AllowAttrs("start").OnElements("ol")

	return p
}
