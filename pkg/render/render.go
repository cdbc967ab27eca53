// Package render converts sanitized HTML to Markdown. It configures
// html-to-markdown with GitHub-flavored extensions and overrides the
// default handling of headings (anchor IDs survive), code blocks
// (language and title become the fence info string), figures, and
// task-list checkboxes.
package render

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Renderer is a configured HTML-to-Markdown converter. It is safe for
// reuse across conversions.
type Renderer struct {
	conv *converter.Converter
}

// New creates a Renderer with ATX headings, fenced code blocks, "-"
// bullets, "_" emphasis, "**" strong, and the table and strikethrough
// extensions, plus the custom rules described in the package comment.
func New() *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithEmDelimiter("_"),
				commonmark.WithBulletListMarker("-"),
			),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)

	// PriorityEarly (100) runs before the commonmark plugin
	// (PriorityStandard 500), so these win unless they defer with
	// RenderTryNext.
	for _, tag := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		conv.Register.RendererFor(tag, converter.TagTypeBlock,
			renderHeading, converter.PriorityEarly)
	}
	conv.Register.RendererFor("pre", converter.TagTypeBlock,
		renderCodeBlock, converter.PriorityEarly)
	conv.Register.RendererFor("figure", converter.TagTypeBlock,
		renderFigure, converter.PriorityEarly)
	conv.Register.RendererFor("input", converter.TagTypeInline,
		renderCheckbox, converter.PriorityEarly)

	return &Renderer{conv: conv}
}

// Render converts an HTML fragment to Markdown. Empty or
// whitespace-only input renders as an empty string.
func (r *Renderer) Render(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	return r.conv.ConvertString(html)
}
