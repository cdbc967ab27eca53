package pipeline

import (
	"strings"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

// BuildFrontMatter renders the YAML front matter block for the given
// metadata. Free-text fields are escaped for double-quoted YAML;
// source and retrieved are URLs and ISO timestamps and pass through
// as-is.
func BuildFrontMatter(meta Metadata) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(`title: "` + textutil.EscapeYAML(meta.Title) + "\"\n")
	b.WriteString("source: " + meta.Source + "\n")
	b.WriteString("retrieved: " + meta.Retrieved + "\n")
	b.WriteString(`author: "` + textutil.EscapeYAML(meta.Author) + "\"\n")
	b.WriteString(`description: "` + textutil.EscapeYAML(meta.Description) + "\"\n")
	b.WriteString("tags: []\n")
	b.WriteString("toc: true\n")
	b.WriteString("---")
	return b.String()
}

// assemble joins front matter, the table of contents section, and the
// body into the final document. The TOC section and its trailing
// horizontal rule are omitted when the TOC is empty, which covers
// both headingless pages and canonical-override conversions.
func assemble(meta Metadata, contents, body string) *Result {
	var b strings.Builder
	b.WriteString(BuildFrontMatter(meta))
	b.WriteString("\n\n")
	if contents != "" {
		b.WriteString("## Table of Contents\n\n")
		b.WriteString(contents)
		b.WriteString("\n\n---\n\n")
	}
	b.WriteString(body)

	return &Result{
		Markdown: strings.TrimRight(b.String(), "\n") + "\n",
		TOC:      contents,
	}
}
