package pipeline

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

// Metadata is the page-level information recorded in front matter.
// All fields are plain strings; absent values stay empty.
type Metadata struct {
	Title       string
	Source      string
	Author      string
	Description string
	Retrieved   string
}

// metadata extracts page metadata from the full document head,
// applying any caller overrides on top. Extraction failures degrade
// to empty fields.
func (p *Pipeline) metadata(pageHTML string) Metadata {
	meta := p.extractMetadata(pageHTML)

	if p.cfg.Metadata.Title != "" {
		meta.Title = p.cfg.Metadata.Title
	}
	if p.cfg.Metadata.Source != "" {
		meta.Source = p.cfg.Metadata.Source
	}
	if p.cfg.Metadata.Author != "" {
		meta.Author = p.cfg.Metadata.Author
	}
	if p.cfg.Metadata.Description != "" {
		meta.Description = p.cfg.Metadata.Description
	}
	if p.cfg.Metadata.Retrieved != "" {
		meta.Retrieved = p.cfg.Metadata.Retrieved
	}
	return meta
}

func (p *Pipeline) extractMetadata(pageHTML string) Metadata {
	meta := Metadata{
		Retrieved: p.cfg.Now().UTC().Format(time.RFC3339),
	}
	if p.cfg.PageURL != nil {
		meta.Source = p.cfg.PageURL.String()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return meta
	}

	meta.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		textutil.CollapseWhitespace(doc.Find("title").First().Text()),
	)
	meta.Author = metaContent(doc, `meta[name="author"]`)
	meta.Description = firstNonEmpty(
		metaContent(doc, `meta[name="description"]`),
		metaContent(doc, `meta[property="og:description"]`),
	)
	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	return textutil.CollapseWhitespace(doc.Find(selector).First().AttrOr("content", ""))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
