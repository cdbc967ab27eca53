// Package pipeline turns a web page into a self-contained Markdown
// document: front matter, a table of contents, and a normalized body.
// It sequences content location, DOM normalization, footnote
// extraction, sanitization, and Markdown rendering, and accepts an
// already-authored canonical Markdown document as a short-circuit for
// the DOM path.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/Aias/page-to-markdown/internal/logger"
	"github.com/Aias/page-to-markdown/pkg/footnote"
	"github.com/Aias/page-to-markdown/pkg/locate"
	"github.com/Aias/page-to-markdown/pkg/normalize"
	"github.com/Aias/page-to-markdown/pkg/render"
	"github.com/Aias/page-to-markdown/pkg/siteconfig"
	"github.com/Aias/page-to-markdown/pkg/textutil"
	"github.com/Aias/page-to-markdown/pkg/toc"
)

// Config configures a conversion run.
type Config struct {
	// Hostname selects per-site overrides from Configs. Usually the
	// host of PageURL; may be set independently when converting
	// saved HTML.
	Hostname string

	// PageURL is the address the HTML was fetched from. Used to
	// resolve relative links and images and recorded as the front
	// matter source. May be nil.
	PageURL *url.URL

	// Configs holds per-hostname extraction settings. If nil, the
	// built-in defaults are used.
	Configs map[string]siteconfig.Config

	// Canonical is an already-authored Markdown version of the page.
	// When non-empty and its front matter strips cleanly, it replaces
	// the DOM-derived body and the TOC is left empty.
	Canonical string

	// Metadata overrides the values extracted from the document head.
	// Zero-value fields fall back to the extracted values.
	Metadata Metadata

	// Now supplies the retrieval timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Option configures the pipeline.
type Option func(*Config)

// WithHostname sets the hostname used for per-site config lookup.
func WithHostname(hostname string) Option {
	return func(c *Config) {
		c.Hostname = hostname
	}
}

// WithPageURL sets the page URL for link resolution and front matter.
func WithPageURL(u *url.URL) Option {
	return func(c *Config) {
		c.PageURL = u
		if c.Hostname == "" && u != nil {
			c.Hostname = u.Hostname()
		}
	}
}

// WithConfigs sets the per-hostname config snapshot.
func WithConfigs(configs map[string]siteconfig.Config) Option {
	return func(c *Config) {
		c.Configs = configs
	}
}

// WithCanonical supplies an already-authored Markdown alternative.
func WithCanonical(markdown string) Option {
	return func(c *Config) {
		c.Canonical = markdown
	}
}

// WithMetadata overrides extracted page metadata field by field.
func WithMetadata(meta Metadata) Option {
	return func(c *Config) {
		c.Metadata = meta
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// Result is the output of one conversion.
type Result struct {
	// Markdown is the complete document: front matter, table of
	// contents, and body.
	Markdown string

	// TOC is the table of contents on its own, one Markdown list
	// item per heading. Empty for canonical-override conversions
	// and for pages without headings.
	TOC string
}

// Pipeline converts pages to Markdown. A Pipeline is safe to reuse
// for multiple conversions with the same configuration.
type Pipeline struct {
	cfg      Config
	renderer *render.Renderer
	policy   *bluemonday.Policy
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Configs == nil {
		cfg.Configs = siteconfig.Defaults()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Pipeline{
		cfg:      cfg,
		renderer: render.New(),
		policy:   contentPolicy(),
	}
}

// Convert turns the page HTML into the final Markdown document. The
// DOM path never fails on malformed or empty content; errors surface
// only for parser failures or an internal panic.
func (p *Pipeline) Convert(ctx context.Context, pageHTML string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("pipeline: conversion panicked: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta := p.metadata(pageHTML)

	if p.cfg.Canonical != "" {
		if body, ok := textutil.StripFrontMatter(p.cfg.Canonical); ok {
			logger.Debug("using canonical markdown source",
				"hostname", p.cfg.Hostname)
			return assemble(meta, "", PostProcess(body)), nil
		}
		logger.Debug("canonical markdown has no front matter, falling back to DOM conversion")
	}

	body, contents, err := p.convertDOM(pageHTML)
	if err != nil {
		return nil, err
	}
	return assemble(meta, contents, body), nil
}

// convertDOM runs the DOM conversion path: locate the content
// region, normalize it in place, then render it to Markdown.
func (p *Pipeline) convertDOM(pageHTML string) (body, contents string, err error) {
	region := locate.Locate(pageHTML, p.cfg.PageURL, p.cfg.Hostname, p.cfg.Configs)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(region))
	if err != nil {
		return "", "", fmt.Errorf("parsing content region: %w", err)
	}

	site := siteconfig.Lookup(p.cfg.Configs, p.cfg.Hostname)

	normalize.DescribeEmbeddedMedia(doc, p.cfg.PageURL)
	normalize.DescribeSVGs(doc)
	normalize.CleanContent(doc, site.Remove, p.cfg.PageURL)
	normalize.NormalizeLinks(doc, p.cfg.PageURL)
	normalize.UnwrapHeadingLinks(doc)
	normalize.PrepareCodeBlocks(doc)

	contents = toc.Generate(doc)
	footnotes := footnote.Extract(doc)

	inner, err := doc.Find("body").Html()
	if err != nil {
		return "", "", fmt.Errorf("serializing content region: %w", err)
	}

	markdown, err := p.renderer.Render(p.policy.Sanitize(inner))
	if err != nil {
		return "", "", fmt.Errorf("rendering markdown: %w", err)
	}
	markdown = PostProcess(markdown)

	if appendix := p.renderFootnotes(footnotes); appendix != "" {
		markdown += "\n\n" + appendix
	}

	logger.Debug("converted content region",
		"hostname", p.cfg.Hostname,
		"footnotes", len(footnotes),
		"bytes", len(markdown))
	return markdown, contents, nil
}

// renderFootnotes renders each footnote definition back through the
// Markdown renderer and formats the results as a footnote appendix.
// Continuation lines are indented so multi-paragraph footnotes stay
// attached to their label.
func (p *Pipeline) renderFootnotes(defs []footnote.Definition) string {
	var entries []string
	for _, def := range defs {
		md, err := p.renderer.Render(def.HTML)
		if err != nil {
			logger.Debug("skipping unrenderable footnote", "label", def.Label, "error", err)
			continue
		}
		md = PostProcess(md)
		if md == "" {
			continue
		}

		lines := strings.Split(md, "\n")
		for i := 1; i < len(lines); i++ {
			if lines[i] != "" {
				lines[i] = "    " + lines[i]
			}
		}
		entries = append(entries, "[^"+def.Label+"]: "+strings.Join(lines, "\n"))
	}
	return strings.Join(entries, "\n")
}
