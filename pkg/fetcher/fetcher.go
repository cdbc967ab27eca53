// Package fetcher retrieves web pages for conversion. Implement the
// Fetcher interface to supply pages from other sources (saved
// archives, headless browsers, test fixtures).
package fetcher

import (
	"context"
	"time"
)

// Fetcher abstracts page retrieval strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// CanonicalMarkdown looks for an already-authored Markdown
	// version of the page (a ".md" sibling of the page URL). It
	// returns "" when none exists; absence is not an error.
	CanonicalMarkdown(ctx context.Context, pageURL string) string

	// Close releases any resources held by the fetcher.
	Close() error
}

// Options controls fetching behavior for a single request.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content represents a fetched page.
type Content struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}
