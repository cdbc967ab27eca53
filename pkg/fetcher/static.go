package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/Aias/page-to-markdown/internal/logger"
)

// StaticConfig holds configuration for the static fetcher.
type StaticConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultStaticConfig returns sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// StaticFetcher retrieves pages over plain HTTP using Colly. It does
// not execute JavaScript; pages that render client-side should be
// saved from a browser and converted from file instead.
type StaticFetcher struct {
	config StaticConfig
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg StaticConfig) *StaticFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultStaticConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultStaticConfig().Timeout
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves page content from the URL.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}

	logger.Debug("fetch starting", "url", targetURL)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = f.config.UserAgent
	}
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		// Bind the HTTP request to ctx so cancellation (SIGINT in the
		// CLI) aborts mid-request instead of waiting out the timeout.
		colly.StdlibContext(ctx),
	)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.HTML = string(r.Body)
		logger.Debug("fetch response received",
			"status", r.StatusCode,
			"content_type", result.ContentType,
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
		logger.Debug("fetch error", "status", result.StatusCode, "error", err)
	})

	if err := c.Visit(targetURL); err != nil {
		return result, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return result, fetchErr
	}

	logger.Debug("fetch complete", "url", targetURL, "bytes", len(result.HTML))
	return result, nil
}

// CanonicalMarkdown tries the ".md" siblings of the page URL and
// returns the first response that looks like Markdown rather than
// HTML. All failures (no candidate, network error, HTML response)
// return "".
func (f *StaticFetcher) CanonicalMarkdown(ctx context.Context, pageURL string) string {
	for _, candidate := range markdownCandidates(pageURL) {
		if err := ctx.Err(); err != nil {
			return ""
		}

		content, err := f.Fetch(ctx, candidate, Options{})
		if err != nil || content.StatusCode != 200 || content.HTML == "" {
			continue
		}
		if looksLikeHTML(content.ContentType, content.HTML) {
			continue
		}

		logger.Debug("found canonical markdown", "url", candidate)
		return content.HTML
	}
	return ""
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// markdownCandidates derives the ".md" sibling URLs to probe:
// "/post" becomes "/post.md", "/post/" becomes "/post/index.md", and
// a trailing ".html" is swapped for ".md". Query and fragment are
// dropped.
func markdownCandidates(pageURL string) []string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return nil
	}
	u.RawQuery = ""
	u.Fragment = ""

	var candidates []string
	add := func(p string) {
		c := *u
		c.Path = p
		candidates = append(candidates, c.String())
	}

	switch {
	case strings.HasSuffix(u.Path, "/"):
		add(u.Path + "index.md")
	case strings.HasSuffix(u.Path, ".md"):
		add(u.Path)
	case path.Ext(u.Path) != "":
		add(strings.TrimSuffix(u.Path, path.Ext(u.Path)) + ".md")
	default:
		add(u.Path + ".md")
		add(u.Path + "/index.md")
	}
	return candidates
}

// looksLikeHTML reports whether a canonical-markdown candidate
// actually served an HTML page, which happens on sites that answer
// every path with their SPA shell.
func looksLikeHTML(contentType, body string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
