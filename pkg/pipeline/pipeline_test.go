package pipeline

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Aias/page-to-markdown/pkg/textutil"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return u
}

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="Writing Parsers in Go">
<meta name="author" content="Pat Doe">
<meta name="description" content="A practical guide.">
</head>
<body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<main>
<h1>Writing Parsers in Go</h1>
<p>Parsers turn text into structure.</p>
<h2>Lexing</h2>
<p>Start with a lexer.</p>
<pre><code class="language-go">tok := lex.Next()</code></pre>
<h2>Parsing</h2>
<p>Then build the tree.</p>
</main>
<footer>Copyright 2025</footer>
</body>
</html>`

func TestConvertArticle(t *testing.T) {
	p := New(
		WithPageURL(mustURL(t, "https://blog.example.com/parsers")),
		WithClock(fixedClock),
	)

	res, err := p.Convert(context.Background(), articlePage)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	contains := []string{
		`title: "Writing Parsers in Go"`,
		"source: https://blog.example.com/parsers",
		"retrieved: 2025-03-14T09:26:53Z",
		`author: "Pat Doe"`,
		`description: "A practical guide."`,
		"tags: []",
		"toc: true",
		"## Table of Contents",
		"- [Writing Parsers in Go](#writing-parsers-in-go)",
		"  - [Lexing](#lexing)",
		"## Lexing {#lexing}",
		"```go\ntok := lex.Next()\n```",
		"Then build the tree.",
	}
	excludes := []string{
		"About",
		"Copyright 2025",
		"Fallback Title",
	}

	for _, want := range contains {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("output missing %q:\n%s", want, res.Markdown)
		}
	}
	for _, bad := range excludes {
		if strings.Contains(res.Markdown, bad) {
			t.Errorf("output should not contain %q:\n%s", bad, res.Markdown)
		}
	}

	if !strings.Contains(res.TOC, "- [Lexing](#lexing)") {
		t.Errorf("TOC missing Lexing entry:\n%s", res.TOC)
	}
	if strings.Contains(res.Markdown, "\n\n\n") {
		t.Errorf("output contains 3+ consecutive newlines:\n%s", res.Markdown)
	}
}

func TestConvertFootnotes(t *testing.T) {
	page := `<html><head><title>Notes</title></head><body><main>
<h1>Claims</h1>
<p>Well established.<sup><a href="#fn-1">[1]</a></sup></p>
<div id="fn-1"><p>See the 2019 survey.</p></div>
</main></body></html>`

	p := New(WithClock(fixedClock))
	res, err := p.Convert(context.Background(), page)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.Contains(res.Markdown, "[^1]") {
		t.Errorf("body missing footnote reference:\n%s", res.Markdown)
	}
	if !strings.Contains(res.Markdown, "[^1]: See the 2019 survey.") {
		t.Errorf("appendix missing footnote definition:\n%s", res.Markdown)
	}
}

func TestConvertCanonicalOverride(t *testing.T) {
	canonical := "---\ntitle: Hand Written\n---\n# Hand Written\n\nThe authored version."
	page := `<html><head><title>Page Title</title></head><body><main>
<h1>Scraped Heading</h1><p>Scraped body.</p>
</main></body></html>`

	p := New(
		WithPageURL(mustURL(t, "https://docs.example.com/guide")),
		WithCanonical(canonical),
		WithClock(fixedClock),
	)
	res, err := p.Convert(context.Background(), page)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.Contains(res.Markdown, "The authored version.") {
		t.Errorf("canonical body missing:\n%s", res.Markdown)
	}
	if strings.Contains(res.Markdown, "Scraped body.") {
		t.Errorf("DOM body should be replaced:\n%s", res.Markdown)
	}
	if res.TOC != "" {
		t.Errorf("TOC should be empty for canonical override, got %q", res.TOC)
	}
	if strings.Contains(res.Markdown, "## Table of Contents") {
		t.Errorf("TOC section should be omitted:\n%s", res.Markdown)
	}
	// Metadata still comes from the page, not the canonical doc.
	if !strings.Contains(res.Markdown, `title: "Page Title"`) {
		t.Errorf("front matter should use page metadata:\n%s", res.Markdown)
	}
}

func TestConvertCanonicalWithoutFrontMatterFallsBack(t *testing.T) {
	page := `<html><head><title>T</title></head><body><main>
<h1>Scraped Heading</h1><p>Scraped body.</p>
</main></body></html>`

	p := New(
		WithCanonical("# Just markdown, no front matter"),
		WithClock(fixedClock),
	)
	res, err := p.Convert(context.Background(), page)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(res.Markdown, "Scraped body.") {
		t.Errorf("expected DOM conversion fallback:\n%s", res.Markdown)
	}
}

func TestConvertMetadataOverrides(t *testing.T) {
	page := `<html><head><title>Extracted</title></head><body><main><p>Body text.</p></main></body></html>`

	p := New(
		WithMetadata(Metadata{Title: "Override", Author: "Someone Else"}),
		WithClock(fixedClock),
	)
	res, err := p.Convert(context.Background(), page)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(res.Markdown, `title: "Override"`) {
		t.Errorf("title override not applied:\n%s", res.Markdown)
	}
	if !strings.Contains(res.Markdown, `author: "Someone Else"`) {
		t.Errorf("author override not applied:\n%s", res.Markdown)
	}
}

func TestConvertEmptyDocument(t *testing.T) {
	p := New(WithClock(fixedClock))
	res, err := p.Convert(context.Background(), "")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.HasPrefix(res.Markdown, "---\n") {
		t.Errorf("front matter missing on empty input:\n%s", res.Markdown)
	}
	if res.TOC != "" {
		t.Errorf("TOC should be empty for an empty document, got %q", res.TOC)
	}
}

func TestConvertCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Convert(ctx, articlePage); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestBuildFrontMatter(t *testing.T) {
	got := BuildFrontMatter(Metadata{
		Title:       `He said "go"`,
		Source:      "https://example.com/a",
		Retrieved:   "2025-03-14T09:26:53Z",
		Author:      "",
		Description: "Line one\nline two",
	})

	contains := []string{
		`title: "He said \"go\""`,
		"source: https://example.com/a",
		`author: ""`,
		`description: "Line one\nline two"`,
		"tags: []",
		"toc: true",
	}
	for _, want := range contains {
		if !strings.Contains(got, want) {
			t.Errorf("front matter missing %q:\n%s", want, got)
		}
	}
	if !strings.HasPrefix(got, "---\n") || !strings.HasSuffix(got, "---") {
		t.Errorf("front matter not delimited:\n%s", got)
	}
}

func TestFrontMatterRoundTrip(t *testing.T) {
	meta := Metadata{
		Title:     "A Title",
		Source:    "https://example.com/a",
		Retrieved: "2025-03-14T09:26:53Z",
	}
	body := "# A Title\n\nBody paragraph."

	doc := BuildFrontMatter(meta) + "\n\n" + body
	got, ok := textutil.StripFrontMatter(doc)
	if !ok {
		t.Fatal("StripFrontMatter did not find the built front matter")
	}
	if got != body {
		t.Errorf("round trip = %q, want %q", got, body)
	}
}

func TestPostProcess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses blank runs",
			in:   "a\n\n\n\nb",
			want: "a\n\nb",
		},
		{
			name: "straightens smart quotes",
			in:   "\u201cquoted\u201d and \u2018single\u2019 and don\u2019t",
			want: `"quoted" and 'single' and don't`,
		},
		{
			name: "replaces non-breaking spaces",
			in:   "a\u00a0b",
			want: "a b",
		},
		{
			name: "trims line ends and outer whitespace",
			in:   "first\ntrailing   \n\n",
			want: "first\ntrailing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PostProcess(tt.in)
			if got != tt.want {
				t.Errorf("PostProcess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPostProcessIdempotent(t *testing.T) {
	in := "a\u201cx\u201d\n\n\n\nb   \n\u00a0c\n"
	once := PostProcess(in)
	twice := PostProcess(once)
	if once != twice {
		t.Errorf("PostProcess not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}
