package locate

import (
	"strings"
	"testing"

	"github.com/Aias/page-to-markdown/pkg/siteconfig"
)

// The fixtures here are deliberately tiny so the readability pass
// rejects them and the selector fallback chain is exercised.

func TestLocateConfiguredSelector(t *testing.T) {
	html := `<html><body>
		<div id="wrap"><div class="post">Configured content</div></div>
		<main>Generic main</main>
	</body></html>`
	configs := map[string]siteconfig.Config{
		"example.com": {Selector: ".post"},
	}

	got := Locate(html, nil, "example.com", configs)
	if !strings.Contains(got, "Configured content") {
		t.Errorf("expected configured selector content, got %q", got)
	}
	if strings.Contains(got, "Generic main") {
		t.Errorf("configured selector should win over main, got %q", got)
	}
}

func TestLocateGenericFallback(t *testing.T) {
	html := `<html><body>
		<nav>menu</nav>
		<article><p>The article</p></article>
	</body></html>`

	got := Locate(html, nil, "unknown.net", nil)
	if !strings.Contains(got, "The article") {
		t.Errorf("expected article content, got %q", got)
	}
	if strings.Contains(got, "menu") {
		t.Errorf("nav should not be the content root, got %q", got)
	}
}

func TestLocateBodyFallback(t *testing.T) {
	html := `<html><body><p>Just a body</p></body></html>`

	got := Locate(html, nil, "unknown.net", map[string]siteconfig.Config{
		"unknown.net": {Selector: "#does-not-exist"},
	})
	if !strings.Contains(got, "Just a body") {
		t.Errorf("expected body fallback, got %q", got)
	}
}

func TestLocateNeverEmpty(t *testing.T) {
	for _, in := range []string{"", "plain text", "<p>loose fragment</p>"} {
		got := Locate(in, nil, "x.com", nil)
		if in != "" && got == "" {
			t.Errorf("Locate(%q) returned empty", in)
		}
	}
}

func TestLocateDoesNotMutateInput(t *testing.T) {
	html := `<html><body><main><p>content</p></main></body></html>`
	orig := html

	_ = Locate(html, nil, "x.com", nil)
	if html != orig {
		t.Error("input string changed")
	}
}
