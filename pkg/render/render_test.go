package render

import (
	"strings"
	"testing"
)

func TestRenderBasics(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
	}{
		{
			name:     "paragraph with emphasis",
			html:     `<p>Plain <em>em</em> and <strong>strong</strong> text.</p>`,
			contains: []string{"_em_", "**strong**"},
		},
		{
			name:     "unordered list uses dashes",
			html:     `<ul><li>one</li><li>two</li></ul>`,
			contains: []string{"- one", "- two"},
			excludes: []string{"* one"},
		},
		{
			name:     "strikethrough",
			html:     `<p><del>gone</del></p>`,
			contains: []string{"~~gone~~"},
		},
		{
			name: "table",
			html: `<table><thead><tr><th>A</th><th>B</th></tr></thead>` +
				`<tbody><tr><td>1</td><td>2</td></tr></tbody></table>`,
			contains: []string{"| A | B |", "| 1 | 2 |"},
		},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.html)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
	}{
		{
			name:     "heading with id gets anchor suffix",
			html:     `<h2 id="getting-started">Getting Started</h2>`,
			contains: []string{"## Getting Started {#getting-started}"},
		},
		{
			name:     "heading without id stays plain",
			html:     `<h3>No Anchor</h3>`,
			contains: []string{"### No Anchor"},
			excludes: []string{"{#"},
		},
		{
			name:     "inline markup survives inside heading",
			html:     `<h2 id="api"><code>Render</code> API</h2>`,
			contains: []string{"`Render` API {#api}"},
		},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.html)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestRenderCodeBlocks(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
	}{
		{
			name:     "language from class",
			html:     `<pre><code class="language-go">fmt.Println("hi")</code></pre>`,
			contains: []string{"```go\n", `fmt.Println("hi")`, "\n```"},
		},
		{
			name:     "language from data attribute",
			html:     `<pre data-language="python"><code>print(1)</code></pre>`,
			contains: []string{"```python\n", "print(1)"},
		},
		{
			name: "language and title",
			html: `<pre data-language="ts" data-title="src/main.ts"><code>let x = 1</code></pre>`,
			contains: []string{
				"```ts title=\"src/main.ts\"\n",
				"let x = 1",
			},
		},
		{
			name: "title from wrapper caption",
			html: `<figure data-rehype-pretty-code-figure="">` +
				`<div data-rehype-pretty-code-title="">config.yaml</div>` +
				`<pre data-language="yaml"><code>key: value</code></pre></figure>`,
			contains: []string{"```yaml title=\"config.yaml\"", "key: value"},
		},
		{
			name:     "no language hint leaves bare fence",
			html:     `<pre><code>plain text</code></pre>`,
			contains: []string{"```\nplain text\n```"},
		},
		{
			name:     "surrounding blank lines trimmed",
			html:     "<pre><code>\n\n  indented()\n\n</code></pre>",
			contains: []string{"```\n  indented()\n```"},
		},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.html)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderFigures(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
	}{
		{
			name: "image with caption",
			html: `<figure><img src="https://example.com/a.png" alt="A chart">` +
				`<figcaption>Quarterly results</figcaption></figure>`,
			contains: []string{
				"![A chart](https://example.com/a.png)",
				"_Quarterly results_",
			},
		},
		{
			name:     "image with title attribute",
			html:     `<figure><img src="/b.png" alt="B" title="hover text"></figure>`,
			contains: []string{`![B](/b.png "hover text")`},
		},
		{
			name: "code figure defers to fence rule",
			html: `<figure><pre data-language="sh"><code>ls -la</code></pre></figure>`,
			contains: []string{
				"```sh\nls -la\n```",
			},
		},
		{
			name:     "empty figure renders nothing",
			html:     `<p>before</p><figure><div>widget chrome</div></figure><p>after</p>`,
			contains: []string{"before", "after"},
			excludes: []string{"widget chrome"},
		},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.html)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestRenderTaskLists(t *testing.T) {
	html := `<ul>` +
		`<li><input type="checkbox" checked> done item</li>` +
		`<li><input type="checkbox"> open item</li>` +
		`</ul>`

	got, err := New().Render(html)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"[x] done item", "[ ] open item"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
