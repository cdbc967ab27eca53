// Package footnote converts in-page footnote references and their
// definitions into Markdown footnote syntax. References are replaced
// with plain "[^label]" text nodes; definitions are captured as
// sanitized HTML fragments for the pipeline to render as an appendix.
package footnote

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Definition is one captured footnote, ordered by first reference.
type Definition struct {
	Label string
	HTML  string
}

// bareRefSelector matches footnote references that are not wrapped in
// a <sup>.
const bareRefSelector = `a[role="doc-noteref"], a[data-footnote-ref], a.footnote-ref, a.fnref`

// backlinkSelector matches back-reference links inside a definition.
const backlinkSelector = `a[role="doc-backlink"], a.footnote-backref, a[href*="#fnref"], a[href^="#ref"]`

var policy = bluemonday.UGCPolicy()

type extractor struct {
	doc       *goquery.Document
	processed map[*html.Node]bool
	labels    map[string]string // target ID -> label
	order     []string          // target IDs by first appearance
	used      map[string]bool   // labels already assigned
	defs      map[string]string // target ID -> sanitized HTML
}

// Extract finds footnote references in the document, replaces them
// with "[^label]" text, removes the definitions from the tree, and
// returns the captured definitions in first-reference order. IDs that
// are referenced but never defined get a label but no output entry.
func Extract(doc *goquery.Document) []Definition {
	e := &extractor{
		doc:       doc,
		processed: map[*html.Node]bool{},
		labels:    map[string]string{},
		used:      map[string]bool{},
		defs:      map[string]string{},
	}

	// Sup-wrapped references first, then bare anchors not already
	// handled.
	doc.Find("sup > a[href]").Each(func(_ int, a *goquery.Selection) {
		e.reference(a, a.Parent())
	})
	doc.Find(bareRefSelector).Each(func(_ int, a *goquery.Selection) {
		if len(a.Nodes) == 0 || e.processed[a.Nodes[0]] {
			return
		}
		e.reference(a, a)
	})

	out := make([]Definition, 0, len(e.order))
	for _, id := range e.order {
		if htmlFrag, ok := e.defs[id]; ok {
			out = append(out, Definition{Label: e.labels[id], HTML: htmlFrag})
		}
	}
	return out
}

// reference processes one footnote reference; replace is the node
// swapped for the "[^label]" text (the <sup> wrapper when present).
func (e *extractor) reference(a, replace *goquery.Selection) {
	if len(a.Nodes) == 0 {
		return
	}
	e.processed[a.Nodes[0]] = true

	id := targetID(a.AttrOr("href", ""))
	if id == "" {
		return
	}

	label, seen := e.labels[id]
	if !seen {
		label = e.assignLabel(a.Text())
		e.labels[id] = label
		e.order = append(e.order, id)
		e.captureDefinition(id)
	}

	replaceWithText(replace, "[^"+label+"]")
}

// targetID resolves an href to the definition element's ID. Both
// same-document hash refs and absolute URLs with a hash are accepted.
func targetID(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "#") {
		return href[1:]
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Fragment
}

// assignLabel prefers the reference's visible text, stripped of
// surrounding brackets; when that is empty or already taken it falls
// back to the next unused small integer. Earlier labels are never
// renumbered, so output may mix text and numeric labels.
func (e *extractor) assignLabel(text string) string {
	label := strings.Trim(strings.TrimSpace(text), "[]")
	if label == "" || e.used[label] {
		n := 1
		for e.used[strconv.Itoa(n)] {
			n++
		}
		label = strconv.Itoa(n)
	}
	e.used[label] = true
	return label
}

// captureDefinition clones the definition element, strips back-links,
// stores the sanitized fragment, and removes the original (plus its
// parent list when that list is left empty).
func (e *extractor) captureDefinition(id string) {
	def := e.doc.Find(fmt.Sprintf("[id=%q]", id)).First()
	if def.Length() == 0 {
		return
	}

	clone := def.Clone()
	clone.Find(backlinkSelector).Remove()
	inner, err := clone.Html()
	if err != nil {
		return
	}
	e.defs[id] = strings.TrimSpace(policy.Sanitize(inner))

	parent := def.Parent()
	def.Remove()
	if parent.Length() > 0 && parent.Is("ol, ul") && parent.Children().Length() == 0 {
		parent.Remove()
	}
}

// replaceWithText swaps an element for a plain text node.
func replaceWithText(s *goquery.Selection, text string) {
	if len(s.Nodes) == 0 {
		return
	}
	n := s.Nodes[0]
	if n.Parent == nil {
		return
	}
	tn := &html.Node{Type: html.TextNode, Data: text}
	n.Parent.InsertBefore(tn, n)
	n.Parent.RemoveChild(n)
}
