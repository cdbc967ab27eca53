package render

import (
	"strings"

	"golang.org/x/net/html"
)

// collectText concatenates the text nodes under n in document order.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// firstDescendant returns the first element with the given tag under
// n, or nil.
func firstDescendant(n *html.Node, tag string) *html.Node {
	var found *html.Node
	eachDescendant(n, func(node *html.Node) bool {
		if node.Data == tag {
			found = node
			return true
		}
		return false
	})
	return found
}

// eachDescendant visits element nodes under n depth-first until fn
// returns true.
func eachDescendant(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if fn(c) {
				return true
			}
		}
		if eachDescendant(c, fn) {
			return true
		}
	}
	return false
}

// closestAncestor walks up from n (exclusive) until pred matches.
func closestAncestor(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && pred(p) {
			return p
		}
	}
	return nil
}

// documentRoot returns the topmost node reachable from n.
func documentRoot(n *html.Node) *html.Node {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// findByID returns the element with the given id under root, or nil.
func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	eachDescendant(root, func(node *html.Node) bool {
		if attrValue(node, "id") == id {
			found = node
			return true
		}
		return false
	})
	return found
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// classContains reports whether the node's class attribute contains
// the given class name as a whole word.
func classContains(n *html.Node, name string) bool {
	for _, cls := range strings.Fields(attrValue(n, "class")) {
		if cls == name {
			return true
		}
	}
	return false
}
