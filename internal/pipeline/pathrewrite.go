package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativeLinks resolves relative image and link references in an
// HTML fragment against base, the URL the markdown was loaded from.
// If base is nil, returns the fragment unchanged.
//
// Rewrites:
//   - img[src]
//   - a[href], except in-page anchors
//
// Leaves absolute URLs, scheme-carrying references (mailto:, data:) and
// protocol-relative references untouched.
func RewriteRelativeLinks(fragment string, base *url.URL) (string, error) {
	if base == nil || strings.TrimSpace(fragment) == "" {
		return fragment, nil
	}

	container, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	rewriteNode(container, base)

	return renderFragment(container)
}

// parseFragment parses HTML with body context and wraps the nodes in a
// container for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders the container's children without a document wrapper.
func renderFragment(container *html.Node) (string, error) {
	var buf strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteNode traverses the tree and rewrites relative references.
func rewriteNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", base)
		case atom.A:
			rewriteAttr(n, "href", base)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}

// rewriteAttr rewrites a single attribute if it holds a relative reference.
func rewriteAttr(n *html.Node, attrName string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativeRef(attr.Val) {
			continue
		}

		ref, err := url.Parse(attr.Val)
		if err != nil {
			continue // Leave unparsable references as written
		}
		n.Attr[i].Val = base.ResolveReference(ref).String()
	}
}

// isRelativeRef returns true if the reference should be resolved against the base.
func isRelativeRef(ref string) bool {
	if ref == "" {
		return false
	}

	// In-page anchors and protocol-relative URLs
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return false
	}

	// http:, https:, mailto:, data:, file: and friends
	return u.Scheme == ""
}
