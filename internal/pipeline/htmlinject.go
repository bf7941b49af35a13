package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sentinel errors for slot injection.
var (
	ErrSlotNotFound  = errors.New("template slot not found")
	ErrPageParse     = errors.New("failed to parse page template")
	ErrFragmentParse = errors.New("failed to parse HTML fragment")
)

// Slot is a placeholder element in the page, addressed by its id attribute.
// Injection replaces the element's children with either parsed markup or a
// single text node.
type Slot struct {
	ID     string
	Markup string
	Text   string
	isText bool
}

// HTMLSlot fills the element with id with an HTML fragment.
func HTMLSlot(id, fragment string) Slot {
	return Slot{ID: id, Markup: fragment}
}

// TextSlot fills the element with id with escaped text content.
func TextSlot(id, text string) Slot {
	return Slot{ID: id, Text: text, isText: true}
}

// SlotInjector defines the contract for filling page slots.
type SlotInjector interface {
	InjectSlots(ctx context.Context, page, lang string, slots []Slot) (string, error)
}

// SlotInjection fills page slots using an HTML5 parse tree.
type SlotInjection struct{}

// InjectSlots parses page, sets <html lang> when lang is not empty, replaces
// the content of every slot element and renders the document back.
// A slot whose id does not exist in the page is an error, so a broken template
// never yields a partially filled page. When an id occurs twice, the first
// element in document order wins.
func (s *SlotInjection) InjectSlots(ctx context.Context, page, lang string, slots []Slot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageParse, err)
	}

	ids := indexByID(doc)

	for _, slot := range slots {
		node, ok := ids[slot.ID]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrSlotNotFound, slot.ID)
		}
		if err := fillSlot(node, slot); err != nil {
			return "", err
		}
	}

	if lang != "" {
		if root := findElement(doc, atom.Html); root != nil {
			setAttr(root, "lang", lang)
		}
	}

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return buf.String(), nil
}

// fillSlot replaces the children of node with the slot content.
func fillSlot(node *html.Node, slot Slot) error {
	for c := node.FirstChild; c != nil; {
		next := c.NextSibling
		node.RemoveChild(c)
		c = next
	}

	if slot.isText {
		if slot.Text != "" {
			node.AppendChild(&html.Node{Type: html.TextNode, Data: slot.Text})
		}
		return nil
	}

	if strings.TrimSpace(slot.Markup) == "" {
		return nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(slot.Markup), node)
	if err != nil {
		return fmt.Errorf("%w: slot %q: %v", ErrFragmentParse, slot.ID, err)
	}
	for _, n := range nodes {
		node.AppendChild(n)
	}
	return nil
}

// indexByID maps id attributes to their first element in document order.
func indexByID(root *html.Node) map[string]*html.Node {
	ids := make(map[string]*html.Node)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id, ok := getAttr(n, "id"); ok && id != "" {
				if _, seen := ids[id]; !seen {
					ids[id] = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return ids
}

// findElement returns the first element with the given atom, depth-first.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// TextContent returns the concatenated text of an HTML fragment.
// Used to derive plain text from rendered markup (e.g. for exports).
func TextContent(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFragmentParse, err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
		case html.ElementNode:
			if n.DataAtom == atom.Br {
				buf.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlockElement(n.DataAtom) {
			buf.WriteByte('\n')
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	return strings.TrimSpace(buf.String()), nil
}

func isBlockElement(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.H1, atom.H2, atom.H3,
		atom.H4, atom.H5, atom.H6, atom.Blockquote, atom.Pre, atom.Table, atom.Tr:
		return true
	}
	return false
}
