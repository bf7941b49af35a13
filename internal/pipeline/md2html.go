package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(content string) (string, error)
}

// TextFlattener reduces Markdown to plain text.
type TextFlattener interface {
	Flatten(content string) string
	PlainText(content string) string
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
// A GoldmarkConverter is safe for concurrent use.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Source line breaks are kept
			html.WithXHTML(),
			// WithUnsafe() is not used: raw HTML in the source is dropped.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment (no document wrapper).
// Blank input yields an empty fragment.
func (c *GoldmarkConverter) ToHTML(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Flatten parses Markdown and returns its text content with markup removed.
// Strong emphasis spans are wrapped in StrongStartPlaceholder and
// StrongEndPlaceholder. Soft line breaks become spaces and blocks are
// separated by a newline. Escapes and entity references are resolved.
func (c *GoldmarkConverter) Flatten(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	src := []byte(content)
	doc := c.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				buf.Write(resolveText(node.Segment.Value(src)))
				if node.HardLineBreak() {
					buf.WriteByte('\n')
				} else if node.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				buf.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				buf.Write(node.Label(src))
			}
		case *ast.Emphasis:
			if node.Level >= 2 {
				if entering {
					buf.WriteString(StrongStartPlaceholder)
				} else {
					buf.WriteString(StrongEndPlaceholder)
				}
			}
		case *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		default:
			if !entering && n.Type() == ast.TypeBlock && n.Kind() != ast.KindDocument {
				buf.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

// PlainText flattens Markdown and drops the strong emphasis placeholders.
func (c *GoldmarkConverter) PlainText(content string) string {
	return StripStrongPlaceholders(c.Flatten(content))
}

// resolveText applies the same escape and entity handling as the HTML renderer.
func resolveText(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
