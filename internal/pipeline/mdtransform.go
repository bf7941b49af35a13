package pipeline

import (
	"regexp"
	"strings"
)

// Strong emphasis placeholders use Unicode Private Use Area characters.
// Flatten brackets every **strong** span with them so fact patterns can
// anchor on emphasis boundaries in otherwise plain text.
const (
	StrongStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	StrongEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress runs of blank lines to a single blank line
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Backslash escape of an ASCII punctuation character
	escapedPunctuation = regexp.MustCompile("\\\\([!-/:-@\\[-`{-~])")
)

// Preprocess normalizes markdown before section scanning.
// Paragraph boundaries become exactly "\n\n" so scanners can rely on them.
func Preprocess(content string) string {
	content = normalizeLineEndings(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// Unescape removes markdown backslash escapes (e.g. "15\. März" -> "15. März").
// Used for plain-text values that never go through Goldmark rendering.
func Unescape(content string) string {
	if !strings.Contains(content, `\`) {
		return content
	}
	return escapedPunctuation.ReplaceAllString(content, "$1")
}

// StripStrongPlaceholders removes the placeholders inserted by Flatten.
func StripStrongPlaceholders(content string) string {
	return strings.NewReplacer(StrongStartPlaceholder, "", StrongEndPlaceholder, "").Replace(content)
}
