package cfp

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-cfp/internal/pipeline"
)

// MarkdownRenderer renders markdown fragments to HTML and reduces them to
// plain text, bracketing strong emphasis with pipeline placeholders.
type MarkdownRenderer interface {
	pipeline.HTMLConverter
	pipeline.TextFlattener
}

// Compile-time interface check.
var _ MarkdownRenderer = (*pipeline.GoldmarkConverter)(nil)

// Extractor splits call-for-papers markdown into sections.
// An Extractor is immutable after construction and safe for concurrent use.
type Extractor struct {
	markers map[Lang]Markers
	logger  *slog.Logger
	md      MarkdownRenderer
}

// NewExtractor creates an Extractor with the built-in marker tables.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		markers: make(map[Lang]Markers, len(defaultMarkers)),
		logger:  slog.New(slog.DiscardHandler),
		md:      pipeline.NewGoldmarkConverter(),
	}
	for lang, m := range defaultMarkers {
		e.markers[lang] = m
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Markers returns the marker table used for lang.
func (e *Extractor) Markers(lang Lang) (Markers, bool) {
	m, ok := e.markers[lang]
	return m, ok
}

// Extract splits markdown into its sections. It never fails: a missing
// marker leaves its field empty and an unsupported language yields an empty
// SectionSet.
func (e *Extractor) Extract(markdown string, lang Lang) SectionSet {
	m, ok := e.markers[lang]
	if !ok {
		e.logger.Warn("unsupported language, nothing extracted", "lang", string(lang))
		return SectionSet{}
	}

	doc := pipeline.Preprocess(markdown)

	sections := SectionSet{
		IntroHTML:   e.render(introSpan(doc, m), "intro"),
		Quote:       e.quote(doc, m),
		Topics:      e.topics(doc, m),
		FactsSource: factsSpan(doc, m),
	}

	if len(sections.Topics) == 0 {
		e.logger.Warn("no topics found", "lang", string(lang))
	}

	return sections
}

// render converts a markdown span to HTML. Conversion failures are logged
// and yield an empty fragment so extraction stays total.
func (e *Extractor) render(span, section string) string {
	if span == "" {
		return ""
	}
	out, err := e.md.ToHTML(span)
	if err != nil {
		e.logger.Warn("rendering failed", "section", section, "error", err)
		return ""
	}
	return out
}

// introSpan returns the markdown between the intro line and the quote
// marker. Without a quote marker the intro runs up to the topics marker, or
// the facts marker when there are no topics.
func introSpan(doc string, m Markers) string {
	at := strings.Index(doc, m.Intro)
	if at < 0 {
		return ""
	}

	start := introStart(doc, at, m.Intro)
	for _, stop := range []string{m.Quote, m.Topics, m.Facts} {
		if stop == "" {
			continue
		}
		if end := strings.Index(doc[start:], stop); end >= 0 {
			return strings.TrimSpace(doc[start : start+end])
		}
	}
	return ""
}

// introStart returns the offset right after the intro line. When the marker
// opens an emphasis run, that is after the closing delimiter, or the end of
// the line when the run is never closed. Otherwise it is the end of the
// marker's paragraph.
func introStart(doc string, at int, marker string) int {
	delim := emphasisRun(doc, at, marker)
	afterMarker := at + len(marker)

	if delim == "" {
		return paragraphEnd(doc, afterMarker)
	}

	para := doc[afterMarker:paragraphEnd(doc, afterMarker)]
	if i := strings.Index(para, delim); i >= 0 {
		return afterMarker + i + len(delim)
	}
	return lineEnd(doc, afterMarker)
}

// emphasisRun returns the emphasis delimiter opening at the marker: the
// marker's own leading '*' or '_' characters plus identical ones directly
// before it in the document.
func emphasisRun(doc string, at int, marker string) string {
	if marker == "" || (marker[0] != '*' && marker[0] != '_') {
		return ""
	}
	c := marker[0]

	n := 0
	for n < len(marker) && marker[n] == c {
		n++
	}
	for i := at - 1; i >= 0 && doc[i] == c; i-- {
		n++
	}
	return strings.Repeat(string(c), n)
}

// quote returns the question of the quote paragraph: the text after its
// first colon up to and including the next '?', as plain text.
func (e *Extractor) quote(doc string, m Markers) string {
	at := strings.Index(doc, m.Quote)
	if at < 0 {
		return ""
	}

	para := doc[at:paragraphEnd(doc, at)]
	colon := strings.IndexByte(para, ':')
	if colon < 0 {
		return ""
	}
	rest := para[colon+1:]
	qmark := strings.IndexByte(rest, '?')
	if qmark < 0 {
		return ""
	}

	raw := strings.TrimLeft(rest[:qmark+1], " *_")
	return strings.TrimSpace(e.md.PlainText(raw))
}

// titleRun is one topic title found in the topics block.
type titleRun struct {
	title      string // markdown, trailing period removed
	start, end int    // offsets of the opening and past the closing delimiter
}

// topics splits the topics block into numbered entries.
func (e *Extractor) topics(doc string, m Markers) []Topic {
	block := topicsBlock(doc, m)
	if block == "" {
		return nil
	}

	runs := titleRuns(block)
	if len(runs) == 0 {
		return nil
	}

	topics := make([]Topic, 0, len(runs))
	for i, run := range runs {
		bodyEnd := len(block)
		if i+1 < len(runs) {
			bodyEnd = runs[i+1].start
		}
		body := strings.TrimSpace(block[run.end:bodyEnd])

		topics = append(topics, Topic{
			Number:   fmt.Sprintf("%02d", i+1),
			Title:    e.titleText(run.title),
			BodyHTML: e.render(body, "topic"),
		})
	}
	return topics
}

// topicsBlock returns the text after the topics marker up to the first
// topics-end or facts marker, whichever comes first.
func topicsBlock(doc string, m Markers) string {
	at := strings.Index(doc, m.Topics)
	if at < 0 {
		return ""
	}
	block := doc[at+len(m.Topics):]

	end := len(block)
	for _, stop := range []string{m.TopicsEnd, m.Facts} {
		if stop == "" {
			continue
		}
		if i := strings.Index(block, stop); i >= 0 && i < end {
			end = i
		}
	}
	return block[:end]
}

// titleText reduces a markdown title to plain text. The title is parsed as
// one strong run so leading list or heading syntax stays literal.
func (e *Extractor) titleText(title string) string {
	if text := strings.TrimSpace(e.md.PlainText("**" + title + "**")); text != "" {
		return text
	}
	return pipeline.Unescape(title)
}

// titleRuns scans block left to right for strong runs delimited by "**" or
// "__". A run is a title when its unescaped, trimmed content ends with a
// period; other runs are body text. A run never spans a blank line.
func titleRuns(block string) []titleRun {
	var runs []titleRun

	pos := 0
	for pos < len(block) {
		open, delim := nextStrongDelim(block, pos)
		if open < 0 {
			break
		}

		closing := strings.Index(block[open+2:], delim)
		if closing < 0 {
			pos = open + 2
			continue
		}
		closing += open + 2

		content := block[open+2 : closing]
		if strings.Contains(content, "\n\n") {
			// Unbalanced opener: resume at the next paragraph
			pos = open + 2
			continue
		}

		content = strings.TrimSpace(content)
		if strings.HasSuffix(pipeline.Unescape(content), ".") {
			if title := trimTitlePeriod(content); title != "" {
				runs = append(runs, titleRun{title: title, start: open, end: closing + 2})
			}
		}
		pos = closing + 2
	}

	return runs
}

// nextStrongDelim returns the offset and delimiter of the first "**" or "__"
// at or after pos, or -1.
func nextStrongDelim(block string, pos int) (int, string) {
	at, delim := -1, ""
	for _, d := range []string{"**", "__"} {
		if i := strings.Index(block[pos:], d); i >= 0 && (at < 0 || pos+i < at) {
			at, delim = pos+i, d
		}
	}
	return at, delim
}

// trimTitlePeriod removes the closing period of a title, and the backslash
// escaping it when there is one.
func trimTitlePeriod(content string) string {
	title := strings.TrimSuffix(content, ".")

	n := 0
	for n < len(title) && title[len(title)-1-n] == '\\' {
		n++
	}
	if n%2 == 1 {
		title = title[:len(title)-1]
	}
	return strings.TrimSpace(title)
}

// factsSpan returns the facts block, from the facts marker up to but
// excluding the closing marker.
func factsSpan(doc string, m Markers) string {
	at := strings.Index(doc, m.Facts)
	if at < 0 {
		return ""
	}
	block := doc[at:]

	if m.Closing != "" {
		if end := strings.Index(block[len(m.Facts):], m.Closing); end >= 0 {
			block = block[:len(m.Facts)+end]
		}
	}
	return strings.TrimSpace(block)
}

// paragraphEnd returns the offset of the blank line ending the paragraph
// that contains from, or len(doc).
func paragraphEnd(doc string, from int) int {
	if i := strings.Index(doc[from:], "\n\n"); i >= 0 {
		return from + i
	}
	return len(doc)
}

// lineEnd returns the offset of the newline ending the line that contains
// from, or len(doc).
func lineEnd(doc string, from int) int {
	if i := strings.IndexByte(doc[from:], '\n'); i >= 0 {
		return from + i
	}
	return len(doc)
}
