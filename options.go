package cfp

import (
	"log/slog"
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for extraction warnings. Nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMarkers overrides marker phrases for lang. Empty fields of m keep the
// built-in phrase. Overrides for unsupported languages are ignored.
func WithMarkers(lang Lang, m Markers) Option {
	return func(e *Extractor) {
		base, ok := e.markers[lang]
		if !ok {
			return
		}
		e.markers[lang] = base.Merge(m)
	}
}

// WithMarkdown replaces the markdown renderer.
func WithMarkdown(md MarkdownRenderer) Option {
	return func(e *Extractor) {
		if md != nil {
			e.md = md
		}
	}
}
