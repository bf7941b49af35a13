package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/alnah/go-cfp/internal/fileutil"
)

// Sentinel errors for loading.
var (
	ErrNotAvailable   = errors.New("document not available")
	ErrEmptyDocument  = errors.New("document is empty")
	ErrHTTPStatus     = errors.New("unexpected HTTP status")
	ErrNoSource       = errors.New("no source configured")
	ErrDocumentTooBig = errors.New("document exceeds maximum size")
)

// MaxDocumentSize bounds the bytes read from any source (default 4MB).
var MaxDocumentSize int64 = 4 << 20

// Document is a loaded markdown source.
type Document struct {
	Markdown string
	Source   string
	// BaseURL is the location relative links resolve against.
	// Nil for filesystem sources.
	BaseURL *url.URL
}

// Fetcher retrieves one source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*Document, error)
}

// Loader supplies the document for a language.
type Loader interface {
	Load(ctx context.Context, lang string) (*Document, error)
}

// Compile-time interface checks.
var (
	_ Loader  = (*SourceLoader)(nil)
	_ Fetcher = (*FileFetcher)(nil)
	_ Fetcher = (*HTTPFetcher)(nil)
)

// SourceLoader maps languages to sources and dispatches each source to the
// file or HTTP fetcher.
type SourceLoader struct {
	sources map[string]string
	file    Fetcher
	http    Fetcher
	logger  *slog.Logger
}

// Option configures a SourceLoader.
type Option func(*SourceLoader)

// WithHTTPFetcher replaces the fetcher used for http(s) sources.
func WithHTTPFetcher(f Fetcher) Option {
	return func(l *SourceLoader) {
		l.http = f
	}
}

// WithFileFetcher replaces the fetcher used for filesystem sources.
func WithFileFetcher(f Fetcher) Option {
	return func(l *SourceLoader) {
		l.file = f
	}
}

// WithLogger sets the logger for load events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *SourceLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a SourceLoader for the given lang → source mapping.
// Blank sources are ignored.
func New(sources map[string]string, opts ...Option) *SourceLoader {
	l := &SourceLoader{
		sources: make(map[string]string, len(sources)),
		file:    &FileFetcher{},
		http:    NewHTTPFetcher(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for lang, src := range sources {
		if strings.TrimSpace(src) != "" {
			l.sources[lang] = strings.TrimSpace(src)
		}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the source configured for lang.
func (l *SourceLoader) Source(lang string) (string, bool) {
	src, ok := l.sources[lang]
	return src, ok
}

// Load fetches the document for lang.
func (l *SourceLoader) Load(ctx context.Context, lang string) (*Document, error) {
	src, ok := l.sources[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, lang)
	}

	fetcher := l.file
	if fileutil.IsURL(src) {
		fetcher = l.http
	}

	doc, err := fetcher.Fetch(ctx, src)
	if err != nil {
		l.logger.Warn("load failed", "lang", lang, "source", src, "error", err)
		return nil, err
	}

	l.logger.Debug("document loaded", "lang", lang, "source", src, "bytes", len(doc.Markdown))
	return doc, nil
}

// checkPayload rejects blank documents.
func checkPayload(source string, data []byte) error {
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}
	return nil
}
