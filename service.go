package cfp

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/alnah/go-cfp/internal/assets"
	"github.com/alnah/go-cfp/internal/loader"
	"github.com/alnah/go-cfp/internal/pipeline"
)

// Page slot ids filled by the service.
const (
	SlotIntro  = "intro-text"
	SlotQuote  = "quote-text"
	SlotTopics = "topics-content"
	SlotFacts  = "facts-content"
)

// pageText holds the per-language strings of the page template.
type pageText struct {
	title  string
	topics string
	facts  string
	err    string
}

var pageTexts = map[Lang]pageText{
	LangDE: {
		title:  "Call for Papers",
		topics: "Themenfelder",
		facts:  "Eckdaten",
		err:    "Die Inhalte konnten nicht geladen werden.",
	},
	LangEN: {
		title:  "Call for Papers",
		topics: "Topics",
		facts:  "Key facts",
		err:    "The content could not be loaded.",
	},
}

// Result is a rendered page for one language.
type Result struct {
	Lang     Lang
	Document *Document // nil when the content could not be loaded
	HTML     string
}

// Service loads documents, extracts them and renders pages.
// A Service is safe for concurrent use.
type Service struct {
	loader      loader.Loader
	extractor   *Extractor
	assets      assets.AssetLoader
	templateSet string
	renderer    pipeline.FragmentRenderer
	injector    pipeline.SlotInjector
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithExtractor sets the extractor. Defaults to NewExtractor().
func WithExtractor(e *Extractor) ServiceOption {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithAssetLoader sets the template source. Defaults to the embedded templates.
func WithAssetLoader(l assets.AssetLoader) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.assets = l
		}
	}
}

// WithTemplateSet selects the template set by name. Defaults to "default".
func WithTemplateSet(name string) ServiceOption {
	return func(s *Service) {
		if name != "" {
			s.templateSet = name
		}
	}
}

// WithServiceLogger sets the logger for load and render events.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service reading documents from l.
// Returns error if the template set cannot be loaded or parsed.
func NewService(l loader.Loader, opts ...ServiceOption) (*Service, error) {
	if l == nil {
		return nil, ErrNilLoader
	}

	s := &Service{
		loader:      l,
		assets:      assets.NewEmbeddedLoader(),
		templateSet: assets.DefaultTemplateSetName,
		injector:    &pipeline.SlotInjection{},
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.extractor == nil {
		s.extractor = NewExtractor(WithLogger(s.logger))
	}

	ts, err := s.assets.LoadTemplateSet(s.templateSet)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", s.templateSet, err)
	}
	s.renderer, err = pipeline.NewTemplateRendering(ts.Page, ts.Topics, ts.Facts)
	if err != nil {
		return nil, fmt.Errorf("template set %q: %w", s.templateSet, err)
	}

	return s, nil
}

// Extractor returns the extractor used by the service.
func (s *Service) Extractor() *Extractor {
	return s.extractor
}

// Load fetches and extracts the document for lang.
// Any loader failure is returned wrapped in ErrContentUnavailable.
func (s *Service) Load(ctx context.Context, lang Lang) (*Document, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	raw, err := s.loader.Load(ctx, string(lang))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentUnavailable, err)
	}

	sections := s.extractor.Extract(raw.Markdown, lang)
	if raw.BaseURL != nil {
		sections = rewriteSections(sections, raw.BaseURL, s.logger)
	}

	return &Document{
		Lang:     lang,
		Source:   raw.Source,
		Sections: sections,
		Facts:    s.extractor.ExtractFacts(sections.FactsSource, lang),
	}, nil
}

// Render loads lang and renders its page. When the content cannot be loaded,
// the returned Result carries the error page and err wraps
// ErrContentUnavailable.
func (s *Service) Render(ctx context.Context, lang Lang) (*Result, error) {
	doc, err := s.Load(ctx, lang)
	if err != nil {
		if !errors.Is(err, ErrContentUnavailable) {
			return nil, err
		}
		s.logger.Error("content unavailable", "lang", string(lang), "error", err)

		page, pageErr := s.ErrorPage(ctx, lang)
		if pageErr != nil {
			return nil, errors.Join(err, pageErr)
		}
		return &Result{Lang: lang, HTML: page}, err
	}

	page, err := s.RenderDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &Result{Lang: lang, Document: doc, HTML: page}, nil
}

// RenderDocument fills the page template with an extracted document.
// Either every slot is filled or an error is returned.
func (s *Service) RenderDocument(ctx context.Context, doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: nil document", ErrPageRender)
	}
	text, ok := pageTexts[doc.Lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, doc.Lang)
	}

	page, err := s.renderer.RenderPage(ctx, &pipeline.PageData{
		Lang:   string(doc.Lang),
		Title:  text.title,
		Labels: map[string]string{"topics": text.topics, "facts": text.facts},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPageRender, err)
	}

	topicsHTML, err := s.renderer.RenderTopics(ctx, toTopicItems(doc.Sections.Topics))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPageRender, err)
	}

	fallback, err := s.extractor.md.ToHTML(doc.Sections.FactsSource)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPageRender, err)
	}
	factsHTML, err := s.renderer.RenderFacts(ctx, toFactItems(doc.Facts), fallback)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPageRender, err)
	}

	out, err := s.injector.InjectSlots(ctx, page, string(doc.Lang), []pipeline.Slot{
		pipeline.HTMLSlot(SlotIntro, doc.Sections.IntroHTML),
		pipeline.TextSlot(SlotQuote, doc.Sections.Quote),
		pipeline.HTMLSlot(SlotTopics, topicsHTML),
		pipeline.HTMLSlot(SlotFacts, factsHTML),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPageRender, err)
	}

	s.logger.Debug("page rendered", "lang", string(doc.Lang), "topics", len(doc.Sections.Topics), "facts", len(doc.Facts))
	return out, nil
}

// ErrorPage renders the page shown when the content cannot be loaded.
// It carries one generic message and no content slots.
func (s *Service) ErrorPage(ctx context.Context, lang Lang) (string, error) {
	text, ok := pageTexts[lang]
	if !ok {
		text = pageTexts[LangEN]
	}

	page, err := s.renderer.RenderPage(ctx, &pipeline.PageData{
		Lang:  string(lang),
		Title: text.title,
		Error: text.err,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPageRender, err)
	}
	return page, nil
}

// ErrorMessage returns the generic load failure message for lang.
func ErrorMessage(lang Lang) string {
	if text, ok := pageTexts[lang]; ok {
		return text.err
	}
	return pageTexts[LangEN].err
}

// rewriteSections resolves relative links in the rendered fragments against
// the document location. A fragment that fails to rewrite is kept as is.
func rewriteSections(sections SectionSet, base *url.URL, logger *slog.Logger) SectionSet {
	rewrite := func(fragment string) string {
		out, err := pipeline.RewriteRelativeLinks(fragment, base)
		if err != nil {
			logger.Warn("link rewrite failed", "error", err)
			return fragment
		}
		return out
	}

	sections.IntroHTML = rewrite(sections.IntroHTML)
	if len(sections.Topics) > 0 {
		topics := make([]Topic, len(sections.Topics))
		for i, t := range sections.Topics {
			t.BodyHTML = rewrite(t.BodyHTML)
			topics[i] = t
		}
		sections.Topics = topics
	}
	return sections
}

func toTopicItems(topics []Topic) []pipeline.TopicItem {
	items := make([]pipeline.TopicItem, len(topics))
	for i, t := range topics {
		items[i] = pipeline.TopicItem{
			Number: t.Number,
			Title:  t.Title,
			// BodyHTML is goldmark output without raw HTML passthrough
			BodyHTML: template.HTML(t.BodyHTML), // #nosec G203
		}
	}
	return items
}

func toFactItems(facts []FactEntry) []pipeline.FactItem {
	items := make([]pipeline.FactItem, len(facts))
	for i, f := range facts {
		items[i] = pipeline.FactItem{Label: f.Label, Value: f.Value}
	}
	return items
}
