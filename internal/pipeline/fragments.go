package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// Sentinel errors for template rendering.
var (
	ErrPageRender   = errors.New("page template rendering failed")
	ErrTopicsRender = errors.New("topics template rendering failed")
	ErrFactsRender  = errors.New("facts template rendering failed")
)

// PageData holds the values the page template is executed with.
// Labels are per-language strings for headings and the error message.
type PageData struct {
	Lang   string
	Title  string
	Labels map[string]string
	Error  string // non-empty renders the error state instead of content
}

// TopicItem is one topic entry as the topics template sees it.
type TopicItem struct {
	Number   string
	Title    string
	BodyHTML template.HTML
}

// FactItem is one label/value pair as the facts template sees it.
type FactItem struct {
	Label string
	Value string
}

// FragmentRenderer defines the contract for template-driven fragments.
type FragmentRenderer interface {
	RenderPage(ctx context.Context, data *PageData) (string, error)
	RenderTopics(ctx context.Context, topics []TopicItem) (string, error)
	RenderFacts(ctx context.Context, facts []FactItem, fallbackHTML string) (string, error)
}

// TemplateRendering renders page, topics and facts templates.
type TemplateRendering struct {
	page   *template.Template
	topics *template.Template
	facts  *template.Template
}

// NewTemplateRendering parses the three template sources.
// Returns error if any template cannot be parsed.
func NewTemplateRendering(pageTmpl, topicsTmpl, factsTmpl string) (*TemplateRendering, error) {
	page, err := template.New("page").Parse(pageTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	topics, err := template.New("topics").Parse(topicsTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing topics template: %w", err)
	}
	facts, err := template.New("facts").Parse(factsTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing facts template: %w", err)
	}
	return &TemplateRendering{page: page, topics: topics, facts: facts}, nil
}

// RenderPage executes the page template.
func (r *TemplateRendering) RenderPage(ctx context.Context, data *PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		data = &PageData{}
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// RenderTopics executes the topics template. No topics yields an empty fragment.
func (r *TemplateRendering) RenderTopics(ctx context.Context, topics []TopicItem) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(topics) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.topics.Execute(&buf, topics); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTopicsRender, err)
	}
	return buf.String(), nil
}

// RenderFacts executes the facts template. When no fact was extracted the
// rendered facts block is shown as-is.
func (r *TemplateRendering) RenderFacts(ctx context.Context, facts []FactItem, fallbackHTML string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(facts) == 0 {
		return fallbackHTML, nil
	}

	var buf bytes.Buffer
	if err := r.facts.Execute(&buf, facts); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFactsRender, err)
	}
	return buf.String(), nil
}
