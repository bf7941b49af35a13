package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>CFP</title></head>
<body>
<section><div id="intro-text">loading</div></section>
<blockquote id="quote-text"></blockquote>
<div id="topics-content"><p>placeholder</p></div>
<div id="facts-content"></div>
</body>
</html>`

func TestSlotInjection_InjectSlots(t *testing.T) {
	t.Parallel()

	injector := &SlotInjection{}
	ctx := context.Background()

	tests := []struct {
		name         string
		lang         string
		slots        []Slot
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "html slot replaces children",
			slots:        []Slot{HTMLSlot("intro-text", "<p>Hello <strong>there</strong></p>")},
			wantContains: []string{`<div id="intro-text"><p>Hello <strong>there</strong></p></div>`},
			wantExcludes: []string{"loading"},
		},
		{
			name:         "text slot is escaped",
			slots:        []Slot{TextSlot("quote-text", "Is <b> a book?")},
			wantContains: []string{`<blockquote id="quote-text">Is &lt;b&gt; a book?</blockquote>`},
		},
		{
			name:         "empty html slot clears placeholder",
			slots:        []Slot{HTMLSlot("topics-content", "")},
			wantContains: []string{`<div id="topics-content"></div>`},
			wantExcludes: []string{"placeholder"},
		},
		{
			name:         "lang attribute set",
			lang:         "de",
			wantContains: []string{`<html lang="de">`},
		},
		{
			name: "several slots",
			slots: []Slot{
				HTMLSlot("facts-content", `<ul class="facts-list"><li>x</li></ul>`),
				TextSlot("quote-text", "Why?"),
			},
			wantContains: []string{`<ul class="facts-list"><li>x</li></ul>`, `>Why?</blockquote>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := injector.InjectSlots(ctx, testPage, tt.lang, tt.slots)
			if err != nil {
				t.Fatalf("InjectSlots() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("InjectSlots() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("InjectSlots() should not contain %q", exclude)
				}
			}
		})
	}
}

func TestSlotInjection_InjectSlots_ReplacesExistingLang(t *testing.T) {
	t.Parallel()

	injector := &SlotInjection{}
	page := `<html lang="en"><body><p id="x"></p></body></html>`

	got, err := injector.InjectSlots(context.Background(), page, "de", nil)
	if err != nil {
		t.Fatalf("InjectSlots() error = %v", err)
	}
	if !strings.Contains(got, `<html lang="de">`) {
		t.Errorf("InjectSlots() = %q, want lang=de", got)
	}
}

func TestSlotInjection_InjectSlots_MissingSlot(t *testing.T) {
	t.Parallel()

	injector := &SlotInjection{}
	_, err := injector.InjectSlots(context.Background(), testPage, "", []Slot{TextSlot("nope", "x")})
	if !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("InjectSlots() error = %v, want ErrSlotNotFound", err)
	}
}

func TestSlotInjection_InjectSlots_FirstIDWins(t *testing.T) {
	t.Parallel()

	injector := &SlotInjection{}
	page := `<html><body><p id="dup">a</p><p id="dup">b</p></body></html>`

	got, err := injector.InjectSlots(context.Background(), page, "", []Slot{TextSlot("dup", "filled")})
	if err != nil {
		t.Fatalf("InjectSlots() error = %v", err)
	}
	if !strings.Contains(got, `<p id="dup">filled</p><p id="dup">b</p>`) {
		t.Errorf("InjectSlots() = %q, want first element filled only", got)
	}
}

func TestSlotInjection_InjectSlots_ContextCancellation(t *testing.T) {
	t.Parallel()

	injector := &SlotInjection{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := injector.InjectSlots(ctx, testPage, "en", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("InjectSlots() error = %v, want context.Canceled", err)
	}
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"paragraph", "<p>Hello <strong>world</strong></p>", "Hello world"},
		{"line break", "<p>a<br />b</p>", "a\nb"},
		{"two paragraphs", "<p>one</p><p>two</p>", "one\ntwo"},
		{"entities decoded", "<p>Fish &amp; Chips</p>", "Fish & Chips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := TextContent(tt.input)
			if err != nil {
				t.Fatalf("TextContent() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TextContent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
