package pipeline

// Notes:
// - Tests RewriteRelativeLinks through its public API only
// - Error branches in parseFragment/renderFragment are not covered: the html
//   package does not fail on string input

import (
	"net/url"
	"strings"
	"testing"
)

func TestRewriteRelativeLinks(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://editopia.example/cfp/call-for-papers.md")
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}

	tests := []struct {
		name         string
		html         string
		base         *url.URL
		wantContains []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<img src="./images/logo.png">`,
			base:         base,
			wantContains: []string{`src="https://editopia.example/cfp/images/logo.png"`},
		},
		{
			name:         "relative link without dot slash",
			html:         `<a href="programme.pdf">Programme</a>`,
			base:         base,
			wantContains: []string{`href="https://editopia.example/cfp/programme.pdf"`},
		},
		{
			name:         "parent directory reference",
			html:         `<a href="../imprint.html">Imprint</a>`,
			base:         base,
			wantContains: []string{`href="https://editopia.example/imprint.html"`},
		},
		{
			name:         "root-relative path resolved against host",
			html:         `<img src="/static/logo.png">`,
			base:         base,
			wantContains: []string{`src="https://editopia.example/static/logo.png"`},
		},
		{
			name:         "absolute URL unchanged",
			html:         `<a href="https://example.com/x">External</a>`,
			base:         base,
			wantContains: []string{`href="https://example.com/x"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:cfp@editopia.example">Mail</a>`,
			base:         base,
			wantContains: []string{`href="mailto:cfp@editopia.example"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#facts">Facts</a>`,
			base:         base,
			wantContains: []string{`href="#facts"`},
		},
		{
			name:         "protocol-relative unchanged",
			html:         `<img src="//cdn.example.com/logo.png">`,
			base:         base,
			wantContains: []string{`src="//cdn.example.com/logo.png"`},
		},
		{
			name:         "nil base returns unchanged",
			html:         `<img src="./logo.png">`,
			base:         nil,
			wantContains: []string{`src="./logo.png"`},
		},
		{
			name:         "nested elements rewritten",
			html:         `<p>See <a href="a.pdf">A</a> and <em><a href="b.pdf">B</a></em></p>`,
			base:         base,
			wantContains: []string{`https://editopia.example/cfp/a.pdf`, `https://editopia.example/cfp/b.pdf`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativeLinks(tt.html, tt.base)
			if err != nil {
				t.Fatalf("RewriteRelativeLinks() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativeLinks() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestRewriteRelativeLinks_EmptyFragment(t *testing.T) {
	t.Parallel()

	base, _ := url.Parse("https://editopia.example/")
	got, err := RewriteRelativeLinks("  ", base)
	if err != nil {
		t.Fatalf("RewriteRelativeLinks() error = %v", err)
	}
	if got != "  " {
		t.Errorf("RewriteRelativeLinks() = %q, want input unchanged", got)
	}
}
