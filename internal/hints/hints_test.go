package hints

// Notes:
// - ForListen tests cannot use t.Parallel(): they modify the package-level
//   IsInContainer variable.

import (
	"strings"
	"testing"
)

func TestForTimeout(t *testing.T) {
	t.Parallel()

	hint := ForTimeout()
	if !strings.Contains(hint, "http.timeout") {
		t.Errorf("ForTimeout() = %q, want http.timeout suggestion", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     []string
		notWant  []string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"cfp.yaml", "cfp.yml", "/home/u/.config/go-cfp/cfp.yaml"},
			want:     []string{"--config", "or create /home/u/.config/go-cfp/cfp.yaml"},
		},
		{
			name:     "only --config without user path",
			searched: []string{"cfp.yaml"},
			want:     []string{"--config"},
			notWant:  []string{"or create"},
		},
		{
			name:     "nil paths",
			searched: nil,
			want:     []string{"--config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.searched)
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("ForConfigNotFound() = %q, want to contain %q", hint, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(hint, nw) {
					t.Errorf("ForConfigNotFound() = %q, should not contain %q", hint, nw)
				}
			}
		})
	}
}

func TestForMissingSource(t *testing.T) {
	t.Parallel()

	hint := ForMissingSource("en")
	for _, want := range []string{"--source", "CFP_SOURCE_EN", "sources.en"} {
		if !strings.Contains(hint, want) {
			t.Errorf("ForMissingSource(en) = %q, want to contain %q", hint, want)
		}
	}
}

func TestForSourceUnavailable(t *testing.T) {
	t.Parallel()

	if hint := ForSourceUnavailable("https://editopia.example/cfp.md"); !strings.Contains(hint, "URL") {
		t.Errorf("ForSourceUnavailable(url) = %q, want URL hint", hint)
	}
	if hint := ForSourceUnavailable("data/cfp.md"); !strings.Contains(hint, "file exists") {
		t.Errorf("ForSourceUnavailable(path) = %q, want file hint", hint)
	}
}

func TestForOutputDirectory(t *testing.T) {
	t.Parallel()

	if hint := ForOutputDirectory(); !strings.Contains(hint, "writable") {
		t.Errorf("ForOutputDirectory() = %q, want writable hint", hint)
	}
}

func TestForTemplateSetNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForTemplateSetNotFound(nil); hint != "" {
		t.Errorf("ForTemplateSetNotFound(nil) = %q, want empty", hint)
	}
	hint := ForTemplateSetNotFound([]string{"default", "print"})
	if !strings.Contains(hint, "available: default, print") {
		t.Errorf("ForTemplateSetNotFound() = %q, want list of sets", hint)
	}
}

func TestForListen_InContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	hint := ForListen("127.0.0.1:8080")
	if !strings.Contains(hint, "0.0.0.0") {
		t.Errorf("ForListen() = %q, want container bind hint", hint)
	}
	if !strings.Contains(hint, "--addr") {
		t.Errorf("ForListen() = %q, want --addr hint", hint)
	}
}

func TestForListen_OutsideContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	hint := ForListen("127.0.0.1:8080")
	if strings.Contains(hint, "container") {
		t.Errorf("ForListen() = %q, should not mention containers", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for _, hint := range []string{
		ForTimeout(),
		ForConfigNotFound(nil),
		ForMissingSource("de"),
		ForSourceUnavailable("x.md"),
		ForOutputDirectory(),
		ForTemplateSetNotFound([]string{"default"}),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("hint %q does not start with standard prefix", hint)
		}
	}
	if format("") != "" {
		t.Error("format(\"\") should be empty")
	}
	if formatHints(nil) != "" {
		t.Error("formatHints(nil) should be empty")
	}
}
