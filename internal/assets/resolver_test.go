package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	t.Run("custom set takes precedence", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		files := completeSet()
		files["page.html"] = `<html><body>custom page</body></html>`
		writeTemplateSet(t, tmpDir, DefaultTemplateSetName, files)

		resolver, err := NewAssetResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		ts, err := resolver.LoadTemplateSet(DefaultTemplateSetName)
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.Page != files["page.html"] {
			t.Errorf("Page = %q, want custom page", ts.Page)
		}
	})

	t.Run("falls back to embedded when not found", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		ts, err := resolver.LoadTemplateSet(DefaultTemplateSetName)
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.Page == "" {
			t.Error("expected embedded page template")
		}
	})

	t.Run("incomplete custom set does not fall back", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		files := completeSet()
		delete(files, "topics.html")
		writeTemplateSet(t, tmpDir, DefaultTemplateSetName, files)

		resolver, err := NewAssetResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		_, err = resolver.LoadTemplateSet(DefaultTemplateSetName)
		if !errors.Is(err, ErrIncompleteTemplateSet) {
			t.Errorf("LoadTemplateSet() error = %v, want ErrIncompleteTemplateSet", err)
		}
	})

	t.Run("embedded only returns not found", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		_, err = resolver.LoadTemplateSet("missing-set")
		if !errors.Is(err, ErrTemplateSetNotFound) {
			t.Errorf("LoadTemplateSet() error = %v, want ErrTemplateSetNotFound", err)
		}
	})
}
