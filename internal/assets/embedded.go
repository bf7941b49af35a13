package assets

import (
	"embed"
	"errors"
	"io/fs"
)

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads template sets from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplateSet loads a template set from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return readTemplateSet(templates, "templates/"+name, name)
}

// TemplateSetNames lists the embedded template sets, sorted by name.
func (e *EmbeddedLoader) TemplateSetNames() []string {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
