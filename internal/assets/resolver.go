package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the template set is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// If customBasePath is set, custom assets take precedence with fallback to embedded.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTemplateSet loads a template set, trying the custom loader first if available.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	// If no custom loader, use embedded directly
	if r.custom == nil {
		return r.embedded.LoadTemplateSet(name)
	}

	ts, err := r.custom.LoadTemplateSet(name)
	if err == nil {
		return ts, nil
	}

	// Only fall back for "not found" errors, not validation, incomplete sets or I/O errors
	if !errors.Is(err, ErrTemplateSetNotFound) {
		return nil, err
	}

	return r.embedded.LoadTemplateSet(name)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
