package assets

// AssetLoader defines the contract for loading page template sets.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadTemplateSet loads a template set by name.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if some of its files are missing.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
