package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxAssetNameLength bounds template set names.
const MaxAssetNameLength = 64

// ValidateAssetName checks that an asset name is safe for use as a directory name.
// Returns ErrInvalidAssetName if the name is empty, too long, or contains path
// separators, dots, whitespace or control characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, MaxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
