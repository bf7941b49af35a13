package cfp

import "errors"

// Sentinel errors for library operations.
var (
	// ErrContentUnavailable marks a document that could not be loaded.
	// The page is never partially filled when this is returned.
	ErrContentUnavailable = errors.New("content could not be loaded")

	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNilLoader           = errors.New("loader cannot be nil")
	ErrPageRender          = errors.New("page rendering failed")
)
