package main

import (
	"errors"
	"os"

	"github.com/alnah/go-cfp"
	"github.com/alnah/go-cfp/internal/assets"
	"github.com/alnah/go-cfp/internal/config"
	"github.com/alnah/go-cfp/internal/fileutil"
	"github.com/alnah/go-cfp/internal/loader"
)

// Exit codes for the cfp CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Content could not be loaded, or output could not be written
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2). Checked first: a missing
	// source is reported as unavailable content by the service.
	if errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrSourceNeedsLang) ||
		errors.Is(err, loader.ErrNoSource) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, cfp.ErrUnsupportedLanguage) ||
		errors.Is(err, assets.ErrTemplateSetNotFound) ||
		errors.Is(err, assets.ErrIncompleteTemplateSet) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, fileutil.ErrEmptyPath) {
		return ExitUsage
	}

	// I/O and content errors (exit 3)
	if errors.Is(err, cfp.ErrContentUnavailable) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrListen) {
		return ExitIO
	}

	return ExitGeneral
}
