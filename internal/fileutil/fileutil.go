// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrEmptyPath              = errors.New("path cannot be empty")
)

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a half-written page or workbook.
func WriteFileAtomic(path string, data []byte) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".cfp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil { // #nosec G302 -- output is meant to be world-readable
		cleanup()
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// ValidateExtension checks that the extension is safe for use in generated file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// EnsureExtension appends .extension to path unless it already ends with it
// (case-insensitive).
func EnsureExtension(path, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	if path == "" {
		return "", ErrEmptyPath
	}
	suffix := "." + extension
	if strings.HasSuffix(strings.ToLower(path), strings.ToLower(suffix)) {
		return path, nil
	}
	return path + suffix, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "cfp" -> false (name)
//   - "./cfp.yaml" -> true (relative path)
//   - "/etc/go-cfp/cfp.yaml" -> true (absolute)
//   - "C:\cfp\cfp.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
