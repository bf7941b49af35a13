package loader

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileFetcher reads sources from the local filesystem.
type FileFetcher struct{}

// Fetch reads the file at path.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path) // #nosec G304 -- source path is configured by the operator
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}
	defer func() { _ = file.Close() }()

	data, err := readLimited(file, path)
	if err != nil {
		return nil, err
	}
	if err := checkPayload(path, data); err != nil {
		return nil, err
	}

	return &Document{Markdown: string(data), Source: path}, nil
}

// readLimited reads at most MaxDocumentSize bytes and fails on larger input.
func readLimited(r io.Reader, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrNotAvailable, source, err)
	}
	if int64(len(data)) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %s (max %d bytes)", ErrDocumentTooBig, source, MaxDocumentSize)
	}
	return data, nil
}
