// Package local reads import files from the local filesystem.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// DefaultMaxSize caps local imports. The dataset is expected to stay in the
// low thousands of rows.
const DefaultMaxSize = 32 << 20

// FileLoader reads spreadsheets from disk. Concurrent reads of the same path
// share one read.
type FileLoader struct {
	MaxSize int64
	group   singleflight.Group
}

// NewFileLoader creates a loader with DefaultMaxSize.
func NewFileLoader() *FileLoader {
	return &FileLoader{MaxSize: DefaultMaxSize}
}

// Read returns the file as an ImportFile named after its base name.
func (l *FileLoader) Read(ctx context.Context, path string) (loader.ImportFile, error) {
	if err := ctx.Err(); err != nil {
		return loader.ImportFile{}, err
	}

	result, err, _ := l.group.Do(path, func() (any, error) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}
		if l.MaxSize > 0 && info.Size() > l.MaxSize {
			return nil, fmt.Errorf("%s is larger than %d bytes", path, l.MaxSize)
		}
		return os.ReadFile(path)
	})
	if err != nil {
		return loader.ImportFile{}, fmt.Errorf("failed to read import file: %w", err)
	}

	return loader.ImportFile{
		Name:    filepath.Base(path),
		Content: result.([]byte),
	}, nil
}

// Load reads the file and converts it to records.
func (l *FileLoader) Load(ctx context.Context, path string) ([]flavor.Record, error) {
	file, err := l.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, file)
}
