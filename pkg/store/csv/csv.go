// Package csv persists flavor records in a delimited text file that opens
// cleanly in common spreadsheet tools: UTF-8 with a byte-order mark and a
// header row.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileStorage stores the full table in a single CSV file. Every Save
// rewrites the whole file.
type FileStorage struct {
	path   string
	header []string
}

// NewFileStorageParams configures a FileStorage.
type NewFileStorageParams struct {
	Path string
	// Header is written as the first row. Defaults to flavor.HeaderZH.
	Header []string
}

// NewFileStorage creates a file backend for the given path.
func NewFileStorage(params NewFileStorageParams) *FileStorage {
	header := params.Header
	if len(header) == 0 {
		header = flavor.Header("")
	}
	return &FileStorage{
		path:   params.Path,
		header: header,
	}
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

// Load reads the backing file. A missing file yields an empty table.
func (f *FileStorage) Load(ctx context.Context) ([]flavor.Record, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []flavor.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	records, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return records, nil
}

// Save replaces the backing file. The table is written to a temporary file in
// the same directory and renamed over the target, so readers never observe a
// partially written file.
func (f *FileStorage) Save(ctx context.Context, records []flavor.Record) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".flavor-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Encode(tmp, f.header, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// Clear deletes the backing file if present.
func (f *FileStorage) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, err)
	}
	return nil
}

// Encode writes header and records as BOM-prefixed UTF-8 CSV.
func Encode(w io.Writer, header []string, records []flavor.Record) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("flush encoder: %w", err)
	}
	return nil
}

// Decode reads CSV written by Encode. The byte-order mark is optional and the
// first row is always treated as the header. Columns are positional.
func Decode(r io.Reader) ([]flavor.Record, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []flavor.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < flavor.Columns {
		return nil, fmt.Errorf("expected %d columns, got %d", flavor.Columns, len(header))
	}

	records := make([]flavor.Record, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := flavor.FromRow(row)
		if rec.IsEmpty() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
