// Package loader turns external tabular files into flavor records.
//
// Spreadsheet imports are positional: whatever the original headers say, the
// first three columns are read as ingredient, compound and descriptor.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/loader/csv"
	"github.com/OFFIS-RIT/flavor/backend/pkg/loader/excel"
)

var (
	// ErrInvalidShape is returned when the source has fewer than three columns.
	ErrInvalidShape = errors.New("invalid table shape: at least 3 columns are required")
	// ErrUnsupportedFormat is returned for file types without a RowReader.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyFile is returned when the source has no rows at all.
	ErrEmptyFile = errors.New("file is empty")
)

// ImportFile is an uploaded or local file to import.
type ImportFile struct {
	Name    string
	Content []byte
}

// RowReader reads the raw cell grid of a tabular file.
type RowReader interface {
	ReadRows(ctx context.Context, content []byte) ([][]string, error)
}

// ReaderFor picks the RowReader for a file name by extension.
func ReaderFor(name string) (RowReader, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "xlsx":
		return excel.NewRowReader(), nil
	case "csv", "txt":
		return csv.NewRowReader(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Load reads the file and converts it to records. Nothing is returned on
// error; an import is either accepted as a whole or rejected.
func Load(ctx context.Context, file ImportFile) ([]flavor.Record, error) {
	reader, err := ReaderFor(file.Name)
	if err != nil {
		return nil, err
	}
	rows, err := reader.ReadRows(ctx, file.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	return ToRecords(rows)
}

// ToRecords normalizes a cell grid. The first row is the header and is
// skipped. Only the first three cells of each row are kept, empty rows and
// rows without an ingredient are dropped.
func ToRecords(rows [][]string) ([]flavor.Record, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	if width := len(rows[0]); width < flavor.Columns {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidShape, width)
	}

	records := make([]flavor.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := flavor.FromRow(row)
		if !rec.Valid() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
