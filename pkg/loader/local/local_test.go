package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pea.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n豌豆,Comp1,杏仁味\n"), 0o644))

	l := NewFileLoader()
	file, err := l.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "pea.csv", file.Name)

	records, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []flavor.Record{{Ingredient: "豌豆", Compound: "Comp1", Descriptor: "杏仁味"}}, records)
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	l := NewFileLoader()

	_, err := l.Read(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	_, err = l.Read(context.Background(), dir)
	assert.Error(t, err)

	big := filepath.Join(dir, "big.csv")
	require.NoError(t, os.WriteFile(big, []byte("a,b,c\nx,y,z\n"), 0o644))
	l.MaxSize = 4
	_, err = l.Read(context.Background(), big)
	assert.Error(t, err)

	l.MaxSize = 0
	notes := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(notes, []byte("%PDF"), 0o644))
	_, err = l.Load(context.Background(), notes)
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Read(ctx, big)
	assert.ErrorIs(t, err, context.Canceled)
}
