package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	storecsv "github.com/OFFIS-RIT/flavor/backend/pkg/store/csv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(i, c, d string) flavor.Record {
	return flavor.Record{Ingredient: i, Compound: c, Descriptor: d}
}

func newLoaded(t *testing.T, records ...flavor.Record) (*Store, *MemoryStorage) {
	t.Helper()
	backend := NewMemoryStorage(records...)
	s := New(backend)
	require.NoError(t, s.Load(context.Background()))
	return s, backend
}

func TestLoadFailureResetsToEmpty(t *testing.T) {
	backend := NewMemoryStorage(rec("a", "C1", "d1"))
	s := New(backend)
	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, 1, s.Len())

	backend.LoadErr = errors.New("corrupt")
	err := s.Load(context.Background())

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 0, s.Len())
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, backend := newLoaded(t)
	file := []flavor.Record{rec("a", "C1", "d1"), rec("a", "C2", "d2"), rec("a", "C1", "d1")}

	res, err := s.Import(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Accepted: 3, Added: 2, Total: 2}, res)
	once := s.Records()

	res, err = s.Import(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, once, s.Records())
	assert.Equal(t, once, backend.Saved())
}

func TestImportMergesInsteadOfReplacing(t *testing.T) {
	ctx := context.Background()
	s, _ := newLoaded(t)
	a := []flavor.Record{rec("a", "C1", "d1"), rec("b", "C2", "d2")}
	b := []flavor.Record{rec("b", "C2", "d2"), rec("c", "C3", "d3")}

	_, err := s.Import(ctx, a)
	require.NoError(t, err)
	_, err = s.Import(ctx, b)
	require.NoError(t, err)

	got := s.Records()
	for _, r := range a {
		assert.Contains(t, got, r)
	}
	assert.Len(t, got, 3)
}

func TestImportDropsEmptyIngredients(t *testing.T) {
	s, _ := newLoaded(t)
	res, err := s.Import(context.Background(), []flavor.Record{rec("", "C1", "d1"), rec("a", "C1", "d1")})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	for _, r := range s.Records() {
		assert.NotEmpty(t, r.Ingredient)
	}
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	s, backend := newLoaded(t)
	backend.SaveErr = errors.New("disk full")

	res, err := s.Import(context.Background(), []flavor.Record{rec("a", "C1", "d1")})

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, []flavor.Record{rec("a", "C1", "d1")}, s.Records())
	assert.Empty(t, backend.Saved())

	backend.SaveErr = nil
	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, s.Records(), backend.Saved())
}

func TestSmartAdd(t *testing.T) {
	ctx := context.Background()
	s, backend := newLoaded(t, rec("x", "C1", "d1"), rec("x", "C1", "d2"), rec("y", "C2", "d1"))

	res, err := s.SmartAdd(ctx, "z", "", "d2")
	require.NoError(t, err)
	assert.True(t, res.Inferred)
	assert.Equal(t, 2, res.Added)
	assert.Contains(t, s.Records(), rec("z", "C1", "d1"))
	assert.Contains(t, s.Records(), rec("z", "C1", "d2"))
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, s.Records(), backend.Saved())

	res, err = s.SmartAdd(ctx, "z", "", "d2")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)
}

func TestSmartAddRejectsWithoutMutation(t *testing.T) {
	ctx := context.Background()
	s, backend := newLoaded(t, rec("x", "C1", "d1"))
	before := backend.Saves()

	_, err := s.SmartAdd(ctx, "z", "", "unknown")
	require.ErrorIs(t, err, flavor.ErrCannotInfer)

	_, err = s.SmartAdd(ctx, "z", "", "")
	require.ErrorIs(t, err, flavor.ErrMissingFields)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, before, backend.Saves())
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s, _ := newLoaded(t)

	n, err := s.Seed(ctx, flavor.DemoRecords())
	require.NoError(t, err)
	assert.Equal(t, len(flavor.DemoRecords()), n)

	_, err = s.Seed(ctx, flavor.DemoRecords())
	require.ErrorIs(t, err, ErrNotEmpty)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, backend := newLoaded(t, rec("x", "C1", "d1"))

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, backend.Saved())
}

func TestSnapshotIsIndependent(t *testing.T) {
	s, _ := newLoaded(t, rec("x", "C1", "d1"))
	snap := s.Snapshot()
	snap.Add(rec("y", "C2", "d2"))
	assert.Equal(t, 1, s.Len())
}

func TestExportRoundTrip(t *testing.T) {
	s, _ := newLoaded(t, rec("豌豆", "Comp1", "杏仁味"), rec("pea", "hexanal", "green, grassy"))

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf, flavor.Header("en")))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\xef\xbb\xbfingredient,compound,descriptor\n")))

	got, err := storecsv.Decode(&buf)
	require.NoError(t, err)
	assert.ElementsMatch(t, s.Records(), got)
}

func TestSmartAddSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flavor.csv")
	file := storecsv.NewFileStorage(storecsv.NewFileStorageParams{Path: path, Header: flavor.Header("zh")})

	s := New(file)
	require.NoError(t, s.Load(ctx))
	_, err := s.SmartAdd(ctx, "tomato", "C1", "fruity")
	require.NoError(t, err)
	_, err = s.SmartAdd(ctx, " tomato ", "hexanal", "green\r\nfresh")
	require.NoError(t, err)

	// A "NaN" compound is a missing value and sends smart add down the
	// inference path.
	res, err := s.SmartAdd(ctx, "pepper", "NaN", "fruity")
	require.NoError(t, err)
	assert.True(t, res.Inferred)

	_, err = s.SmartAdd(ctx, "nan", "C2", "d")
	require.ErrorIs(t, err, flavor.ErrMissingFields)

	reloaded := New(file)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, s.Records(), reloaded.Records())
	assert.Contains(t, reloaded.Records(), rec("tomato", "hexanal", "green\nfresh"))
	assert.Contains(t, reloaded.Records(), rec("pepper", "C1", "fruity"))
	for _, r := range reloaded.Records() {
		assert.True(t, r.Valid(), "%+v", r)
	}
}
