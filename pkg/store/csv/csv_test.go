package csv

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

func TestEncodeWritesBOMAndHeader(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, flavor.HeaderEN, []flavor.Record{
		{Ingredient: "豌豆", Compound: "Hexanal, C6", Descriptor: "生青味"},
	})
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, bom), "missing byte-order mark")
	assert.Equal(t, "ingredient,compound,descriptor\n豌豆,\"Hexanal, C6\",生青味\n", string(out[len(bom):]))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []flavor.Record
		wantErr bool
	}{
		{
			name:  "with bom",
			input: string(bom) + "食材,风味物质及英文名,风味描述\na,C1,d1\n",
			want:  []flavor.Record{{Ingredient: "a", Compound: "C1", Descriptor: "d1"}},
		},
		{
			name:  "without bom",
			input: "ingredient,compound,descriptor\na,C1,d1\n",
			want:  []flavor.Record{{Ingredient: "a", Compound: "C1", Descriptor: "d1"}},
		},
		{
			name:  "missing cells and nan",
			input: "i,c,d\na,nan\n,,\nb,C2,\n",
			want: []flavor.Record{
				{Ingredient: "a"},
				{Ingredient: "b", Compound: "C2"},
			},
		},
		{
			name:  "empty file",
			input: "",
			want:  []flavor.Record{},
		},
		{
			name:    "narrow header",
			input:   "a,b\n1,2\n",
			wantErr: true,
		},
		{
			name:    "broken quotes",
			input:   "i,c,d\n\"a,C1,d1\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(bytes.NewReader([]byte(tc.input)))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flavor_database.csv")
	fs := NewFileStorage(NewFileStorageParams{Path: path})

	records := []flavor.Record{
		{Ingredient: "豌豆", Compound: "Comp1", Descriptor: "杏仁味"},
		{Ingredient: "辣椒", Compound: "Comp2, \"quoted\"", Descriptor: "line\nbreak"},
		{Ingredient: "x", Compound: "", Descriptor: ""},
	}
	require.NoError(t, fs.Save(ctx, records))

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, records, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, bom))
}

func TestFileStorageMissingFile(t *testing.T) {
	fs := NewFileStorage(NewFileStorageParams{Path: filepath.Join(t.TempDir(), "absent.csv")})
	got, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStorageClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.csv")
	fs := NewFileStorage(NewFileStorageParams{Path: path})

	require.NoError(t, fs.Save(ctx, []flavor.Record{{Ingredient: "a"}}))
	require.NoError(t, fs.Clear(ctx))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	require.NoError(t, fs.Clear(ctx))
}

func TestFileStorageSaveFailureKeepsOldFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "db.csv")
	fs := NewFileStorage(NewFileStorageParams{Path: path})
	require.NoError(t, fs.Save(ctx, []flavor.Record{{Ingredient: "a"}}))

	broken := NewFileStorage(NewFileStorageParams{Path: filepath.Join(dir, "missing", "db.csv")})
	require.Error(t, broken.Save(ctx, []flavor.Record{{Ingredient: "b"}}))

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []flavor.Record{{Ingredient: "a"}}, got)
}
