package parquetdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapframe/internal/testutil"
	"github.com/leapstack-labs/leapframe/pkg/catalog"
)

func writeFixture(t *testing.T, dir, name string) {
	t.Helper()
	err := WriteFile(filepath.Join(dir, name), []string{"id", "label"}, []map[string]any{
		{"id": int64(1), "label": "a"},
		{"id": int64(2), "label": "b"},
		{"id": int64(3), "label": "c"},
	})
	require.NoError(t, err)
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "events.parquet")

	tbl, err := OpenTable(filepath.Join(dir, "events.parquet"))
	require.NoError(t, err)
	assert.Equal(t, "events", tbl.Name())
	assert.ElementsMatch(t, []string{"id", "label"}, tbl.Columns())

	n, known := tbl.RowCount()
	require.True(t, known)
	assert.Equal(t, int64(3), n)

	cur, err := tbl.Rows(context.Background())
	require.NoError(t, err)
	defer func() { _ = cur.Close() }()

	rows := 0
	dest := make([]any, len(tbl.Columns()))
	for cur.Next() {
		require.NoError(t, cur.Scan(dest))
		rows++
	}
	require.NoError(t, cur.Err())
	assert.Equal(t, 3, rows)
}

func TestCatalogScansDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "events.parquet")
	writeFixture(t, dir, "users.parquet")

	cat, err := Open(dir, testutil.NewTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = cat.Close() }()

	names, err := cat.Tables()
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "users"}, names)

	tbl, err := cat.Table("events")
	require.NoError(t, err)
	assert.Equal(t, "events", tbl.Name())
}

func TestCatalogNotFound(t *testing.T) {
	dir := t.TempDir()

	cat, err := Open(dir, nil)
	require.NoError(t, err)

	_, err = cat.Table("missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCatalogManifest(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "events_v2.parquet")

	manifest := "tables:\n  events: events_v2.parquet\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tables.yaml"), []byte(manifest), 0o644))

	cat, err := Open(dir, nil)
	require.NoError(t, err)

	tbl, err := cat.Table("events")
	require.NoError(t, err)
	assert.Equal(t, "events", tbl.Name())

	names, err := cat.Tables()
	require.NoError(t, err)
	assert.Contains(t, names, "events")
	assert.Contains(t, names, "events_v2")
}

func TestOpenNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Open(file, nil)
	assert.Error(t, err)

	_, err = Open(filepath.Join(dir, "does-not-exist"), nil)
	assert.Error(t, err)
}

func TestRegisteredScheme(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "events.parquet")

	cat, err := catalog.Open("parquet://"+dir, testutil.NewTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = cat.Close() }()

	names, err := cat.Tables()
	require.NoError(t, err)
	assert.Equal(t, []string{"events"}, names)
}
