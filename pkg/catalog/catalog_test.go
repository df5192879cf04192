package catalog

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalog(t *testing.T) {
	cat := NewMemory()
	cat.Add("events", []string{"id", "kind"}, [][]any{
		{int64(1), "click"},
		{int64(2), "view"},
	})
	cat.Add("users", []string{"id"}, nil)

	names, err := cat.Tables()
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "users"}, names)

	tbl, err := cat.Table("events")
	require.NoError(t, err)
	assert.Equal(t, "events", tbl.Name())
	assert.Equal(t, []string{"id", "kind"}, tbl.Columns())

	n, known := tbl.RowCount()
	require.True(t, known)
	assert.Equal(t, int64(2), n)

	cur, err := tbl.Rows(context.Background())
	require.NoError(t, err)
	defer func() { _ = cur.Close() }()

	rows := 0
	dest := make([]any, 2)
	for cur.Next() {
		require.NoError(t, cur.Scan(dest))
		rows++
	}
	require.NoError(t, cur.Err())
	assert.Equal(t, 2, rows)
}

func TestMemoryCatalogNotFound(t *testing.T) {
	cat := NewMemory()

	_, err := cat.Table("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenUnknownScheme(t *testing.T) {
	_, err := Open("bogus://whatever", slog.New(slog.DiscardHandler))
	var unknown *UnknownSchemeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "bogus", unknown.Scheme)
}

func TestOpenMissingScheme(t *testing.T) {
	_, err := Open("/no/scheme/here", nil)
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	Register("testmem", func(string, *slog.Logger) (Catalog, error) {
		return NewMemory(), nil
	})

	cat, err := Open("testmem://ignored", nil)
	require.NoError(t, err)
	defer func() { _ = cat.Close() }()

	names, err := cat.Tables()
	require.NoError(t, err)
	assert.Empty(t, names)
}
