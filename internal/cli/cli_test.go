package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapframe/pkg/catalogs/parquetdir"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func fixtureCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	err := parquetdir.WriteFile(filepath.Join(dir, "events.parquet"),
		[]string{"id", "kind"},
		[]map[string]any{
			{"id": int64(1), "kind": "click"},
			{"id": int64(2), "kind": "view"},
		})
	require.NoError(t, err)
	return "parquet://" + dir
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leapframe")
}

func TestTablesCommand(t *testing.T) {
	out, err := execute(t, "tables", "--catalog", fixtureCatalog(t))
	require.NoError(t, err)
	assert.Contains(t, out, "events")
}

func TestCountCommand(t *testing.T) {
	out, err := execute(t, "count", "events", "--catalog", fixtureCatalog(t), "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "events,2")
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema", "events", "--catalog", fixtureCatalog(t), "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "id,original")
	assert.Contains(t, out, "kind,original")
}

func TestHeadCommand(t *testing.T) {
	out, err := execute(t, "head", "events", "-n", "1", "--catalog", fixtureCatalog(t), "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "1,click")
}

func TestSnapshotCommand(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "copy.parquet")
	out, err := execute(t, "snapshot", "events", dest, "--catalog", fixtureCatalog(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 rows")
}

func TestMissingCatalog(t *testing.T) {
	_, err := execute(t, "tables")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog configured")
}

func TestUnknownTable(t *testing.T) {
	_, err := execute(t, "count", "missing", "--catalog", fixtureCatalog(t))
	require.Error(t, err)
}
