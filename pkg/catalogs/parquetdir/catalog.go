// Package parquetdir implements a catalog over a directory of parquet
// files: each file is a table named after its base name, or after an entry
// in an optional tables.yaml manifest mapping table names to files.
package parquetdir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/leapstack-labs/leapframe/pkg/catalog"
	"github.com/leapstack-labs/leapframe/pkg/source"
)

func init() {
	catalog.Register("parquet", func(ref string, logger *slog.Logger) (catalog.Catalog, error) {
		return Open(ref, logger)
	})
}

// Catalog is a directory of parquet files.
type Catalog struct {
	dir    string
	logger *slog.Logger

	// tables maps table name to file path.
	tables map[string]string
}

// Open creates a catalog over dir. Every *.parquet file becomes a table; a
// tables.yaml manifest in the directory, when present, adds or overrides
// name-to-file mappings. The logger may be nil.
func Open(dir string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening parquet catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening parquet catalog: %s is not a directory", dir)
	}

	tables := make(map[string]string)
	matches, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	if err != nil {
		return nil, fmt.Errorf("scanning parquet catalog: %w", err)
	}
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), ".parquet")
		tables[name] = path
	}

	manifest, err := loadManifest(filepath.Join(dir, manifestFileName))
	if err != nil {
		return nil, err
	}
	for name, file := range manifest {
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		tables[name] = file
	}

	logger.Debug("opened parquet catalog", "dir", dir, "tables", len(tables))
	return &Catalog{dir: dir, logger: logger, tables: tables}, nil
}

// Table resolves a table by name.
func (c *Catalog) Table(name string) (catalog.Table, error) {
	path, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, catalog.ErrNotFound)
	}
	tbl, err := OpenTable(path)
	if err != nil {
		return nil, err
	}
	tbl.name = name
	return tbl, nil
}

// Tables lists the table names (sorted).
func (c *Catalog) Tables() ([]string, error) {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op; files are opened per cursor.
func (c *Catalog) Close() error { return nil }

// Table is a single parquet file. Its schema is read once at open time; each
// Rows call reopens the file for a fresh sequential pass.
type Table struct {
	name    string
	path    string
	columns []string
	rows    int64
}

// OpenTable opens one parquet file as a standalone table named after its
// base name.
func OpenTable(path string) (*Table, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	pq, err := parquet.OpenFile(f, size)
	if err != nil {
		return nil, fmt.Errorf("opening parquet file %s: %w", path, err)
	}

	fields := pq.Schema().Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name()
	}

	return &Table{
		name:    strings.TrimSuffix(filepath.Base(path), ".parquet"),
		path:    path,
		columns: columns,
		rows:    pq.NumRows(),
	}, nil
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// Columns returns the schema's field names in declared order.
func (t *Table) Columns() []string { return t.columns }

// RowCount returns the row count recorded in the file metadata.
func (t *Table) RowCount() (int64, bool) { return t.rows, true }

// Rows starts a sequential pass over the file's rows.
func (t *Table) Rows(_ context.Context) (source.RowCursor, error) {
	f, size, err := openFile(t.path)
	if err != nil {
		return nil, err
	}
	pq, err := parquet.OpenFile(f, size)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("opening parquet file %s: %w", t.path, err)
	}
	return &fileCursor{
		file:    f,
		reader:  parquet.NewReader(pq),
		columns: t.columns,
	}, nil
}

func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return f, stat.Size(), nil
}

type fileCursor struct {
	file    *os.File
	reader  *parquet.Reader
	columns []string
	row     map[string]any
	err     error
}

func (c *fileCursor) Next() bool {
	if c.err != nil {
		return false
	}
	row := make(map[string]any)
	if err := c.reader.Read(&row); err != nil {
		if !errors.Is(err, io.EOF) {
			c.err = fmt.Errorf("reading parquet row: %w", err)
		}
		return false
	}
	c.row = row
	return true
}

func (c *fileCursor) Scan(dest []any) error {
	if c.row == nil {
		return fmt.Errorf("scan called without a current row")
	}
	if len(dest) != len(c.columns) {
		return fmt.Errorf("scan expected %d destinations, got %d", len(c.columns), len(dest))
	}
	for i, col := range c.columns {
		dest[i] = c.row[col]
	}
	return nil
}

func (c *fileCursor) Err() error { return c.err }

func (c *fileCursor) Close() error {
	_ = c.reader.Close()
	return c.file.Close()
}

var _ catalog.Catalog = (*Catalog)(nil)
var _ catalog.Table = (*Table)(nil)
