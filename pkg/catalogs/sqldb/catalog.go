// Package sqldb implements a catalog over a database/sql connection. Column
// metadata comes from information_schema (or PRAGMA table_info for SQLite),
// in ordinal order; rows are streamed through a plain SELECT. Driver
// subpackages register the duckdb, sqlite and postgres URL schemes.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapframe/pkg/catalog"
	"github.com/leapstack-labs/leapframe/pkg/source"
)

// Catalog exposes a SQL database's tables.
type Catalog struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// Open connects to a database and returns a catalog over it. The driver must
// already be registered with database/sql. The logger may be nil.
func Open(driver, dsn string, logger *slog.Logger) (*Catalog, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", driver, err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}
	return New(db, driver, logger), nil
}

// New wraps an existing connection. The caller keeps ownership of db only
// until Close is called on the catalog.
func New(db *sql.DB, driver string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{db: db, driver: driver, logger: logger}
}

// Table resolves a table by name, reading its column metadata eagerly so the
// declared order is fixed before any rows are read.
func (c *Catalog) Table(name string) (catalog.Table, error) {
	columns, err := c.columnsFor(name)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %q: %w", name, catalog.ErrNotFound)
	}
	return &Table{cat: c, name: name, columns: columns}, nil
}

// Tables lists user table names in stable order.
func (c *Catalog) Tables() ([]string, error) {
	query := `SELECT table_name FROM information_schema.tables
		WHERE table_schema NOT IN ('information_schema', 'pg_catalog')
		ORDER BY table_name`
	if c.driver == "sqlite" {
		query = `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`
	}

	rows, err := c.db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table names: %w", err)
	}
	return names, nil
}

// Exec runs a SQL statement that returns no rows, for seeding and setup.
func (c *Catalog) Exec(ctx context.Context, stmt string) error {
	if _, err := c.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// columnsFor returns a table's column names in ordinal order, or an empty
// slice when the table does not exist.
func (c *Catalog) columnsFor(table string) ([]string, error) {
	if c.driver == "sqlite" {
		return c.sqliteColumns(table)
	}

	query := `SELECT column_name FROM information_schema.columns
		WHERE table_name = $1 ORDER BY ordinal_position`
	if c.driver != "pgx" {
		query = strings.ReplaceAll(query, "$1", "?")
	}

	rows, err := c.db.QueryContext(context.Background(), query, table)
	if err != nil {
		return nil, fmt.Errorf("querying column metadata for %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column metadata: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column metadata: %w", err)
	}
	return columns, nil
}

func (c *Catalog) sqliteColumns(table string) ([]string, error) {
	rows, err := c.db.QueryContext(context.Background(),
		fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("querying column metadata for %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column metadata: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column metadata: %w", err)
	}
	return columns, nil
}

// Table is one table of a SQL catalog.
type Table struct {
	cat     *Catalog
	name    string
	columns []string
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// Columns returns the column names in ordinal order.
func (t *Table) Columns() []string { return t.columns }

// RowCount returns a best-effort COUNT(*); unknown when the query fails.
func (t *Table) RowCount() (int64, bool) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(t.name))
	if err := t.cat.db.QueryRowContext(context.Background(), query).Scan(&n); err != nil {
		return 0, false
	}
	return n, true
}

// Rows starts a sequential SELECT over the table's declared columns.
func (t *Table) Rows(ctx context.Context) (source.RowCursor, error) {
	quoted := make([]string, len(t.columns))
	for i, col := range t.columns {
		quoted[i] = quoteIdent(col)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(t.name))

	//nolint:rowserrcheck // rows.Err() is surfaced through the cursor's Err
	rows, err := t.cat.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.name, err)
	}
	return &sqlCursor{rows: rows, width: len(t.columns)}, nil
}

type sqlCursor struct {
	rows  *sql.Rows
	width int
}

func (c *sqlCursor) Next() bool { return c.rows.Next() }

func (c *sqlCursor) Scan(dest []any) error {
	if len(dest) != c.width {
		return fmt.Errorf("scan expected %d destinations, got %d", c.width, len(dest))
	}
	ptrs := make([]any, len(dest))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		return fmt.Errorf("scanning row: %w", err)
	}
	// Text columns may arrive as raw bytes depending on the driver.
	for i, v := range dest {
		if b, ok := v.([]byte); ok {
			dest[i] = string(b)
		}
	}
	return nil
}

func (c *sqlCursor) Err() error { return c.rows.Err() }

func (c *sqlCursor) Close() error { return c.rows.Close() }

// quoteIdent double-quotes an identifier, which all supported engines accept.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

var _ catalog.Catalog = (*Catalog)(nil)
var _ catalog.Table = (*Table)(nil)
