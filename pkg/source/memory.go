package source

import (
	"context"
	"fmt"
)

// Blank returns a synthetic source with n rows and no columns.
// Useful for prototyping a frame whose columns are all defined by the caller.
func Blank(n int64) Source {
	return &memorySource{rows: make([][]any, n)}
}

// FromRows returns an in-memory source over the given column names and rows.
// Each row must have exactly one value per column.
func FromRows(columns []string, rows [][]any) Source {
	return &memorySource{columns: columns, rows: rows}
}

type memorySource struct {
	columns []string
	rows    [][]any
}

func (s *memorySource) ColumnNames() []string {
	return s.columns
}

func (s *memorySource) RowCount() (int64, bool) {
	return int64(len(s.rows)), true
}

func (s *memorySource) Open(_ context.Context) (RowCursor, error) {
	return &memoryCursor{src: s, pos: -1}, nil
}

type memoryCursor struct {
	src *memorySource
	pos int
	err error
}

func (c *memoryCursor) Next() bool {
	if c.err != nil || c.pos+1 >= len(c.src.rows) {
		return false
	}
	c.pos++
	return true
}

func (c *memoryCursor) Scan(dest []any) error {
	if c.pos < 0 || c.pos >= len(c.src.rows) {
		return fmt.Errorf("scan called without a current row")
	}
	row := c.src.rows[c.pos]
	if len(dest) != len(c.src.columns) {
		return fmt.Errorf("scan expected %d destinations, got %d", len(c.src.columns), len(dest))
	}
	copy(dest, row)
	return nil
}

func (c *memoryCursor) Err() error { return c.err }

func (c *memoryCursor) Close() error { return nil }
