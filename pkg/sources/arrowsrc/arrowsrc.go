// Package arrowsrc adapts in-memory Apache Arrow record batches to the frame
// source interface, exposing the schema's fields as columns and iterating
// batches row by row.
package arrowsrc

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/leapstack-labs/leapframe/pkg/source"
)

// Source reads rows from one or more Arrow records sharing a schema. The
// source borrows the records; the caller must keep them retained for the
// source's lifetime.
type Source struct {
	schema  *arrow.Schema
	records []arrow.Record
	rows    int64
}

// New creates a source over the given records. Every record must carry the
// same schema.
func New(schema *arrow.Schema, records ...arrow.Record) (*Source, error) {
	var rows int64
	for i, rec := range records {
		if !rec.Schema().Equal(schema) {
			return nil, fmt.Errorf("record %d schema does not match: got %v, want %v", i, rec.Schema(), schema)
		}
		rows += rec.NumRows()
	}
	return &Source{schema: schema, records: records, rows: rows}, nil
}

// ColumnNames returns the schema's field names in declared order.
func (s *Source) ColumnNames() []string {
	names := make([]string, s.schema.NumFields())
	for i := 0; i < s.schema.NumFields(); i++ {
		names[i] = s.schema.Field(i).Name
	}
	return names
}

// RowCount returns the total row count across all records.
func (s *Source) RowCount() (int64, bool) {
	return s.rows, true
}

// Open starts a fresh pass over the records.
func (s *Source) Open(_ context.Context) (source.RowCursor, error) {
	return &cursor{src: s, rec: 0, row: -1}, nil
}

type cursor struct {
	src *Source
	rec int
	row int64
	err error
}

func (c *cursor) Next() bool {
	if c.err != nil {
		return false
	}
	for c.rec < len(c.src.records) {
		if c.row+1 < c.src.records[c.rec].NumRows() {
			c.row++
			return true
		}
		c.rec++
		c.row = -1
	}
	return false
}

func (c *cursor) Scan(dest []any) error {
	if c.rec >= len(c.src.records) || c.row < 0 {
		return fmt.Errorf("scan called without a current row")
	}
	rec := c.src.records[c.rec]
	if len(dest) != int(rec.NumCols()) {
		return fmt.Errorf("scan expected %d destinations, got %d", rec.NumCols(), len(dest))
	}
	for i := 0; i < int(rec.NumCols()); i++ {
		v, err := valueAt(rec.Column(i), int(c.row))
		if err != nil {
			c.err = fmt.Errorf("column %q: %w", c.src.schema.Field(i).Name, err)
			return c.err
		}
		dest[i] = v
	}
	return nil
}

func (c *cursor) Err() error { return c.err }

func (c *cursor) Close() error { return nil }

// valueAt extracts one cell as a plain Go value; nulls become nil.
func valueAt(col arrow.Array, i int) (any, error) {
	if col.IsNull(i) {
		return nil, nil
	}
	switch a := col.(type) {
	case *array.Boolean:
		return a.Value(i), nil
	case *array.Int8:
		return int64(a.Value(i)), nil
	case *array.Int16:
		return int64(a.Value(i)), nil
	case *array.Int32:
		return int64(a.Value(i)), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return int64(a.Value(i)), nil
	case *array.Uint16:
		return int64(a.Value(i)), nil
	case *array.Uint32:
		return int64(a.Value(i)), nil
	case *array.Uint64:
		return int64(a.Value(i)), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.LargeString:
		return a.Value(i), nil
	case *array.Binary:
		return a.Value(i), nil
	case *array.Timestamp:
		return int64(a.Value(i)), nil
	default:
		return nil, fmt.Errorf("unsupported arrow type %s", col.DataType())
	}
}

var _ source.Source = (*Source)(nil)
