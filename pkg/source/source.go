// Package source defines the pluggable row-source abstraction consumed by
// frames. A Source supplies the declared column names and sequential row
// iteration; it is not tied to any on-disk format.
package source

import "context"

// Source supplies column names and row iteration for a frame.
//
// Implementations must return column names in a stable declared order and
// must support Open being called more than once: each call yields a fresh
// cursor positioned before the first row.
type Source interface {
	// ColumnNames returns the declared column names in order.
	ColumnNames() []string

	// RowCount returns the number of rows and true when the count is known
	// without iterating, or 0 and false otherwise.
	RowCount() (int64, bool)

	// Open starts a new sequential pass over the rows.
	Open(ctx context.Context) (RowCursor, error)
}

// RowCursor iterates rows sequentially, in the database/sql shape.
type RowCursor interface {
	// Next advances to the next row, returning false when exhausted or on error.
	Next() bool

	// Scan copies the current row's column values into dest, which must have
	// one element per declared column.
	Scan(dest []any) error

	// Err returns the error, if any, that stopped iteration.
	Err() error

	// Close releases resources held by the cursor.
	Close() error
}
