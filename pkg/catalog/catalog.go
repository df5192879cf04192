// Package catalog defines the storage-engine collaborator a frame reads
// from: a directory-like container of named tables, each exposing its
// declared column names and sequential row iteration. Concrete backends
// register themselves by URL scheme, mirroring database driver registration.
package catalog

import (
	"context"
	"errors"

	"github.com/leapstack-labs/leapframe/pkg/source"
)

// ErrNotFound is returned by Catalog.Table when the name cannot be resolved.
var ErrNotFound = errors.New("table not found")

// Catalog is a container of named tables.
type Catalog interface {
	// Table resolves a table by name, returning an error wrapping
	// ErrNotFound when the name is absent.
	Table(name string) (Table, error)

	// Tables lists the available table names.
	Tables() ([]string, error)

	// Close releases resources held by the catalog.
	Close() error
}

// Table is one named table within a catalog.
type Table interface {
	// Name returns the table's name within its catalog.
	Name() string

	// Columns returns the declared column names in stable order.
	Columns() []string

	// RowCount returns the number of rows and true when known without
	// iterating.
	RowCount() (int64, bool)

	// Rows starts a sequential pass over the table's rows.
	Rows(ctx context.Context) (source.RowCursor, error)
}
