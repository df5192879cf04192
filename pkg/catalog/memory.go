package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapframe/pkg/source"
)

// Memory is an in-memory catalog of column/row literals, mainly for tests
// and prototyping.
type Memory struct {
	tables map[string]*memoryTable
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string]*memoryTable)}
}

// Add registers a table with the given columns and rows, replacing any
// existing table of the same name.
func (m *Memory) Add(name string, columns []string, rows [][]any) {
	m.tables[name] = &memoryTable{
		name: name,
		src:  source.FromRows(columns, rows),
	}
}

// Table resolves a table by name.
func (m *Memory) Table(name string) (Table, error) {
	t, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, ErrNotFound)
	}
	return t, nil
}

// Tables lists the table names (sorted).
func (m *Memory) Tables() ([]string, error) {
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for the in-memory catalog.
func (m *Memory) Close() error { return nil }

type memoryTable struct {
	name string
	src  source.Source
}

func (t *memoryTable) Name() string { return t.name }

func (t *memoryTable) Columns() []string { return t.src.ColumnNames() }

func (t *memoryTable) RowCount() (int64, bool) { return t.src.RowCount() }

func (t *memoryTable) Rows(ctx context.Context) (source.RowCursor, error) {
	return t.src.Open(ctx)
}

var _ Catalog = (*Memory)(nil)
