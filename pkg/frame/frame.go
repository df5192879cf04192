// Package frame provides a lazy, branching interface over tabular data: a
// DAG of column operations (filter, define, alias) built incrementally and
// evaluated in a single pass over the row source when a terminal action such
// as Count is first observed.
//
// Every builder operation returns a new lightweight handle; handles are
// never mutated, so independent branches built off the same frame keep
// isolated column namespaces.
package frame

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leapstack-labs/leapframe/internal/colreg"
	"github.com/leapstack-labs/leapframe/internal/graph"
	"github.com/leapstack-labs/leapframe/pkg/catalog"
	"github.com/leapstack-labs/leapframe/pkg/source"
)

// InternalPrefix marks reserved column names hidden from listings but still
// usable in filters, defines and aliases.
const InternalPrefix = colreg.InternalPrefix

// Frame is a handle on one node of the computation graph.
type Frame struct {
	node *graph.Node
}

// Row is the per-row view passed to predicates, generators and Foreach
// callbacks. Name lookups resolve aliases to their referent's value.
type Row struct {
	view *graph.RowView
}

// Get returns the current row's value for a visible column, or nil when the
// name is not visible at this frame.
func (r Row) Get(name string) any { return r.view.Get(name) }

// Has reports whether name is visible at this frame.
func (r Row) Has(name string) bool { return r.view.Has(name) }

// Names returns the visible column names in registration order.
func (r Row) Names() []string { return r.view.Names() }

// Option configures frame construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by the frame's evaluation passes.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// New constructs a frame over an existing table handle. The table's declared
// columns become the root namespace, each tagged original.
func New(tbl catalog.Table, opts ...Option) (*Frame, error) {
	if tbl == nil {
		return nil, usageErr("New", "", errors.New("table is nil"))
	}
	o := applyOptions(opts)
	return &Frame{node: graph.NewLineage(&tableSource{tbl: tbl}, o.logger)}, nil
}

// Open constructs a frame by resolving a table name within a catalog. A nil
// catalog or an unresolvable name is a UsageError.
func Open(name string, cat catalog.Catalog, opts ...Option) (*Frame, error) {
	if cat == nil {
		return nil, usageErr("Open", name, errors.New("catalog is nil"))
	}
	tbl, err := cat.Table(name)
	if err != nil {
		return nil, usageErr("Open", name, err)
	}
	return New(tbl, opts...)
}

// FromSource constructs a frame over a pluggable row source; ownership of
// the source transfers to the frame.
func FromSource(src source.Source, opts ...Option) (*Frame, error) {
	if src == nil {
		return nil, usageErr("FromSource", "", errors.New("source is nil"))
	}
	o := applyOptions(opts)
	return &Frame{node: graph.NewLineage(src, o.logger)}, nil
}

// FromRange constructs a frame over a synthetic zero-column source of n
// rows, useful when every column is defined by the caller.
func FromRange(n int64, opts ...Option) *Frame {
	o := applyOptions(opts)
	return &Frame{node: graph.NewLineage(source.Blank(n), o.logger)}
}

// Filter returns a new frame that keeps only rows for which pred is true.
// The column namespace is carried over unchanged and the row stream is not
// consumed until an action runs.
func (f *Frame) Filter(pred func(Row) bool) (*Frame, error) {
	if pred == nil {
		return nil, usageErr("Filter", "", errors.New("predicate is nil"))
	}
	node := f.node.Filter(func(r *graph.RowView) bool { return pred(Row{view: r}) })
	return &Frame{node: node}, nil
}

// Define returns a new frame with a derived column computed per row by gen.
// The name must not already be visible (as original, derived or alias) on
// this frame's branch.
func (f *Frame) Define(name string, gen func(Row) any) (*Frame, error) {
	if gen == nil {
		return nil, usageErr("Define", name, errors.New("generator is nil"))
	}
	node, err := f.node.Define(name, func(r *graph.RowView) any { return gen(Row{view: r}) })
	if err != nil {
		return nil, usageErr("Define", name, err)
	}
	return &Frame{node: node}, nil
}

// Alias returns a new frame where newName refers to the existing column.
// Validity is decided purely against this frame's own ancestor chain, so
// independent branches may reuse names freely; re-aliasing to a name already
// taken along this branch is a UsageError.
func (f *Frame) Alias(newName, existing string) (*Frame, error) {
	node, err := f.node.Alias(newName, existing)
	if err != nil {
		return nil, usageErr("Alias", newName, err)
	}
	return &Frame{node: node}, nil
}

// ColumnNames returns the visible column names in registration order: the
// source's declared columns first, then user-added names in the order they
// were introduced. Names carrying InternalPrefix are omitted.
func (f *Frame) ColumnNames() []string {
	return f.node.Columns().Names()
}

// DefinedColumnNames returns only the user-defined (derived) names, in
// definition order, with InternalPrefix names omitted.
func (f *Frame) DefinedColumnNames() []string {
	return f.node.Columns().DerivedNames()
}

// ColumnInfo describes one visible column's provenance.
type ColumnInfo struct {
	// Name is the visible column name.
	Name string
	// Kind is "original", "derived" or "alias".
	Kind string
	// Target is the direct referent when Kind is "alias".
	Target string
}

// Describe returns provenance for every visible column in registration order.
func (f *Frame) Describe() []ColumnInfo {
	cols := f.node.Columns()
	names := cols.Names()
	infos := make([]ColumnInfo, 0, len(names))
	for _, name := range names {
		kind, _ := cols.Lookup(name)
		info := ColumnInfo{Name: name, Kind: kind.String()}
		if target, ok := cols.Target(name); ok {
			info.Target = target
		}
		infos = append(infos, info)
	}
	return infos
}

// tableSource adapts a catalog table to the source interface.
type tableSource struct {
	tbl catalog.Table
}

func (s *tableSource) ColumnNames() []string { return s.tbl.Columns() }

func (s *tableSource) RowCount() (int64, bool) { return s.tbl.RowCount() }

func (s *tableSource) Open(ctx context.Context) (source.RowCursor, error) {
	return s.tbl.Rows(ctx)
}
