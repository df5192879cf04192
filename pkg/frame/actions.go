package frame

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapframe/internal/graph"
	"github.com/leapstack-labs/leapframe/pkg/catalogs/parquetdir"
)

// Result is a lazy handle on an action's computed value. The first Value
// call triggers a single evaluation pass over the row source that satisfies
// every pending action on the lineage; later calls return the cached value
// without re-traversal.
type Result[T any] struct {
	act *graph.Action
}

// Value returns the computed result, running the evaluation pass if it has
// not run yet. A failed pass poisons the lineage and every subsequent call
// returns the recorded error.
func (r *Result[T]) Value(ctx context.Context) (T, error) {
	v, err := r.act.Value(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Count attaches an action yielding the number of rows surviving this
// frame's filters.
func (f *Frame) Count() *Result[int64] {
	return &Result[int64]{act: f.node.Count()}
}

// Take attaches an action collecting one visible column's surviving values.
// The column binding is validated now, not at evaluation time.
func (f *Frame) Take(column string) (*Result[[]any], error) {
	act, err := f.node.Take(column)
	if err != nil {
		return nil, usageErr("Take", column, err)
	}
	return &Result[[]any]{act: act}, nil
}

// Head attaches an action collecting the first n surviving rows, visible
// columns only. The pass still consumes every row so sibling actions are
// satisfied.
func (f *Frame) Head(n int) *Result[[]map[string]any] {
	if n < 0 {
		n = 0
	}
	return &Result[[]map[string]any]{act: f.node.Head(n)}
}

// Sum attaches a float64 sum over a numeric column. A non-numeric value at
// evaluation time is fatal for the lineage.
func (f *Frame) Sum(column string) (*Result[float64], error) {
	act, err := f.node.Sum(column)
	if err != nil {
		return nil, usageErr("Sum", column, err)
	}
	return &Result[float64]{act: act}, nil
}

// Mean attaches a float64 mean over a numeric column.
func (f *Frame) Mean(column string) (*Result[float64], error) {
	act, err := f.node.Mean(column)
	if err != nil {
		return nil, usageErr("Mean", column, err)
	}
	return &Result[float64]{act: act}, nil
}

// Min attaches a float64 minimum over a numeric column.
func (f *Frame) Min(column string) (*Result[float64], error) {
	act, err := f.node.Min(column)
	if err != nil {
		return nil, usageErr("Min", column, err)
	}
	return &Result[float64]{act: act}, nil
}

// Max attaches a float64 maximum over a numeric column.
func (f *Frame) Max(column string) (*Result[float64], error) {
	act, err := f.node.Max(column)
	if err != nil {
		return nil, usageErr("Max", column, err)
	}
	return &Result[float64]{act: act}, nil
}

// Foreach attaches a per-row side-effect hook. Dereferencing the result runs
// the pass; the hook sees every surviving row once.
func (f *Frame) Foreach(fn func(Row)) (*Result[struct{}], error) {
	if fn == nil {
		return nil, usageErr("Foreach", "", fmt.Errorf("callback is nil"))
	}
	act := f.node.Foreach(func(r *graph.RowView) { fn(Row{view: r}) })
	return &Result[struct{}]{act: act}, nil
}

// Snapshot runs the evaluation pass, writes the selected columns of the
// surviving rows to a parquet file at path, and returns a new frame over the
// written table. With no columns given, all visible columns are written
// (internal-marker names excluded).
func (f *Frame) Snapshot(ctx context.Context, path string, columns ...string) (*Frame, error) {
	if len(columns) == 0 {
		columns = f.ColumnNames()
	}
	act, err := f.node.Collect(columns)
	if err != nil {
		return nil, usageErr("Snapshot", path, err)
	}

	v, err := act.Value(ctx)
	if err != nil {
		return nil, err
	}
	rows := v.([]map[string]any)

	if err := parquetdir.WriteFile(path, columns, rows); err != nil {
		return nil, fmt.Errorf("writing snapshot %s: %w", path, err)
	}

	tbl, err := parquetdir.OpenTable(path)
	if err != nil {
		return nil, fmt.Errorf("reopening snapshot %s: %w", path, err)
	}
	return New(tbl)
}
