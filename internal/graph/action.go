package graph

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapframe/internal/colreg"
)

// Action is a terminal consumer attached to a node. It stays pending until
// the first Value call triggers an evaluation pass; afterwards the result is
// cached and the pass is never re-triggered for this action.
type Action struct {
	node  *Node
	acc   accumulator
	done  bool
	value any
}

// Value returns the action's computed result, running the lineage's
// evaluation pass on first use. Safe to call repeatedly; later calls return
// the cached value. A failed pass poisons the lineage and every call returns
// the recorded error.
func (a *Action) Value(ctx context.Context) (any, error) {
	lin := a.node.lin
	if !a.done {
		if err := lin.run(ctx); err != nil {
			return nil, err
		}
	}
	return a.value, nil
}

// accumulator receives each surviving row at the action's node and produces
// the final result after the pass.
type accumulator interface {
	observe(row *RowView) error
	final() (any, error)
}

// requireColumn validates a column binding at attach time against the
// inviting node's snapshot, never deferring to evaluation.
func (n *Node) requireColumn(name string) error {
	if _, ok := n.cols.Lookup(name); !ok {
		return &colreg.UnknownColumnError{Name: name}
	}
	return nil
}

// Count attaches an action yielding the number of surviving rows as int64.
func (n *Node) Count() *Action {
	return n.lin.attach(&Action{node: n, acc: &countAcc{}})
}

// Take attaches an action collecting one column's surviving values as []any.
func (n *Node) Take(column string) (*Action, error) {
	if err := n.requireColumn(column); err != nil {
		return nil, err
	}
	return n.lin.attach(&Action{node: n, acc: &takeAcc{column: column}}), nil
}

// Head attaches an action collecting the first limit surviving rows, visible
// columns only, as []map[string]any. The pass still consumes every row so
// sibling actions are satisfied.
func (n *Node) Head(limit int) *Action {
	return n.lin.attach(&Action{node: n, acc: &headAcc{limit: limit}})
}

// Sum attaches a float64 sum over a numeric column.
func (n *Node) Sum(column string) (*Action, error) {
	return n.reduce(column, func(r *reduceAcc) (any, error) { return r.sum, nil })
}

// Mean attaches a float64 mean over a numeric column. Zero surviving rows
// yield a mean of 0.
func (n *Node) Mean(column string) (*Action, error) {
	return n.reduce(column, func(r *reduceAcc) (any, error) {
		if r.n == 0 {
			return float64(0), nil
		}
		return r.sum / float64(r.n), nil
	})
}

// Min attaches a float64 minimum over a numeric column. Zero surviving rows
// yield 0.
func (n *Node) Min(column string) (*Action, error) {
	return n.reduce(column, func(r *reduceAcc) (any, error) {
		if r.n == 0 {
			return float64(0), nil
		}
		return r.min, nil
	})
}

// Max attaches a float64 maximum over a numeric column. Zero surviving rows
// yield 0.
func (n *Node) Max(column string) (*Action, error) {
	return n.reduce(column, func(r *reduceAcc) (any, error) {
		if r.n == 0 {
			return float64(0), nil
		}
		return r.max, nil
	})
}

func (n *Node) reduce(column string, fin func(*reduceAcc) (any, error)) (*Action, error) {
	if err := n.requireColumn(column); err != nil {
		return nil, err
	}
	return n.lin.attach(&Action{node: n, acc: &reduceAcc{column: column, fin: fin}}), nil
}

// Foreach attaches a per-row side-effect hook; its result is always nil.
func (n *Node) Foreach(fn func(*RowView)) *Action {
	return n.lin.attach(&Action{node: n, acc: &foreachAcc{fn: fn}})
}

// Collect attaches an action gathering the given columns of every surviving
// row as []map[string]any. Used by snapshotting.
func (n *Node) Collect(columns []string) (*Action, error) {
	for _, c := range columns {
		if err := n.requireColumn(c); err != nil {
			return nil, err
		}
	}
	return n.lin.attach(&Action{node: n, acc: &collectAcc{columns: columns}}), nil
}

type countAcc struct {
	n int64
}

func (a *countAcc) observe(*RowView) error {
	a.n++
	return nil
}

func (a *countAcc) final() (any, error) { return a.n, nil }

type takeAcc struct {
	column string
	values []any
}

func (a *takeAcc) observe(row *RowView) error {
	a.values = append(a.values, row.Get(a.column))
	return nil
}

func (a *takeAcc) final() (any, error) {
	if a.values == nil {
		a.values = []any{}
	}
	return a.values, nil
}

type headAcc struct {
	limit int
	rows  []map[string]any
}

func (a *headAcc) observe(row *RowView) error {
	if len(a.rows) >= a.limit {
		return nil
	}
	m := make(map[string]any)
	for _, name := range row.Names() {
		m[name] = row.Get(name)
	}
	a.rows = append(a.rows, m)
	return nil
}

func (a *headAcc) final() (any, error) {
	if a.rows == nil {
		a.rows = []map[string]any{}
	}
	return a.rows, nil
}

type reduceAcc struct {
	column   string
	fin      func(*reduceAcc) (any, error)
	n        int64
	sum      float64
	min, max float64
}

func (a *reduceAcc) observe(row *RowView) error {
	v, err := toFloat(row.Get(a.column))
	if err != nil {
		return fmt.Errorf("column %q: %w", a.column, err)
	}
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.n++
	return nil
}

func (a *reduceAcc) final() (any, error) { return a.fin(a) }

type foreachAcc struct {
	fn func(*RowView)
}

func (a *foreachAcc) observe(row *RowView) error {
	a.fn(row)
	return nil
}

func (a *foreachAcc) final() (any, error) { return struct{}{}, nil }

type collectAcc struct {
	columns []string
	rows    []map[string]any
}

func (a *collectAcc) observe(row *RowView) error {
	m := make(map[string]any, len(a.columns))
	for _, c := range a.columns {
		m[c] = row.Get(c)
	}
	a.rows = append(a.rows, m)
	return nil
}

func (a *collectAcc) final() (any, error) {
	if a.rows == nil {
		a.rows = []map[string]any{}
	}
	return a.rows, nil
}

// toFloat coerces the numeric types a row source can produce to float64.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case nil:
		return 0, fmt.Errorf("value is nil")
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}
