package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapframe/internal/colreg"
)

// binding says where a visible column's value lives during a pass: either a
// source column index or the define node that computes it.
type binding struct {
	colIdx int
	def    *Node
}

// RowView is the per-row window a predicate, generator or action sees at a
// given node. Name lookups resolve through the node's namespace snapshot, so
// aliases read the value of their referent.
type RowView struct {
	snap    *colreg.Snapshot
	bind    map[string]binding
	vals    []any
	derived map[int64]any
}

// Get returns the current row's value for a visible column name, or nil when
// the name is not visible at this node.
func (r *RowView) Get(name string) any {
	b, ok := r.bind[name]
	if !ok {
		return nil
	}
	if b.def != nil {
		return r.derived[b.def.id]
	}
	return r.vals[b.colIdx]
}

// Has reports whether name is visible at this node.
func (r *RowView) Has(name string) bool {
	_, ok := r.bind[name]
	return ok
}

// Names returns the visible column names in registration order.
func (r *RowView) Names() []string {
	return r.snap.Names()
}

// runPass performs the single traversal satisfying all pending actions.
// Called with the lineage mutex held.
func (l *Lineage) runPass(ctx context.Context, pending []*Action) error {
	runID := uuid.NewString()

	// Discover the participating sub-tree by walking each pending action up
	// to the shared root.
	nodes := make(map[int64]*Node)
	actionsAt := make(map[int64][]*Action)
	var root *Node
	for _, a := range pending {
		actionsAt[a.node.id] = append(actionsAt[a.node.id], a)
		for n := a.node; n != nil; n = n.parent {
			nodes[n.id] = n
			if n.parent == nil {
				root = n
			}
		}
	}

	// Children in creation order for a deterministic visit sequence.
	children := make(map[int64][]*Node)
	for _, n := range nodes {
		if n.parent != nil {
			children[n.parent.id] = append(children[n.parent.id], n)
		}
	}
	for id := range children {
		kids := children[id]
		sort.Slice(kids, func(i, j int) bool { return kids[i].id < kids[j].id })
	}

	binds := buildBindings(root, children)

	l.logger.Debug("starting evaluation pass",
		"run_id", runID,
		"nodes", len(nodes),
		"pending_actions", len(pending))

	cur, err := l.src.Open(ctx)
	if err != nil {
		return fmt.Errorf("opening row source: %w", err)
	}
	defer func() { _ = cur.Close() }()

	vals := make([]any, len(l.src.ColumnNames()))
	derived := make(map[int64]any)

	var eval func(n *Node) error
	eval = func(n *Node) error {
		view := &RowView{snap: n.cols, bind: binds[n.id], vals: vals, derived: derived}
		switch n.kind {
		case KindFilter:
			// A false predicate short-circuits everything below this node
			// for the current row.
			if !n.pred(view) {
				return nil
			}
		case KindDefine:
			// Computed once per row, before any descendant consumes it, and
			// shared by every branch below this node. The generator sees the
			// parent's namespace, not its own new name.
			pv := &RowView{snap: n.parent.cols, bind: binds[n.parent.id], vals: vals, derived: derived}
			derived[n.id] = n.gen(pv)
		case KindSource, KindAlias:
			// No per-row work.
		}
		for _, a := range actionsAt[n.id] {
			if err := a.acc.observe(view); err != nil {
				return fmt.Errorf("action at node %d: %w", n.id, err)
			}
		}
		for _, c := range children[n.id] {
			if err := eval(c); err != nil {
				return err
			}
		}
		return nil
	}

	var rows int64
	for cur.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cur.Scan(vals); err != nil {
			return fmt.Errorf("scanning row %d: %w", rows, err)
		}
		clear(derived)
		if err := eval(root); err != nil {
			return err
		}
		rows++
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("iterating row source: %w", err)
	}

	if declared, known := l.src.RowCount(); known && declared != rows {
		return fmt.Errorf("row count mismatch: source declared %d rows, pass saw %d", declared, rows)
	}

	for _, a := range pending {
		v, err := a.acc.final()
		if err != nil {
			return err
		}
		a.value = v
		a.done = true
	}

	l.logger.Debug("evaluation pass complete", "run_id", runID, "rows", rows)
	return nil
}

// buildBindings computes, top-down, the name-resolution table for every
// participating node. Filter and alias nodes that add no value location
// share or extend their parent's table.
func buildBindings(root *Node, children map[int64][]*Node) map[int64]map[string]binding {
	binds := make(map[int64]map[string]binding)

	rootBind := make(map[string]binding, len(root.lin.src.ColumnNames()))
	for i, col := range root.lin.src.ColumnNames() {
		rootBind[col] = binding{colIdx: i}
	}
	binds[root.id] = rootBind

	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range children[n.id] {
			parent := binds[n.id]
			switch c.kind {
			case KindFilter:
				binds[c.id] = parent
			case KindDefine:
				b := make(map[string]binding, len(parent)+1)
				for k, v := range parent {
					b[k] = v
				}
				b[c.name] = binding{def: c}
				binds[c.id] = b
			case KindAlias:
				b := make(map[string]binding, len(parent)+1)
				for k, v := range parent {
					b[k] = v
				}
				b[c.name] = parent[c.target]
				binds[c.id] = b
			case KindSource:
				binds[c.id] = parent
			}
			walk(c)
		}
	}
	walk(root)
	return binds
}
