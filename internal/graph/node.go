// Package graph implements the lazy computation graph behind a frame: a DAG
// of column operations built incrementally and evaluated in a single pass
// over the row source when the first attached action is observed.
package graph

import (
	"log/slog"

	"github.com/leapstack-labs/leapframe/internal/colreg"
	"github.com/leapstack-labs/leapframe/pkg/source"
)

// NodeKind identifies the operation a node performs.
type NodeKind int

const (
	// KindSource is the root node reading the row source.
	KindSource NodeKind = iota
	// KindFilter drops rows for which the predicate is false.
	KindFilter
	// KindDefine adds a derived column computed per row.
	KindDefine
	// KindAlias introduces a new name for an existing column.
	KindAlias
)

// String returns the lower-case kind label.
func (k NodeKind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindFilter:
		return "filter"
	case KindDefine:
		return "define"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// Predicate decides whether a row survives a filter node.
type Predicate func(*RowView) bool

// Generator computes a derived column's value for a row.
type Generator func(*RowView) any

// Node is one operation in the computation graph. Nodes are immutable after
// creation; a parent may be referenced by any number of children, so forking
// the graph is building two children off the same node. Children are never
// recorded on the parent — fan-out is discovered at evaluation time from the
// pending actions' ancestor chains.
type Node struct {
	id     int64
	kind   NodeKind
	parent *Node
	lin    *Lineage
	cols   *colreg.Snapshot

	// name and target describe the binding a define or alias node adds.
	name   string
	target string

	pred Predicate
	gen  Generator
}

// NewLineage creates a fresh lineage over src and returns its root source
// node. The logger may be nil.
func NewLineage(src source.Source, logger *slog.Logger) *Node {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	lin := &Lineage{src: src, logger: logger}
	root := &Node{
		id:   lin.nextNodeID(),
		kind: KindSource,
		lin:  lin,
		cols: colreg.NewRoot(src.ColumnNames()),
	}
	return root
}

// Columns returns the namespace snapshot visible at this node.
func (n *Node) Columns() *colreg.Snapshot {
	return n.cols
}

// Kind returns the node's operation kind.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Binding returns the name a define or alias node introduced and, for an
// alias, its referent.
func (n *Node) Binding() (name, target string) {
	return n.name, n.target
}

// Filter returns a child node that drops rows failing pred. The namespace is
// carried over unchanged.
func (n *Node) Filter(pred Predicate) *Node {
	return &Node{
		id:     n.lin.nextNodeID(),
		kind:   KindFilter,
		parent: n,
		lin:    n.lin,
		cols:   n.cols,
		pred:   pred,
	}
}

// Define returns a child node adding a derived column. The name must not be
// visible on this node's branch.
func (n *Node) Define(name string, gen Generator) (*Node, error) {
	cols, err := n.cols.Define(name)
	if err != nil {
		return nil, err
	}
	return &Node{
		id:     n.lin.nextNodeID(),
		kind:   KindDefine,
		parent: n,
		lin:    n.lin,
		cols:   cols,
		name:   name,
		gen:    gen,
	}, nil
}

// Alias returns a child node registering newName for existing. Validation is
// decided purely against this node's own ancestor chain, so sibling branches
// may reuse names freely.
func (n *Node) Alias(newName, existing string) (*Node, error) {
	cols, err := n.cols.Alias(newName, existing)
	if err != nil {
		return nil, err
	}
	return &Node{
		id:     n.lin.nextNodeID(),
		kind:   KindAlias,
		parent: n,
		lin:    n.lin,
		cols:   cols,
		name:   newName,
		target: existing,
	}, nil
}
