// Package colreg tracks the column namespace visible at each node of a
// frame's computation graph. Every snapshot is immutable: it records its
// parent plus at most one incremental edit (a defined column or an alias),
// so sibling branches extending the same parent never see each other's names.
package colreg

import (
	"errors"
	"fmt"
	"strings"
)

// InternalPrefix marks reserved column names. Names carrying the prefix are
// hidden from listings but remain valid in definitions, aliases and filters.
const InternalPrefix = "__lf_"

// Kind classifies how a column name entered the namespace.
type Kind int

const (
	// Original names come from the row source's declared columns.
	Original Kind = iota
	// Derived names are added by a define operation.
	Derived
	// Alias names refer to an existing original or derived column.
	Alias
)

// String returns the lower-case kind label.
func (k Kind) String() string {
	switch k {
	case Original:
		return "original"
	case Derived:
		return "derived"
	case Alias:
		return "alias"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrEmptyName is returned when a define or alias names the empty string.
var ErrEmptyName = errors.New("column name is empty")

// DuplicateNameError reports a name that already exists in the snapshot.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("column %q already exists", e.Name)
}

// UnknownColumnError reports a name absent from the snapshot.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Name)
}

// Snapshot is an immutable view of the column namespace at one graph node.
// The zero value is not usable; build snapshots with NewRoot and extend them
// with Define and Alias.
type Snapshot struct {
	parent *Snapshot

	// roots holds the source's declared columns; set on the root snapshot only.
	roots []string

	// name/kind/target describe the single edit this snapshot adds.
	name   string
	kind   Kind
	target string
}

// NewRoot creates the root snapshot over the source's declared columns.
func NewRoot(columns []string) *Snapshot {
	roots := make([]string, len(columns))
	copy(roots, columns)
	return &Snapshot{roots: roots}
}

// Define returns a child snapshot with name registered as a derived column.
func (s *Snapshot) Define(name string) (*Snapshot, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, ok := s.Lookup(name); ok {
		return nil, &DuplicateNameError{Name: name}
	}
	return &Snapshot{parent: s, name: name, kind: Derived}, nil
}

// Alias returns a child snapshot with newName registered as an alias of
// existing. The referent is checked before the new name so that an absent
// source column is reported even when the target name is also taken.
func (s *Snapshot) Alias(newName, existing string) (*Snapshot, error) {
	if newName == "" || existing == "" {
		return nil, ErrEmptyName
	}
	if _, ok := s.Lookup(existing); !ok {
		return nil, &UnknownColumnError{Name: existing}
	}
	if _, ok := s.Lookup(newName); ok {
		return nil, &DuplicateNameError{Name: newName}
	}
	return &Snapshot{parent: s, name: newName, kind: Alias, target: existing}, nil
}

// Lookup reports whether name is visible in this snapshot and how it entered.
func (s *Snapshot) Lookup(name string) (Kind, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name != "" && cur.name == name {
			return cur.kind, true
		}
		for _, c := range cur.roots {
			if c == name {
				return Original, true
			}
		}
	}
	return Original, false
}

// Resolve follows alias links until it reaches an original or derived column
// and returns that canonical name. A non-alias name resolves to itself.
func (s *Snapshot) Resolve(name string) (string, bool) {
	kind, ok := s.Lookup(name)
	if !ok {
		return "", false
	}
	for kind == Alias {
		name = s.aliasTarget(name)
		kind, ok = s.Lookup(name)
		if !ok {
			return "", false
		}
	}
	return name, true
}

// aliasTarget returns the direct referent of an alias name.
func (s *Snapshot) aliasTarget(name string) string {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.kind == Alias && cur.name == name {
			return cur.target
		}
	}
	return ""
}

// Target returns the direct referent when name is an alias in this snapshot.
func (s *Snapshot) Target(name string) (string, bool) {
	kind, ok := s.Lookup(name)
	if !ok || kind != Alias {
		return "", false
	}
	return s.aliasTarget(name), true
}

// Names returns every visible column name in registration order: the
// source's declared columns first, then user-added names in the order they
// were introduced. Names carrying InternalPrefix are omitted.
func (s *Snapshot) Names() []string {
	all := s.allNames()
	names := make([]string, 0, len(all))
	for _, n := range all {
		if strings.HasPrefix(n, InternalPrefix) {
			continue
		}
		names = append(names, n)
	}
	return names
}

// DerivedNames returns the user-defined (derived) names in definition order,
// with InternalPrefix names omitted.
func (s *Snapshot) DerivedNames() []string {
	var names []string
	for _, e := range s.edits() {
		if e.kind == Derived && !strings.HasPrefix(e.name, InternalPrefix) {
			names = append(names, e.name)
		}
	}
	return names
}

// allNames returns every name, hidden ones included, in registration order.
func (s *Snapshot) allNames() []string {
	edits := s.edits()
	root := s
	for root.parent != nil {
		root = root.parent
	}
	names := make([]string, 0, len(root.roots)+len(edits))
	names = append(names, root.roots...)
	for _, e := range edits {
		names = append(names, e.name)
	}
	return names
}

type edit struct {
	name   string
	kind   Kind
	target string
}

// edits returns the incremental edits from the root down to this snapshot,
// oldest first.
func (s *Snapshot) edits() []edit {
	var rev []edit
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name != "" {
			rev = append(rev, edit{name: cur.name, kind: cur.kind, target: cur.target})
		}
	}
	edits := make([]edit, len(rev))
	for i, e := range rev {
		edits[len(rev)-1-i] = e
	}
	return edits
}
