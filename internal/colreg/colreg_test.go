package colreg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootNames(t *testing.T) {
	snap := NewRoot([]string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, snap.Names())

	kind, ok := snap.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Original, kind)

	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}

func TestDefine(t *testing.T) {
	snap := NewRoot(nil)

	snap, err := snap.Define("c0")
	require.NoError(t, err)

	kind, ok := snap.Lookup("c0")
	require.True(t, ok)
	assert.Equal(t, Derived, kind)

	_, err = snap.Define("c0")
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "c0", dup.Name)

	_, err = snap.Define("")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAliasChain(t *testing.T) {
	snap := NewRoot(nil)

	snap, err := snap.Define("c0")
	require.NoError(t, err)
	snap, err = snap.Alias("c1", "c0")
	require.NoError(t, err)
	snap, err = snap.Alias("c2", "c0")
	require.NoError(t, err)
	snap, err = snap.Alias("c3", "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{"c0", "c1", "c2", "c3"}, snap.Names())

	// Alias of alias resolves hop by hop back to the derived column.
	canon, ok := snap.Resolve("c3")
	require.True(t, ok)
	assert.Equal(t, "c0", canon)

	target, ok := snap.Target("c3")
	require.True(t, ok)
	assert.Equal(t, "c1", target)
}

func TestAliasValidation(t *testing.T) {
	snap := NewRoot(nil)
	snap, err := snap.Define("c0")
	require.NoError(t, err)
	snap, err = snap.Alias("c1", "c0")
	require.NoError(t, err)

	tests := []struct {
		name     string
		newName  string
		existing string
		wantErr  any
	}{
		{"absent source", "c4", "missing", &UnknownColumnError{}},
		{"target taken by column", "c0", "c1", &DuplicateNameError{}},
		{"target taken by alias", "c1", "c0", &DuplicateNameError{}},
		{"duplicate pair on same branch", "c1", "c0", &DuplicateNameError{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := snap.Alias(tt.newName, tt.existing)
			require.Error(t, err)
			switch want := tt.wantErr.(type) {
			case *UnknownColumnError:
				assert.True(t, errors.As(err, &want))
			case *DuplicateNameError:
				assert.True(t, errors.As(err, &want))
			}
		})
	}
}

func TestAliasReferentCheckedFirst(t *testing.T) {
	snap := NewRoot([]string{"a"})

	// Both checks would fail; the absent referent wins.
	_, err := snap.Alias("a", "missing")
	var unknown *UnknownColumnError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)
}

func TestBranchIsolation(t *testing.T) {
	base := NewRoot([]string{"a", "b"})

	left, err := base.Alias("c1", "a")
	require.NoError(t, err)

	// The sibling branch never sees the left branch's alias and may claim
	// the same name for a different referent.
	_, ok := base.Lookup("c1")
	assert.False(t, ok)

	right, err := base.Alias("c1", "b")
	require.NoError(t, err)

	lc, ok := left.Resolve("c1")
	require.True(t, ok)
	rc, ok := right.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, "a", lc)
	assert.Equal(t, "b", rc)
}

func TestInternalPrefixHidden(t *testing.T) {
	snap := NewRoot([]string{"a"})

	snap, err := snap.Define(InternalPrefix + "tmp")
	require.NoError(t, err)
	snap, err = snap.Alias("b", InternalPrefix+"tmp")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, snap.Names())
	assert.Empty(t, snap.DerivedNames())

	// Hidden names stay usable.
	kind, ok := snap.Lookup(InternalPrefix + "tmp")
	require.True(t, ok)
	assert.Equal(t, Derived, kind)
}

func TestDerivedNames(t *testing.T) {
	snap := NewRoot([]string{"a"})
	snap, err := snap.Define("x")
	require.NoError(t, err)
	snap, err = snap.Alias("y", "x")
	require.NoError(t, err)
	snap, err = snap.Define("z")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "z"}, snap.DerivedNames())
	assert.Equal(t, []string{"a", "x", "y", "z"}, snap.Names())
}
