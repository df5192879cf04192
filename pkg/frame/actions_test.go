package frame_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapframe/pkg/catalog"
	"github.com/leapstack-labs/leapframe/pkg/frame"
)

func numbersFrame(t *testing.T) *frame.Frame {
	t.Helper()
	cat := catalog.NewMemory()
	cat.Add("n", []string{"v"}, [][]any{
		{int64(1)}, {int64(2)}, {int64(3)}, {int64(4)},
	})
	f, err := frame.Open("n", cat)
	require.NoError(t, err)
	return f
}

func TestTake(t *testing.T) {
	f := numbersFrame(t)

	f, err := f.Filter(func(r frame.Row) bool { return r.Get("v").(int64) > 2 })
	require.NoError(t, err)

	res, err := f.Take("v")
	require.NoError(t, err)

	vals, err := res.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3), int64(4)}, vals)
}

func TestTakeUnknownColumn(t *testing.T) {
	f := numbersFrame(t)

	_, err := f.Take("missing")
	require.Error(t, err)
	assert.True(t, frame.IsUsageError(err))
}

func TestHead(t *testing.T) {
	f := numbersFrame(t)

	res := f.Head(2)
	rows, err := res.Value(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0]["v"])
	assert.Equal(t, int64(2), rows[1]["v"])
}

func TestHeadDoesNotStarveSiblings(t *testing.T) {
	f := numbersFrame(t)

	head := f.Head(1)
	count := f.Count()

	rows, err := head.Value(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// The pass consumed every row even though head stopped collecting.
	n, err := count.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestNumericReductions(t *testing.T) {
	ctx := context.Background()
	f := numbersFrame(t)

	sum, err := f.Sum("v")
	require.NoError(t, err)
	mean, err := f.Mean("v")
	require.NoError(t, err)
	minr, err := f.Min("v")
	require.NoError(t, err)
	maxr, err := f.Max("v")
	require.NoError(t, err)

	v, err := sum.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(10), v)

	v, err = mean.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(2.5), v)

	v, err = minr.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1), v)

	v, err = maxr.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(4), v)
}

func TestReductionOverDefinedColumn(t *testing.T) {
	f := frame.FromRange(3)

	f, err := f.Define("one", func(frame.Row) any { return int64(1) })
	require.NoError(t, err)

	sum, err := f.Sum("one")
	require.NoError(t, err)

	v, err := sum.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(3), v)
}

func TestNonNumericReductionIsFatal(t *testing.T) {
	cat := catalog.NewMemory()
	cat.Add("s", []string{"v"}, [][]any{{"text"}})

	f, err := frame.Open("s", cat)
	require.NoError(t, err)

	sum, err := f.Sum("v")
	require.NoError(t, err)
	count := f.Count()

	_, err = sum.Value(context.Background())
	require.Error(t, err)

	// The failure poisons the lineage for the sibling action too.
	_, err = count.Value(context.Background())
	require.Error(t, err)
}

func TestForeach(t *testing.T) {
	f := numbersFrame(t)

	var seen []int64
	res, err := f.Foreach(func(r frame.Row) {
		seen = append(seen, r.Get("v").(int64))
	})
	require.NoError(t, err)

	_, err = res.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, seen)
}

func TestSiblingDefinesWithSameName(t *testing.T) {
	ctx := context.Background()
	f := numbersFrame(t)

	left, err := f.Define("x", func(r frame.Row) any { return r.Get("v").(int64) + 100 })
	require.NoError(t, err)
	right, err := f.Define("x", func(r frame.Row) any { return r.Get("v").(int64) * -1 })
	require.NoError(t, err)

	lt, err := left.Take("x")
	require.NoError(t, err)
	rt, err := right.Take("x")
	require.NoError(t, err)

	lv, err := lt.Value(ctx)
	require.NoError(t, err)
	rv, err := rt.Value(ctx)
	require.NoError(t, err)

	assert.Equal(t, []any{int64(101), int64(102), int64(103), int64(104)}, lv)
	assert.Equal(t, []any{int64(-1), int64(-2), int64(-3), int64(-4)}, rv)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := numbersFrame(t)

	f, err := f.Filter(func(r frame.Row) bool { return r.Get("v").(int64)%2 == 0 })
	require.NoError(t, err)
	f, err = f.Define("double", func(r frame.Row) any { return r.Get("v").(int64) * 2 })
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "even.parquet")
	snap, err := f.Snapshot(ctx, path)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"v", "double"}, snap.ColumnNames())

	n, err := snap.Count().Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	vals, err := snap.Take("double")
	require.NoError(t, err)
	got, err := vals.Value(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{int64(4), int64(8)}, got)
}

func TestSnapshotUnknownColumn(t *testing.T) {
	f := numbersFrame(t)

	_, err := f.Snapshot(context.Background(), filepath.Join(t.TempDir(), "x.parquet"), "missing")
	require.Error(t, err)
	assert.True(t, frame.IsUsageError(err))
}
