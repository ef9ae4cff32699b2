package cspace_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/motion"
)

func buildElbow(t *testing.T) *cspace.BoneGraph {
	t.Helper()
	b, err := cspace.NewBuilder("elbow", 1, cspace.WithInterval(5))
	require.NoError(t, err)
	require.NoError(t, b.Ingest([][]float64{{10}, {10}, {15}, {15}}))
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuilder_ElbowScenario(t *testing.T) {
	g := buildElbow(t)
	c10, err := g.CellOf([]float64{10})
	require.NoError(t, err)
	c15, err := g.CellOf([]float64{17.5})
	require.NoError(t, err)

	cell, _ := g.Cell(c10)
	assert.Equal(t, []float64{10}, cell.Lower(g.Interval))
	cell, _ = g.Cell(c15)
	assert.Equal(t, []float64{15}, cell.Lower(g.Interval))

	want := []struct {
		from, to cspace.CellID
		count    int
		weight   float64
	}{
		{c10, c10, 1, 0.5},
		{c10, c15, 1, 0.5},
		{c15, c15, 1, 1.0},
	}
	require.Len(t, g.Edges(), len(want))
	for _, w := range want {
		e, ok := g.Edge(w.from, w.to)
		require.True(t, ok, "%d->%d", w.from, w.to)
		assert.Equal(t, w.count, e.Count)
		assert.InDelta(t, w.weight, e.Weight, 1e-12)
	}
}

func TestBuilder_VisitIncrementsAcrossClips(t *testing.T) {
	b, err := cspace.NewBuilder("knee", 1)
	require.NoError(t, err)
	require.NoError(t, b.Ingest([][]float64{{0}, {6}}))
	require.NoError(t, b.Ingest([][]float64{{1}, {9}, {2}}))
	g, err := b.Build()
	require.NoError(t, err)

	c0, _ := g.CellOf([]float64{0})
	c5, _ := g.CellOf([]float64{5})
	e, ok := g.Edge(c0, c5)
	require.True(t, ok)
	assert.Equal(t, 2, e.Count, "same cells across clips share one edge")
	back, ok := g.Edge(c5, c0)
	require.True(t, ok)
	assert.Equal(t, 1, back.Count)
	_, ok = g.Edge(c0, c0)
	assert.False(t, ok, "clips are not stitched together")
}

func TestNormalizeAngle(t *testing.T) {
	cases := map[float64]float64{
		0: 0, 360: 0, 720: 0, -90: 270, 370: 10, -360: 0, 359.5: 359.5, -1e-15: 0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, cspace.NormalizeAngle(in), 1e-9, "in=%g", in)
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 10000; i++ {
		a := (rng.Float64() - 0.5) * 1e5
		n := cspace.NormalizeAngle(a)
		require.GreaterOrEqual(t, n, 0.0)
		require.Less(t, n, 360.0)
	}
}

func TestQuantize(t *testing.T) {
	idx, err := cspace.Quantize([]float64{-0.5, 359.999, 725, 5}, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{71, 71, 1, 1}, idx)

	_, err = cspace.Quantize([]float64{math.NaN()}, 5)
	assert.ErrorIs(t, err, cspace.ErrNonFinite)

	c := cspace.Cell{Index: []int{2}}
	assert.True(t, c.Contains([]float64{370}, 5))
	assert.False(t, c.Contains([]float64{15}, 5))
	assert.Equal(t, []float64{12.5}, c.Center(5))
	assert.Equal(t, []float64{15}, c.Upper(5))
}

func TestBuilder_WeightsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b, err := cspace.NewBuilder("shoulder", 2, cspace.WithInterval(30))
	require.NoError(t, err)
	for clip := 0; clip < 5; clip++ {
		frames := make([][]float64, 200)
		x, y := rng.Float64()*360, rng.Float64()*360
		for i := range frames {
			x += rng.NormFloat64() * 20
			y += rng.NormFloat64() * 20
			frames[i] = []float64{x, y}
		}
		require.NoError(t, b.Ingest(frames))
	}
	g, err := b.Build()
	require.NoError(t, err)

	for _, n := range g.Nodes() {
		sum, seen := 0.0, false
		for _, w := range g.Successors(n) {
			sum += w
			seen = true
		}
		if seen {
			assert.InDelta(t, 1.0, sum, 1e-9, "cell %d", n)
		}
	}
}

func TestBuilder_Preconditions(t *testing.T) {
	_, err := cspace.NewBuilder("end", 0)
	assert.ErrorIs(t, err, cspace.ErrZeroDOF)
	assert.ErrorIs(t, err, core.ErrPrecondition)

	b, err := cspace.NewBuilder("elbow", 1)
	require.NoError(t, err)
	err = b.Ingest([][]float64{{1}, {1, 2}})
	assert.ErrorIs(t, err, motion.ErrDOFMismatch)

	_, err = b.Build()
	require.NoError(t, err)
	assert.ErrorIs(t, b.Ingest([][]float64{{1}}), cspace.ErrSealed)
	_, err = b.Build()
	assert.ErrorIs(t, err, cspace.ErrSealed)

	assert.Panics(t, func() { cspace.WithInterval(0) })
	assert.Panics(t, func() { cspace.WithWorkers(0) })
}

func TestBoneGraph_CellOf(t *testing.T) {
	g := buildElbow(t)
	_, err := g.CellOf([]float64{100})
	assert.ErrorIs(t, err, cspace.ErrCellNotFound)
	_, err = g.CellOf([]float64{1, 2})
	assert.ErrorIs(t, err, motion.ErrDOFMismatch)

	c, err := g.CellOf([]float64{12})
	require.NoError(t, err)
	center, err := g.Center(c)
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5}, center)
}

func TestCellTable_SharedAcrossBuilders(t *testing.T) {
	table := cspace.NewCellTable()
	a, err := cspace.NewBuilder("a", 1, cspace.WithCellTable(table))
	require.NoError(t, err)
	b, err := cspace.NewBuilder("b", 1, cspace.WithCellTable(table))
	require.NoError(t, err)
	require.NoError(t, a.Ingest([][]float64{{10}, {20}}))
	require.NoError(t, b.Ingest([][]float64{{20}, {10}}))
	ga, _ := a.Build()
	gb, _ := b.Build()

	ca, _ := ga.CellOf([]float64{10})
	cb, _ := gb.CellOf([]float64{10})
	assert.Equal(t, ca, cb)
	assert.Equal(t, 2, table.Len())
}

func testCorpus() motion.Corpus {
	return motion.Corpus{
		Skeleton: motion.Skeleton{Bones: []motion.Bone{
			{Name: "hips", Channels: []string{"Xposition", "Yposition", "Zposition", "Zrotation"}},
			{Name: "elbow", Parent: "hips", Channels: []string{"Zrotation"}},
			{Name: "hand", Parent: "elbow"},
		}},
		Clips: []motion.Clip{{
			Name: "reach",
			Frames: []motion.Frame{
				{"hips": {0, 0, 0, 0}, "elbow": {10}},
				{"hips": {1, 0, 0, 0}, "elbow": {10}},
				{"hips": {2, 0, 0, 5}, "elbow": {15}},
				{"hips": {3, 0, 0, 5}, "elbow": {15}},
			},
		}},
	}
}

func TestBuildAll_SkipsZeroDOF(t *testing.T) {
	c := testCorpus()
	graphs, err := cspace.BuildAll(context.Background(), c.Skeleton, c.Clips, cspace.WithWorkers(2))
	require.NoError(t, err)
	assert.Len(t, graphs, 2)
	assert.Contains(t, graphs, "hips")
	assert.Contains(t, graphs, "elbow")
	assert.NotContains(t, graphs, "hand")
	assert.Equal(t, 1, graphs["hips"].DOF, "translation channels are not graphed")
}

func TestBuildAll_Cancelled(t *testing.T) {
	c := testCorpus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cspace.BuildAll(ctx, c.Skeleton, c.Clips)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBayesTables(t *testing.T) {
	c := testCorpus()
	graphs, err := cspace.BuildAll(context.Background(), c.Skeleton, c.Clips)
	require.NoError(t, err)
	tables, err := cspace.BuildBayesTables(c.Skeleton, c.Clips, graphs)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	bt := tables[0]
	assert.Equal(t, "hips", bt.Parent)
	assert.Equal(t, "elbow", bt.Child)

	h0, _ := graphs["hips"].CellOf([]float64{0})
	h5, _ := graphs["hips"].CellOf([]float64{5})
	e10, _ := graphs["elbow"].CellOf([]float64{10})
	e15, _ := graphs["elbow"].CellOf([]float64{15})
	assert.Equal(t, 1.0, bt.Probability(h0, e10))
	assert.Equal(t, 1.0, bt.Probability(h5, e15))
	assert.Equal(t, 0.0, bt.Probability(h0, e15))

	entries := bt.Entries()
	assert.Equal(t, []cspace.BayesEntry{
		{Parent: []int{0}, Child: []int{2}, Probability: 1},
		{Parent: []int{1}, Child: []int{3}, Probability: 1},
	}, entries)

	back, err := cspace.RestoreBayes(graphs["hips"], graphs["elbow"], entries)
	require.NoError(t, err)
	assert.Equal(t, entries, back.Entries())
	assert.Equal(t, 2, back.Len())
	assert.ErrorIs(t, back.Observe([]float64{0}, []float64{10}), cspace.ErrSealed)
	assert.Equal(t, 1.0, back.Probability(h0, e10))

	_, err = cspace.RestoreBayes(graphs["hips"], graphs["elbow"], []cspace.BayesEntry{{Parent: []int{40}, Child: []int{2}}})
	assert.ErrorIs(t, err, cspace.ErrCellNotFound)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	g := buildElbow(t)
	snap := g.Snapshot()
	assert.Equal(t, [][]int{{2}, {3}}, snap.Cells)
	require.Len(t, snap.Edges, 3)

	back, err := cspace.Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, snap, back.Snapshot())

	c10, err := back.CellOf([]float64{10})
	require.NoError(t, err)
	var weights []float64
	for _, w := range back.Successors(c10) {
		weights = append(weights, w)
	}
	assert.Equal(t, []float64{0.5, 0.5}, weights)

	_, err = cspace.Restore(cspace.Snapshot{Name: "x", DOF: 0, Interval: 5})
	assert.ErrorIs(t, err, cspace.ErrZeroDOF)
}
