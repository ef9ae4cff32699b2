package search_test

import (
	"context"
	"iter"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/search"
)

type arc struct {
	to string
	p  float64
}

// tinyGraph is an adjacency map with ordered successors.
type tinyGraph map[string][]arc

func (g tinyGraph) Contains(n string) bool {
	if _, ok := g[n]; ok {
		return true
	}
	for _, arcs := range g {
		for _, a := range arcs {
			if a.to == n {
				return true
			}
		}
	}
	return false
}

func (g tinyGraph) Successors(n string) iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, a := range g[n] {
			if !yield(a.to, a.p) {
				return
			}
		}
	}
}

// diamond: A splits evenly to B and C, both lead to D.
func diamond() tinyGraph {
	return tinyGraph{
		"A": {{"B", 0.5}, {"C", 0.5}},
		"B": {{"D", 1}},
		"C": {{"D", 1}},
	}
}

func zeroH(string) (float64, bool) { return 0, true }

func TestDijkstra_FirstDiscoveredWins(t *testing.T) {
	p, err := search.Dijkstra[string](diamond(), "A", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, p.Nodes)
	assert.InDelta(t, 0.5, p.Likelihood, 1e-12)
	assert.Equal(t, 2, p.Len())
}

func TestDijkstra_StartIsGoal(t *testing.T) {
	p, err := search.Dijkstra[string](diamond(), "B", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, p.Nodes)
	assert.Equal(t, 1.0, p.Likelihood)
	assert.Equal(t, 0, p.Len())
}

func TestDijkstra_NoPathIsNotAnError(t *testing.T) {
	p, err := search.Dijkstra[string](diamond(), "D", "A")
	require.NoError(t, err)
	assert.False(t, p.Found())
	assert.Equal(t, 0, p.Len())
}

func TestSearches_Preconditions(t *testing.T) {
	g := diamond()

	_, err := search.Dijkstra[string](g, "Z", "A")
	assert.ErrorIs(t, err, search.ErrStartNotFound)
	assert.ErrorIs(t, err, core.ErrPrecondition)

	_, err = search.BestFirst[string](g, "A", "Z", zeroH)
	assert.ErrorIs(t, err, search.ErrGoalNotFound)

	_, err = search.DepthLimited[string](g, "Z", "D")
	assert.ErrorIs(t, err, search.ErrStartNotFound)

	_, err = search.Reachable[string](g, "A", "Z")
	assert.ErrorIs(t, err, search.ErrGoalNotFound)

	_, err = search.ParallelBFS([]search.Graph[string]{g}, []string{"A"}, []string{"Z"})
	assert.ErrorIs(t, err, search.ErrGoalNotFound)
}

func TestOptions_Violations(t *testing.T) {
	g := diamond()

	_, err := search.Dijkstra[string](g, "A", "D", search.WithMaxDepth(-1))
	assert.ErrorIs(t, err, search.ErrOptionViolation)

	_, err = search.BestFirst[string](g, "A", "D", zeroH, search.WithMaxExpansions(-3))
	assert.ErrorIs(t, err, search.ErrOptionViolation)

	_, err = search.DepthLimited[string](g, "A", "D", search.WithMaxDepth(-1))
	assert.ErrorIs(t, err, search.ErrOptionViolation)

	_, err = search.ParallelBFS([]search.Graph[string]{g}, []string{"A"}, []string{"D"}, search.WithMaxDepth(-1))
	assert.ErrorIs(t, err, search.ErrOptionViolation)
}

// chain links "0" -> "1" -> ... -> strconv.Itoa(n).
func chain(n int) tinyGraph {
	g := make(tinyGraph, n)
	for i := 0; i < n; i++ {
		g[strconv.Itoa(i)] = []arc{{strconv.Itoa(i + 1), 1}}
	}
	return g
}

func TestLongChain_NoDefaultCap(t *testing.T) {
	g := chain(40)

	p, err := search.Dijkstra[string](g, "0", "40")
	require.NoError(t, err)
	require.True(t, p.Found())
	assert.Equal(t, 40, p.Len())

	p, err = search.BestFirst[string](g, "0", "40", zeroH)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Len())

	ok, err := search.Reachable[string](g, "0", "40")
	require.NoError(t, err)
	assert.True(t, ok)

	// Layered searches stop at DefaultMaxDepth unless told otherwise.
	res, err := search.DepthLimited[string](g, "0", "40")
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Len(t, res.Outcomes, search.DefaultMaxDepth+1)

	res, err = search.DepthLimited[string](g, "0", "40", search.WithMaxDepth(40))
	require.NoError(t, err)
	assert.Equal(t, 40, res.Best.Len())

	paths, err := search.ParallelBFS([]search.Graph[string]{g}, []string{"0"}, []string{"40"})
	require.NoError(t, err)
	assert.Nil(t, paths)

	paths, err = search.ParallelBFS([]search.Graph[string]{g}, []string{"0"}, []string{"40"}, search.WithMaxDepth(40))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, 40, paths[0].Len())
}

func TestDijkstra_MaxDepthAndBudget(t *testing.T) {
	g := diamond()

	p, err := search.Dijkstra[string](g, "A", "D", search.WithMaxDepth(1))
	require.NoError(t, err)
	assert.False(t, p.Found(), "D is two edges away")

	p, err = search.Dijkstra[string](g, "A", "D", search.WithMaxExpansions(1))
	require.NoError(t, err)
	assert.False(t, p.Found(), "one expansion cannot reach D")

	var depths []int
	p, err = search.Dijkstra[string](g, "A", "D", search.WithOnExpand(func(d int) { depths = append(depths, d) }))
	require.NoError(t, err)
	assert.True(t, p.Found())
	assert.Equal(t, []int{0, 1, 1}, depths)
}

func TestSearches_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := diamond()

	_, err := search.Dijkstra[string](g, "A", "D", search.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = search.BestFirst[string](g, "A", "D", zeroH, search.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = search.DepthLimited[string](g, "A", "D", search.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = search.Reachable[string](g, "A", "D", search.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBestFirst_TieBreakAndPruning(t *testing.T) {
	g := diamond()

	p, err := search.BestFirst[string](g, "A", "D", zeroH)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, p.Nodes)

	noB := func(n string) (float64, bool) { return 0, n != "B" }
	p, err = search.BestFirst[string](g, "A", "D", noB)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D"}, p.Nodes)

	never := func(string) (float64, bool) { return 0, false }
	p, err = search.BestFirst[string](g, "A", "D", never)
	require.NoError(t, err)
	assert.False(t, p.Found())
}

func TestBestFirst_HeuristicSteers(t *testing.T) {
	// Both branches reach G in two edges; h favours the second one.
	g := tinyGraph{
		"S": {{"L", 0.5}, {"R", 0.5}},
		"L": {{"G", 1}},
		"R": {{"G", 1}},
	}
	h := func(n string) (float64, bool) {
		if n == "L" {
			return 5, true
		}
		return 0, true
	}
	p, err := search.BestFirst[string](g, "S", "G", h)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "R", "G"}, p.Nodes)
}

func TestDepthLimited_ShallowestWins(t *testing.T) {
	// The direct edge is unlikely but shorter.
	g := tinyGraph{
		"S": {{"G", 0.1}, {"X", 0.9}},
		"X": {{"G", 1}},
	}
	res, err := search.DepthLimited[string](g, "S", "G", search.WithMaxDepth(4))
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, []string{"S", "G"}, res.Best.Nodes)
	assert.InDelta(t, 0.1, res.Best.Likelihood, 1e-12)

	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, search.NoPathAtDepth, res.Outcomes[0].Status)
	assert.Equal(t, search.PathAtDepth, res.Outcomes[1].Status)
	assert.Equal(t, "path", res.Outcomes[1].Status.String())
}

func TestDepthLimited_MostLikelyAtDepth(t *testing.T) {
	g := tinyGraph{
		"S": {{"X", 0.5}, {"Y", 0.5}},
		"X": {{"G", 0.2}},
		"Y": {{"G", 0.8}},
	}
	res, err := search.DepthLimited[string](g, "S", "G")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "Y", "G"}, res.Best.Nodes)
	assert.InDelta(t, 0.4, res.Best.Likelihood, 1e-12)
}

func TestDepthLimited_TooShallow(t *testing.T) {
	g := tinyGraph{
		"S": {{"A", 1}},
		"A": {{"B", 1}},
		"B": {{"G", 1}},
	}
	res, err := search.DepthLimited[string](g, "S", "G", search.WithMaxDepth(2))
	require.NoError(t, err)
	assert.False(t, res.Found())
	require.Len(t, res.Outcomes, 3)
	for d, o := range res.Outcomes {
		assert.Equal(t, d, o.Depth)
		assert.Equal(t, search.NoPathAtDepth, o.Status)
	}

	res, err = search.DepthLimited[string](g, "S", "S")
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, res.Best.Nodes)
}

func TestParallelBFS_SynchronizedArrival(t *testing.T) {
	chain := tinyGraph{"a0": {{"a1", 1}}, "a1": {{"a2", 1}}}
	hold := tinyGraph{"b0": {{"b1", 1}}, "b1": {{"b1", 1}}}

	paths, err := search.ParallelBFS(
		[]search.Graph[string]{chain, hold},
		[]string{"a0", "b0"},
		[]string{"a2", "b1"},
	)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, []string{"a0", "a1", "a2"}, paths[0].Nodes)
	assert.Equal(t, []string{"b0", "b1", "b1"}, paths[1].Nodes, "b must wait on its self-loop")
}

func TestParallelBFS_NoCommonDepth(t *testing.T) {
	chain := tinyGraph{"a0": {{"a1", 1}}, "a1": {{"a2", 1}}}
	dead := tinyGraph{"b0": {{"b1", 1}}}

	paths, err := search.ParallelBFS(
		[]search.Graph[string]{chain, dead},
		[]string{"a0", "b0"},
		[]string{"a2", "b1"},
	)
	require.NoError(t, err)
	assert.Nil(t, paths)

	// Unreachable goal is caught before any round.
	paths, err = search.ParallelBFS(
		[]search.Graph[string]{chain},
		[]string{"a2"},
		[]string{"a0"},
	)
	require.NoError(t, err)
	assert.Nil(t, paths)
}

func TestParallelBFS_Arity(t *testing.T) {
	g := diamond()
	_, err := search.ParallelBFS([]search.Graph[string]{g, g}, []string{"A"}, []string{"D", "D"})
	assert.ErrorIs(t, err, search.ErrArity)

	_, err = search.ParallelBFS[string](nil, nil, nil)
	assert.ErrorIs(t, err, search.ErrArity)
}

func TestReachable(t *testing.T) {
	g := diamond()

	ok, err := search.Reachable[string](g, "A", "D")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = search.Reachable[string](g, "D", "A")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = search.Reachable[string](g, "A", "D", search.WithMaxDepth(1))
	require.NoError(t, err)
	assert.False(t, ok)
}
