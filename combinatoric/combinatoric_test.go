package combinatoric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/choreo/combinatoric"
	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/search"
)

func buildBone(t *testing.T, name string, clip [][]float64) *cspace.BoneGraph {
	t.Helper()
	b, err := cspace.NewBuilder(name, 1)
	require.NoError(t, err)
	require.NoError(t, b.Ingest(clip))
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func cellOf(t *testing.T, bg *cspace.BoneGraph, deg float64) cspace.CellID {
	t.Helper()
	id, err := bg.CellOf([]float64{deg})
	require.NoError(t, err)
	return id
}

// fixture: "arm" cell 0 branches to cells 1 and 2, cell 1 returns to 0.
// "leg" cell 0 branches to cells 1, 2 and 3, cells 1 and 2 return to 0.
type fixture struct {
	g        *combinatoric.Graph
	arm, leg *cspace.BoneGraph
}

func newFixture(t *testing.T) fixture {
	arm := buildBone(t, "arm", [][]float64{{2.5}, {7.5}, {2.5}, {12.5}})
	leg := buildBone(t, "leg", [][]float64{{2.5}, {7.5}, {2.5}, {12.5}, {2.5}, {17.5}})
	g, err := combinatoric.New(map[string]*cspace.BoneGraph{"leg": leg, "arm": arm})
	require.NoError(t, err)
	return fixture{g: g, arm: arm, leg: leg}
}

func (f fixture) node(t *testing.T, armDeg, legDeg float64) combinatoric.Node {
	t.Helper()
	n, err := f.g.NewNode(map[string]cspace.CellID{
		"arm": cellOf(t, f.arm, armDeg),
		"leg": cellOf(t, f.leg, legDeg),
	})
	require.NoError(t, err)
	return n
}

func TestNew_Preconditions(t *testing.T) {
	_, err := combinatoric.New(nil)
	assert.ErrorIs(t, err, combinatoric.ErrNoBones)
	assert.ErrorIs(t, err, core.ErrPrecondition)

	_, err = combinatoric.New(map[string]*cspace.BoneGraph{"arm": nil})
	assert.ErrorIs(t, err, combinatoric.ErrNilGraph)
}

func TestGraph_BonesSorted(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"arm", "leg"}, f.g.Bones())
	bg, ok := f.g.Bone("leg")
	require.True(t, ok)
	assert.Same(t, f.leg, bg)
}

func TestNewNode_Validation(t *testing.T) {
	f := newFixture(t)
	a0 := cellOf(t, f.arm, 2.5)

	_, err := f.g.NewNode(map[string]cspace.CellID{"arm": a0})
	assert.ErrorIs(t, err, combinatoric.ErrMissingBone)

	_, err = f.g.NewNode(map[string]cspace.CellID{"arm": a0, "leg": 0, "tail": 0})
	assert.ErrorIs(t, err, combinatoric.ErrUnknownBone)

	_, err = f.g.NewNode(map[string]cspace.CellID{"arm": a0, "leg": 99})
	assert.ErrorIs(t, err, cspace.ErrCellNotFound)
}

func TestNode_Accessors(t *testing.T) {
	f := newFixture(t)
	n := f.node(t, 7.5, 12.5)

	c, ok := n.Cell("leg")
	require.True(t, ok)
	assert.Equal(t, cellOf(t, f.leg, 12.5), c)
	_, ok = n.Cell("tail")
	assert.False(t, ok)

	assert.Equal(t, map[string]cspace.CellID{
		"arm": cellOf(t, f.arm, 7.5),
		"leg": cellOf(t, f.leg, 12.5),
	}, n.Cells())
	assert.Equal(t, "{arm:[1] leg:[2]}", n.String())
	assert.True(t, f.g.Contains(n))
	assert.False(t, f.g.Contains(combinatoric.Node{}))
	assert.Equal(t, n, f.node(t, 7.5, 12.5), "nodes are comparable values")
}

func TestQuery_CrossProduct(t *testing.T) {
	f := newFixture(t)
	start := f.node(t, 2.5, 2.5)

	var got []string
	seen := make(map[combinatoric.Node]bool)
	for n := range f.g.Query(start) {
		got = append(got, n.String())
		seen[n] = true
	}
	assert.Equal(t, []string{
		"{arm:[1] leg:[1]}", "{arm:[1] leg:[2]}", "{arm:[1] leg:[3]}",
		"{arm:[2] leg:[1]}", "{arm:[2] leg:[2]}", "{arm:[2] leg:[3]}",
	}, got, "last bone varies fastest")
	assert.Len(t, seen, 6)

	// Restartable.
	again := 0
	for range f.g.Query(start) {
		again++
	}
	assert.Equal(t, 6, again)

	total := 0.0
	for _, p := range f.g.Successors(start) {
		assert.InDelta(t, 0.5/3, p, 1e-12)
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestQuery_DeadEndBone(t *testing.T) {
	f := newFixture(t)
	stuck := f.node(t, 12.5, 2.5)
	for range f.g.Query(stuck) {
		t.Fatal("a bone without successors blocks the joint node")
	}
}

func TestArrivalHeuristic(t *testing.T) {
	f := newFixture(t)
	goal := f.node(t, 7.5, 7.5)
	h := f.g.ArrivalHeuristic(goal)

	v, ok := h(f.node(t, 2.5, 2.5))
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = h(f.node(t, 7.5, 2.5))
	require.True(t, ok)
	assert.Equal(t, 2.0, v, "one parked bone doubles the remaining distance")

	v, ok = h(goal)
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = h(f.node(t, 12.5, 2.5))
	assert.False(t, ok, "arm cell 2 cannot reach cell 1")
}

func TestJointSearches(t *testing.T) {
	f := newFixture(t)
	start := f.node(t, 2.5, 2.5)
	goal := f.node(t, 7.5, 7.5)

	p, err := f.g.BestFirst(start, goal)
	require.NoError(t, err)
	assert.Equal(t, []combinatoric.Node{start, goal}, p.Nodes)
	assert.InDelta(t, 0.5/3, p.Likelihood, 1e-12)

	res, err := f.g.DepthLimited(start, goal, search.WithMaxDepth(4))
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, 1, res.Best.Len())

	p, err = f.g.Parallel(start, goal)
	require.NoError(t, err)
	assert.Equal(t, []combinatoric.Node{start, goal}, p.Nodes)
	assert.InDelta(t, 0.5/3, p.Likelihood, 1e-12)

	// The arm is back at cell 0 only after an even number of steps while
	// the leg reaches cell 2 only after an odd number.
	offbeat := f.node(t, 2.5, 12.5)
	p, err = f.g.Parallel(start, offbeat)
	require.NoError(t, err)
	assert.False(t, p.Found())

	p, err = f.g.BestFirst(offbeat, goal)
	require.NoError(t, err)
	assert.False(t, p.Found())
}

func TestJointSearches_ForeignNode(t *testing.T) {
	f := newFixture(t)
	other := newFixture(t)

	_, err := f.g.BestFirst(f.node(t, 2.5, 2.5), other.node(t, 7.5, 7.5))
	assert.ErrorIs(t, err, combinatoric.ErrForeignNode)
	assert.ErrorIs(t, err, core.ErrPrecondition)
}
