package combinatoric

import (
	"fmt"
	"iter"
	"slices"

	"github.com/katalvlaran/choreo/cspace"
)

// Graph is the product of per-bone graphs.
type Graph struct {
	bones *boneSet
}

// New returns the product graph of the given bones. Bones are ordered
// lexically by name.
func New(graphs map[string]*cspace.BoneGraph) (*Graph, error) {
	if len(graphs) == 0 {
		return nil, ErrNoBones
	}
	names := make([]string, 0, len(graphs))
	for name, bg := range graphs {
		if bg == nil {
			return nil, fmt.Errorf("bone %q: %w", name, ErrNilGraph)
		}
		names = append(names, name)
	}
	slices.Sort(names)

	bs := &boneSet{
		names:  names,
		graphs: make([]*cspace.BoneGraph, len(names)),
		pos:    make(map[string]int, len(names)),
	}
	for i, name := range names {
		bs.graphs[i] = graphs[name]
		bs.pos[name] = i
	}
	return &Graph{bones: bs}, nil
}

// Bones returns the bone names in node order.
func (g *Graph) Bones() []string { return slices.Clone(g.bones.names) }

// Bone returns the graph of the named bone.
func (g *Graph) Bone(name string) (*cspace.BoneGraph, bool) {
	i, ok := g.bones.pos[name]
	if !ok {
		return nil, false
	}
	return g.bones.graphs[i], true
}

// NewNode builds a node from bone → cell. Every bone must be present, and
// every cell must be a node of its bone graph.
func (g *Graph) NewNode(cells map[string]cspace.CellID) (Node, error) {
	for name := range cells {
		if _, ok := g.bones.pos[name]; !ok {
			return Node{}, fmt.Errorf("bone %q: %w", name, ErrUnknownBone)
		}
	}
	ids := make([]cspace.CellID, len(g.bones.names))
	for i, name := range g.bones.names {
		id, ok := cells[name]
		if !ok {
			return Node{}, fmt.Errorf("bone %q: %w", name, ErrMissingBone)
		}
		if !g.bones.graphs[i].Contains(id) {
			return Node{}, fmt.Errorf("bone %q cell %d: %w", name, id, cspace.ErrCellNotFound)
		}
		ids[i] = id
	}
	return Node{bones: g.bones, cells: pack(ids)}, nil
}

// Contains reports whether n belongs to g and every cell is a node of its
// bone graph.
func (g *Graph) Contains(n Node) bool {
	if n.bones != g.bones {
		return false
	}
	for i, bg := range g.bones.graphs {
		if !bg.Contains(n.at(i)) {
			return false
		}
	}
	return true
}

// Query lazily yields every successor of n: the cross product of per-bone
// successors, last bone varying fastest. Each call restarts the walk.
func (g *Graph) Query(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for s := range g.Successors(n) {
			if !yield(s) {
				return
			}
		}
	}
}

// Successors yields every successor of n with the joint probability, the
// product of the per-bone transition weights.
func (g *Graph) Successors(n Node) iter.Seq2[Node, float64] {
	return func(yield func(Node, float64) bool) {
		if n.bones != g.bones {
			return
		}
		k := len(g.bones.graphs)
		ids := make([][]cspace.CellID, k)
		ws := make([][]float64, k)
		for i, bg := range g.bones.graphs {
			for s, w := range bg.Successors(n.at(i)) {
				ids[i] = append(ids[i], s)
				ws[i] = append(ws[i], w)
			}
			if len(ids[i]) == 0 {
				return
			}
		}

		odo := make([]int, k)
		cur := make([]cspace.CellID, k)
		for {
			p := 1.0
			for i, j := range odo {
				cur[i] = ids[i][j]
				p *= ws[i][j]
			}
			if !yield(Node{bones: g.bones, cells: pack(cur)}, p) {
				return
			}
			i := k - 1
			for ; i >= 0; i-- {
				odo[i]++
				if odo[i] < len(ids[i]) {
					break
				}
				odo[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}
