package combinatoric

import (
	"fmt"

	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/search"
)

func (g *Graph) checkNodes(start, goal Node) error {
	if start.bones != g.bones {
		return fmt.Errorf("start %s: %w", start, ErrForeignNode)
	}
	if goal.bones != g.bones {
		return fmt.Errorf("goal %s: %w", goal, ErrForeignNode)
	}
	return nil
}

// BestFirst searches the product graph guided by ArrivalHeuristic.
func (g *Graph) BestFirst(start, goal Node, opts ...search.Option) (search.Path[Node], error) {
	if err := g.checkNodes(start, goal); err != nil {
		return search.Path[Node]{}, err
	}
	return search.BestFirst[Node](g, start, goal, g.ArrivalHeuristic(goal), opts...)
}

// DepthLimited runs the layered maximum-likelihood search on the product
// graph.
func (g *Graph) DepthLimited(start, goal Node, opts ...search.Option) (search.DepthResult[Node], error) {
	if err := g.checkNodes(start, goal); err != nil {
		return search.DepthResult[Node]{}, err
	}
	return search.DepthLimited[Node](g, start, goal, opts...)
}

// Parallel searches every bone graph in lockstep and zips the per-bone
// paths into one joint path. The zero Path means no synchronized arrival.
func (g *Graph) Parallel(start, goal Node, opts ...search.Option) (search.Path[Node], error) {
	if err := g.checkNodes(start, goal); err != nil {
		return search.Path[Node]{}, err
	}
	k := len(g.bones.graphs)
	graphs := make([]search.Graph[cspace.CellID], k)
	starts := make([]cspace.CellID, k)
	goals := make([]cspace.CellID, k)
	for i, bg := range g.bones.graphs {
		graphs[i] = bg
		starts[i] = start.at(i)
		goals[i] = goal.at(i)
	}

	paths, err := search.ParallelBFS(graphs, starts, goals, opts...)
	if err != nil || paths == nil {
		return search.Path[Node]{}, err
	}

	steps := len(paths[0].Nodes)
	out := search.Path[Node]{Nodes: make([]Node, steps), Likelihood: 1}
	ids := make([]cspace.CellID, k)
	for s := 0; s < steps; s++ {
		for i := range paths {
			ids[i] = paths[i].Nodes[s]
		}
		out.Nodes[s] = Node{bones: g.bones, cells: pack(ids)}
	}
	for _, p := range paths {
		out.Likelihood *= p.Likelihood
	}
	return out, nil
}
