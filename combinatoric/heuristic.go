package combinatoric

import (
	"fmt"

	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/search"
)

// distances maps every cell that can reach a goal to its edge count.
type distances map[cspace.CellID]int

// distancesTo returns unit-weight distances from every cell of bg to goal,
// memoized on the bone graph until it changes.
func distancesTo(bg *cspace.BoneGraph, goal cspace.CellID) distances {
	key := fmt.Sprintf("dist-to/%d", goal)
	return core.Cached(bg.Core(), key, func() distances {
		return reverseBFS(bg, goal)
	})
}

// reverseBFS walks incoming transitions from goal.
func reverseBFS(bg *cspace.BoneGraph, goal cspace.CellID) distances {
	preds := make(map[cspace.CellID][]cspace.CellID)
	for _, e := range bg.Edges() {
		preds[e.To] = append(preds[e.To], e.From)
	}
	dist := distances{goal: 0}
	queue := []cspace.CellID{goal}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range preds[cur] {
			if _, seen := dist[p]; seen {
				continue
			}
			dist[p] = dist[cur] + 1
			queue = append(queue, p)
		}
	}
	return dist
}

// ArrivalHeuristic estimates the remaining cost to goal as
//
//	h = Σ d_b + k · Σ d_b
//
// where d_b is the distance of bone b to its goal cell and k counts bones
// already at goal.
// A node with any bone unable to reach its goal is pruned.
func (g *Graph) ArrivalHeuristic(goal Node) search.Heuristic[Node] {
	tables := make([]distances, len(g.bones.graphs))
	for i, bg := range g.bones.graphs {
		tables[i] = distancesTo(bg, goal.at(i))
	}
	return func(n Node) (float64, bool) {
		sum, k := 0, 0
		for i, dist := range tables {
			d, ok := dist[n.at(i)]
			if !ok {
				return 0, false
			}
			if d == 0 {
				k++
			}
			sum += d
		}
		return float64(sum + k*sum), true
	}
}
