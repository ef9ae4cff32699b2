package search

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
)

// frontierItem is one best-first frontier entry.
type frontierItem[N comparable] struct {
	t   *trail[N]
	f   float64
	seq uint64
}

// byCostThenSeq orders the frontier by f = g + h, then by push order so
// equal-cost entries expand in successor iteration order.
func byCostThenSeq[N comparable](a, b interface{}) int {
	x, y := a.(*frontierItem[N]), b.(*frontierItem[N])
	switch {
	case x.f < y.f:
		return -1
	case x.f > y.f:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	}
	return 0
}

// BestFirst expands the frontier node with the lowest g + h, where g is the
// path length so far and h the caller's heuristic. Nodes for which h reports
// false are pruned. Each node is expanded at most once.
func BestFirst[N comparable](g Graph[N], start, goal N, h Heuristic[N], opts ...Option) (Path[N], error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Path[N]{}, err
	}
	if err := checkEndpoints(g, start, goal); err != nil {
		return Path[N]{}, err
	}
	if start == goal {
		return Path[N]{Nodes: []N{start}, Likelihood: 1}, nil
	}
	h0, ok := h(start)
	if !ok {
		return Path[N]{}, nil
	}

	frontier := priorityqueue.NewWith(byCostThenSeq[N])
	var seq uint64
	frontier.Enqueue(&frontierItem[N]{t: &trail[N]{node: start, like: 1}, f: h0, seq: seq})

	closed := make(map[N]bool)
	depth := map[N]int{start: 0}
	b := budget{max: o.MaxExpansions}

	for !frontier.Empty() {
		if err := cancelled(o.Ctx); err != nil {
			return Path[N]{}, err
		}
		v, _ := frontier.Dequeue()
		t := v.(*frontierItem[N]).t
		if closed[t.node] {
			continue
		}
		if t.node == goal {
			return t.path(), nil
		}
		closed[t.node] = true
		if !b.spend() {
			return Path[N]{}, nil
		}
		o.OnExpand(t.depth)
		if o.MaxDepth > 0 && t.depth >= o.MaxDepth {
			continue
		}

		for s, w := range g.Successors(t.node) {
			if closed[s] {
				continue
			}
			d := t.depth + 1
			if old, ok := depth[s]; ok && old <= d {
				continue
			}
			hv, ok := h(s)
			if !ok {
				continue
			}
			depth[s] = d
			seq++
			frontier.Enqueue(&frontierItem[N]{
				t:   &trail[N]{node: s, prev: t, depth: d, like: t.like * w},
				f:   float64(d) + hv,
				seq: seq,
			})
		}
	}

	return Path[N]{}, nil
}
