package search

import "container/heap"

// Dijkstra finds a shortest path from start to goal counting every edge as
// cost 1; edge probabilities only feed the returned Likelihood. Among equal
// length paths the one discovered first wins. start == goal returns [start].
//
// Complexity: O((V + E) log V) time, O(V) space, lazy decrease-key.
func Dijkstra[N comparable](g Graph[N], start, goal N, opts ...Option) (Path[N], error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Path[N]{}, err
	}
	if err := checkEndpoints(g, start, goal); err != nil {
		return Path[N]{}, err
	}

	r := &runner[N]{g: g, goal: goal, opts: o, best: make(map[N]*trail[N]), done: make(map[N]bool)}
	r.init(start)
	return r.process()
}

// runner holds the mutable state of one Dijkstra execution.
type runner[N comparable] struct {
	g    Graph[N]
	goal N
	opts Options
	best map[N]*trail[N] // current best trail per node
	done map[N]bool      // finalized nodes
	pq   nodePQ[N]
	seq  int
}

func (r *runner[N]) init(start N) {
	t := &trail[N]{node: start, like: 1}
	r.best[start] = t
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem[N]{t: t, seq: r.seq})
}

func (r *runner[N]) process() (Path[N], error) {
	b := budget{max: r.opts.MaxExpansions}
	for r.pq.Len() > 0 {
		if err := cancelled(r.opts.Ctx); err != nil {
			return Path[N]{}, err
		}
		item := heap.Pop(&r.pq).(*nodeItem[N])
		t := item.t
		if r.done[t.node] || r.best[t.node] != t {
			continue // stale entry
		}
		if t.node == r.goal {
			return t.path(), nil
		}
		r.done[t.node] = true
		if !b.spend() {
			return Path[N]{}, nil
		}
		r.opts.OnExpand(t.depth)
		if r.opts.MaxDepth > 0 && t.depth >= r.opts.MaxDepth {
			continue
		}
		r.relax(t)
	}

	return Path[N]{}, nil
}

func (r *runner[N]) relax(t *trail[N]) {
	for s, w := range r.g.Successors(t.node) {
		if r.done[s] {
			continue
		}
		if old, ok := r.best[s]; ok && old.depth <= t.depth+1 {
			continue
		}
		next := &trail[N]{node: s, prev: t, depth: t.depth + 1, like: t.like * w}
		r.best[s] = next
		r.seq++
		heap.Push(&r.pq, &nodeItem[N]{t: next, seq: r.seq})
	}
}

// nodeItem is a heap entry; seq breaks distance ties in discovery order.
type nodeItem[N comparable] struct {
	t   *trail[N]
	seq int
}

// nodePQ implements heap.Interface as a min-heap on (depth, seq).
type nodePQ[N comparable] []*nodeItem[N]

func (pq nodePQ[N]) Len() int { return len(pq) }

func (pq nodePQ[N]) Less(i, j int) bool {
	if pq[i].t.depth != pq[j].t.depth {
		return pq[i].t.depth < pq[j].t.depth
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ[N]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ[N]) Push(x any) { *pq = append(*pq, x.(*nodeItem[N])) }

func (pq *nodePQ[N]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
