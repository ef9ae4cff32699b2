package search

// DepthStatus tells whether a depth produced a goal-reaching path.
type DepthStatus int

const (
	// NoPathAtDepth marks a depth that was searched without reaching the goal.
	NoPathAtDepth DepthStatus = iota
	// PathAtDepth marks the depth at which the goal was reached.
	PathAtDepth
)

func (s DepthStatus) String() string {
	if s == PathAtDepth {
		return "path"
	}
	return "no-path"
}

// DepthOutcome records what one depth produced.
type DepthOutcome[N comparable] struct {
	Depth  int
	Status DepthStatus
	Path   Path[N]
}

// DepthResult is the per-depth record of a DepthLimited run.
type DepthResult[N comparable] struct {
	// Outcomes has one entry per searched depth, starting at 0.
	Outcomes []DepthOutcome[N]

	// Best is the path of the first depth that reached the goal.
	Best Path[N]
}

// Found reports whether any depth reached the goal.
func (r DepthResult[N]) Found() bool { return r.Best.Found() }

// DepthLimited expands the frontier breadth-first, one depth at a time, up to
// MaxDepth (DefaultMaxDepth when unset). At every depth it keeps the most likely path into each node, so
// the goal entry of a depth is the maximum-likelihood path of that length.
// The shallowest depth that reaches the goal wins even if a deeper path
// would be more likely.
func DepthLimited[N comparable](g Graph[N], start, goal N, opts ...Option) (DepthResult[N], error) {
	var res DepthResult[N]
	o, err := buildOptions(opts)
	if err != nil {
		return res, err
	}
	if err := checkEndpoints(g, start, goal); err != nil {
		return res, err
	}

	root := &trail[N]{node: start, like: 1}
	if start == goal {
		res.Best = root.path()
		res.Outcomes = append(res.Outcomes, DepthOutcome[N]{Depth: 0, Status: PathAtDepth, Path: res.Best})
		return res, nil
	}
	res.Outcomes = append(res.Outcomes, DepthOutcome[N]{Depth: 0, Status: NoPathAtDepth})

	layer := []*trail[N]{root}
	b := budget{max: o.MaxExpansions}
	for d := 1; d <= o.layers(); d++ {
		if err := cancelled(o.Ctx); err != nil {
			return res, err
		}
		next, ok := advance(g, layer, &b, o.OnExpand)
		if !ok {
			return res, nil
		}
		if t, hit := next.best[goal]; hit {
			res.Best = t.path()
			res.Outcomes = append(res.Outcomes, DepthOutcome[N]{Depth: d, Status: PathAtDepth, Path: res.Best})
			return res, nil
		}
		res.Outcomes = append(res.Outcomes, DepthOutcome[N]{Depth: d, Status: NoPathAtDepth})
		if len(next.order) == 0 {
			break
		}
		layer = next.trails()
	}

	return res, nil
}

// frontierLayer is the set of nodes reachable in exactly one more step, each
// with its most likely trail.
type frontierLayer[N comparable] struct {
	best  map[N]*trail[N]
	order []N // first-reached order
}

func (l frontierLayer[N]) trails() []*trail[N] {
	out := make([]*trail[N], len(l.order))
	for i, n := range l.order {
		out[i] = l.best[n]
	}
	return out
}

// advance extends every trail by one edge. A strictly more likely trail
// replaces an earlier one; ties keep the first. ok is false once the
// expansion budget runs out.
func advance[N comparable](g Graph[N], layer []*trail[N], b *budget, onExpand func(int)) (frontierLayer[N], bool) {
	next := frontierLayer[N]{best: make(map[N]*trail[N])}
	for _, t := range layer {
		if !b.spend() {
			return next, false
		}
		onExpand(t.depth)
		for s, w := range g.Successors(t.node) {
			like := t.like * w
			if cur, ok := next.best[s]; ok {
				if like > cur.like {
					next.best[s] = &trail[N]{node: s, prev: t, depth: t.depth + 1, like: like}
				}
				continue
			}
			next.best[s] = &trail[N]{node: s, prev: t, depth: t.depth + 1, like: like}
			next.order = append(next.order, s)
		}
	}
	return next, true
}
