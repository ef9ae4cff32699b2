package search

import "fmt"

// ParallelBFS advances one frontier per graph by one edge per round and
// succeeds only in the first round in which every graph's frontier contains
// its goal. For each graph the most likely path of that length is returned.
// A nil slice with a nil error means no synchronized arrival exists within
// MaxDepth rounds (DefaultMaxDepth when unset).
func ParallelBFS[N comparable](graphs []Graph[N], starts, goals []N, opts ...Option) ([]Path[N], error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(graphs) == 0 || len(graphs) != len(starts) || len(graphs) != len(goals) {
		return nil, ErrArity
	}
	for i, g := range graphs {
		if err := checkEndpoints(g, starts[i], goals[i]); err != nil {
			return nil, fmt.Errorf("graph %d: %w", i, err)
		}
	}

	// Fail fast when some goal is unreachable within the round limit.
	for i, g := range graphs {
		ok, err := Reachable(g, starts[i], goals[i], WithContext(o.Ctx), WithMaxDepth(o.layers()))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}

	layers := make([][]*trail[N], len(graphs))
	arrived := true
	for i := range graphs {
		root := &trail[N]{node: starts[i], like: 1}
		layers[i] = []*trail[N]{root}
		arrived = arrived && starts[i] == goals[i]
	}
	if arrived {
		out := make([]Path[N], len(graphs))
		for i := range graphs {
			out[i] = layers[i][0].path()
		}
		return out, nil
	}

	b := budget{max: o.MaxExpansions}
	for round := 1; round <= o.layers(); round++ {
		if err := cancelled(o.Ctx); err != nil {
			return nil, err
		}
		hits := make([]*trail[N], len(graphs))
		all := true
		for i, g := range graphs {
			next, ok := advance(g, layers[i], &b, o.OnExpand)
			if !ok || len(next.order) == 0 {
				return nil, nil
			}
			hits[i] = next.best[goals[i]]
			all = all && hits[i] != nil
			layers[i] = next.trails()
		}
		if all {
			out := make([]Path[N], len(graphs))
			for i, t := range hits {
				out[i] = t.path()
			}
			return out, nil
		}
	}

	return nil, nil
}
