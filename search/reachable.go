package search

// queueItem pairs a node with its BFS depth.
type queueItem[N comparable] struct {
	node  N
	depth int
}

// walker encapsulates mutable BFS state.
type walker[N comparable] struct {
	g       Graph[N]
	opts    Options
	queue   []queueItem[N]
	visited map[N]bool
}

// Reachable reports whether goal can be reached from start within MaxDepth
// edges (zero means unbounded).
func Reachable[N comparable](g Graph[N], start, goal N, opts ...Option) (bool, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return false, err
	}
	if err := checkEndpoints(g, start, goal); err != nil {
		return false, err
	}
	w := &walker[N]{
		g:       g,
		opts:    o,
		queue:   []queueItem[N]{{node: start}},
		visited: map[N]bool{start: true},
	}
	return w.run(goal)
}

func (w *walker[N]) run(goal N) (bool, error) {
	for len(w.queue) > 0 {
		if err := cancelled(w.opts.Ctx); err != nil {
			return false, err
		}
		cur := w.queue[0]
		w.queue = w.queue[1:]
		if cur.node == goal {
			return true, nil
		}
		if w.opts.MaxDepth > 0 && cur.depth >= w.opts.MaxDepth {
			continue
		}
		for s := range w.g.Successors(cur.node) {
			if w.visited[s] {
				continue
			}
			w.visited[s] = true
			w.queue = append(w.queue, queueItem[N]{node: s, depth: cur.depth + 1})
		}
	}
	return false, nil
}
