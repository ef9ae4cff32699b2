// SPDX-License-Identifier: MIT
// Package core - exact (from, to) lookup.

package core

type pair[N comparable] struct{ from, to N }

// EdgeList maps each ordered (from, to) pair to its live edges.
type EdgeList[N comparable] struct {
	g     *Graph[N]
	index map[pair[N]][]EdgeID
}

// NewEdgeList attaches a new pair index to g.
func NewEdgeList[N comparable](g *Graph[N]) *EdgeList[N] {
	l := &EdgeList[N]{g: g, index: make(map[pair[N]][]EdgeID)}
	g.OnAdd(func(e *Edge[N]) {
		k := pair[N]{e.From, e.To}
		l.index[k] = append(l.index[k], e.ID)
	})
	g.OnRemove(func(e *Edge[N]) {
		k := pair[N]{e.From, e.To}
		ids := l.index[k]
		for i, id := range ids {
			if id == e.ID {
				ids = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(ids) == 0 {
			delete(l.index, k)
			return
		}
		l.index[k] = ids
	})

	return l
}

// Lookup returns the oldest live edge from u to v.
func (l *EdgeList[N]) Lookup(u, v N) (*Edge[N], bool) {
	if l == nil || l.g == nil {
		return nil, false
	}
	ids := l.index[pair[N]{u, v}]
	if len(ids) == 0 {
		return nil, false
	}

	return l.g.arena[ids[0]], true
}

// Query is Lookup with an error result: ErrEdgeNotFound when absent,
// ErrNotAttached when l has no graph.
func (l *EdgeList[N]) Query(u, v N) (*Edge[N], error) {
	if l == nil || l.g == nil {
		return nil, ErrNotAttached
	}
	e, ok := l.Lookup(u, v)
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return e, nil
}
