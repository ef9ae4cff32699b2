// SPDX-License-Identifier: MIT
// Package core - incremental node -> incident-edge index.

package core

// AdjacencyList indexes every live edge under both of its endpoints.
type AdjacencyList[N comparable] struct {
	g     *Graph[N]
	index map[N][]EdgeID
}

// NewAdjacencyList attaches a new adjacency index to g. Edges added to g
// before this call are not indexed.
func NewAdjacencyList[N comparable](g *Graph[N]) *AdjacencyList[N] {
	a := &AdjacencyList[N]{g: g, index: make(map[N][]EdgeID)}
	g.OnAdd(a.added)
	g.OnRemove(a.removed)

	return a
}

func (a *AdjacencyList[N]) added(e *Edge[N]) {
	a.index[e.From] = append(a.index[e.From], e.ID)
	if e.To != e.From {
		a.index[e.To] = append(a.index[e.To], e.ID)
	}
}

func (a *AdjacencyList[N]) removed(e *Edge[N]) {
	a.drop(e.From, e.ID)
	if e.To != e.From {
		a.drop(e.To, e.ID)
	}
}

func (a *AdjacencyList[N]) drop(n N, id EdgeID) {
	ids := a.index[n]
	for i, x := range ids {
		if x == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(a.index, n)
		return
	}
	a.index[n] = ids
}

// Query returns every live edge incident to n (as source or target) in
// insertion order. Self-loops appear once. Unknown nodes yield an empty slice.
func (a *AdjacencyList[N]) Query(n N) ([]*Edge[N], error) {
	if a == nil || a.g == nil {
		return nil, ErrNotAttached
	}
	ids := a.index[n]
	out := make([]*Edge[N], 0, len(ids))
	for _, id := range ids {
		out = append(out, a.g.arena[id])
	}

	return out, nil
}

// Successors returns the live edges leaving n, in insertion order.
func (a *AdjacencyList[N]) Successors(n N) ([]*Edge[N], error) {
	if a == nil || a.g == nil {
		return nil, ErrNotAttached
	}
	ids := a.index[n]
	out := make([]*Edge[N], 0, len(ids))
	for _, id := range ids {
		if e := a.g.arena[id]; e.From == n {
			out = append(out, e)
		}
	}

	return out, nil
}
