// SPDX-License-Identifier: MIT
// Package core - graph bundled with all representations.

package core

// Index is a graph with every representation attached before its first edge.
type Index[N comparable] struct {
	Graph     *Graph[N]
	Adjacency *AdjacencyList[N]
	Vertices  *VertexMap[N]
	Pairs     *EdgeList[N]
}

// NewIndexed returns an empty graph with AdjacencyList, VertexMap and
// EdgeList already observing it.
func NewIndexed[N comparable]() *Index[N] {
	g := NewGraph[N]()

	return &Index[N]{
		Graph:     g,
		Adjacency: NewAdjacencyList(g),
		Vertices:  NewVertexMap(g),
		Pairs:     NewEdgeList(g),
	}
}

// Visit increments the count of the (from, to) edge, creating it with
// count 1 when absent.
func (ix *Index[N]) Visit(from, to N) (*Edge[N], error) {
	if e, ok := ix.Pairs.Lookup(from, to); ok {
		e.Count++
		return e, nil
	}

	return ix.Graph.Add(Edge[N]{From: from, To: to, Count: 1})
}
