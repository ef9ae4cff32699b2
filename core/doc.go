// Package core provides the mutable edge store that every motion graph in
// choreo is built on, plus the secondary indices ("representations") that
// observe it.
//
// A Graph[N] is an arena of *Edge[N] addressed by stable EdgeID indices.
// Removing an edge clears its slot; IDs are never reused, so observers can
// keep plain indices instead of pointers.
//
// Notifications:
//
//	OnAdd(fn)     fired after an edge is stored, in registration order
//	OnRemove(fn)  fired after an edge slot is cleared, in registration order
//
// Observers run synchronously on the mutating goroutine. Mutating the same
// graph from inside an observer is rejected with ErrReentrantMutation.
//
// Representations:
//
//	AdjacencyList  node -> incident edges, maintained incrementally
//	VertexMap      distinct nodes seen in any live edge
//	EdgeList       exact (from, to) lookup with a found-or-not result
//
// A representation only sees edges added after it was attached. Attach all
// of them first, or use NewIndexed which does it for you.
//
// Algorithm caching:
//
//	v := core.Cached(g, "dist/42", func() *Table { ... })
//
// The factory runs once per key; any later Add or Remove clears every cached
// value. Cached is safe for concurrent readers once the graph stops mutating.
//
// Errors:
//
//	ErrPrecondition       - base for every malformed-input error in choreo.
//	ErrEdgeNotFound       - unknown or removed edge, or absent (from, to).
//	ErrNotAttached        - representation used without a graph.
//	ErrReentrantMutation  - mutation from inside an observer.
package core
