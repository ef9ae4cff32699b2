// SPDX-License-Identifier: MIT
// Package core - edge arena types and sentinel errors.

package core

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrPrecondition is the base of every malformed-input error. Callers
	// separate it from expected outcomes (for example "no path") with errors.Is.
	ErrPrecondition = errors.New("core: precondition violated")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrNotAttached indicates a representation was queried without a graph.
	ErrNotAttached = fmt.Errorf("core: representation not attached: %w", ErrPrecondition)

	// ErrReentrantMutation indicates Add/Remove was called from an observer.
	ErrReentrantMutation = fmt.Errorf("core: mutation from inside an observer: %w", ErrPrecondition)
)

// EdgeID is the stable arena index of an edge.
type EdgeID int

// Edge is a directed, counted transition between two nodes.
//
// Count is how many times the transition was observed. Weight is derived from
// Count by whoever builds the graph; core never touches it.
type Edge[N comparable] struct {
	// ID is the arena index assigned by Add.
	ID EdgeID

	// From is the source node.
	From N

	// To is the destination node. From == To is a legal self-loop.
	To N

	// Count is the number of observations of this transition.
	Count int

	// Weight is the transition probability once normalized.
	Weight float64
}

// Observer receives an edge that was just added or removed.
type Observer[N comparable] func(e *Edge[N])

// Graph is an append/remove-only edge set with synchronous notifications.
//
// Duplicate (From, To) pairs are allowed; deduplication is the caller's job
// (see EdgeList.Lookup).
type Graph[N comparable] struct {
	arena []*Edge[N] // index == EdgeID, nil once removed
	live  int

	addObs    []Observer[N]
	removeObs []Observer[N]
	notifying bool

	cacheMu     sync.Mutex
	cache       map[string]any
	cacheHooked bool
}

// NewGraph returns an empty graph.
func NewGraph[N comparable]() *Graph[N] {
	return &Graph[N]{}
}
