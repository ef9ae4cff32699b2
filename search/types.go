// Package search implements the graph searches used to bridge motion
// discontinuities: unit-weight Dijkstra, heuristic best-first, depth-limited
// maximum-likelihood search and synchronized parallel breadth-first search.
//
// All searches run over the small Graph interface below, so they work both
// on a single bone graph (cspace.BoneGraph) and on the lazy product graph
// (combinatoric.Graph). They are single-threaded and deterministic for a
// given successor iteration order.
//
// Outcomes:
//
//   - A path that was found is returned as a Path with Found() == true.
//   - No path is the zero Path with a nil error: an expected outcome.
//   - Malformed input (start or goal not in the graph) returns an error
//     wrapping core.ErrPrecondition, never confused with "no path".
//
// Callers that prefer an error for the no-path outcome wrap ErrNoPath.
package search

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/katalvlaran/choreo/core"
)

// Sentinel errors.
var (
	// ErrStartNotFound is returned when the start node is absent.
	ErrStartNotFound = fmt.Errorf("search: start node not in graph: %w", core.ErrPrecondition)

	// ErrGoalNotFound is returned when the goal node is absent.
	ErrGoalNotFound = fmt.Errorf("search: goal node not in graph: %w", core.ErrPrecondition)

	// ErrArity is returned when parallel inputs have different lengths.
	ErrArity = fmt.Errorf("search: graphs, starts and goals differ in length: %w", core.ErrPrecondition)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrNoPath marks search exhaustion for callers that turn the no-path
	// value into an error. Searches themselves never return it.
	ErrNoPath = errors.New("search: no path")
)

// Graph is the read-only view every search runs over.
type Graph[N comparable] interface {
	// Contains reports whether n is a node of the graph.
	Contains(n N) bool

	// Successors yields every (successor, transition probability) of n.
	Successors(n N) iter.Seq2[N, float64]
}

// Heuristic estimates the remaining cost from n. Returning false prunes n:
// the goal is known to be unreachable from it.
type Heuristic[N comparable] func(n N) (float64, bool)

// Path is a node sequence from start to goal.
type Path[N comparable] struct {
	// Nodes includes both endpoints; empty when no path exists.
	Nodes []N

	// Likelihood is the product of edge probabilities along Nodes.
	Likelihood float64
}

// Found reports whether the path is non-empty.
func (p Path[N]) Found() bool { return len(p.Nodes) > 0 }

// Len returns the number of edges.
func (p Path[N]) Len() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// trail is a back-linked partial path.
type trail[N comparable] struct {
	node  N
	prev  *trail[N]
	depth int
	like  float64
}

func (t *trail[N]) path() Path[N] {
	nodes := make([]N, t.depth+1)
	for cur := t; cur != nil; cur = cur.prev {
		nodes[cur.depth] = cur.node
	}
	return Path[N]{Nodes: nodes, Likelihood: t.like}
}

func checkEndpoints[N comparable](g Graph[N], start, goal N) error {
	if !g.Contains(start) {
		return fmt.Errorf("%v: %w", start, ErrStartNotFound)
	}
	if !g.Contains(goal) {
		return fmt.Errorf("%v: %w", goal, ErrGoalNotFound)
	}
	return nil
}

func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
