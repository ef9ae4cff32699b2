// SPDX-License-Identifier: MIT
// Package core - edge lifecycle and notification dispatch.

package core

// Add stores a copy of e, assigns its ID and notifies OnAdd observers.
// The returned pointer stays valid until the edge is removed.
func (g *Graph[N]) Add(e Edge[N]) (*Edge[N], error) {
	if g.notifying {
		return nil, ErrReentrantMutation
	}
	stored := e
	stored.ID = EdgeID(len(g.arena))
	g.arena = append(g.arena, &stored)
	g.live++
	g.notify(g.addObs, &stored)

	return &stored, nil
}

// AddMany adds edges in caller order. On error the edges already added stay.
func (g *Graph[N]) AddMany(es []Edge[N]) ([]*Edge[N], error) {
	out := make([]*Edge[N], 0, len(es))
	for _, e := range es {
		stored, err := g.Add(e)
		if err != nil {
			return out, err
		}
		out = append(out, stored)
	}

	return out, nil
}

// Remove clears the edge with the given ID and notifies OnRemove observers.
// Returns ErrEdgeNotFound for unknown or already removed IDs.
func (g *Graph[N]) Remove(id EdgeID) error {
	if g.notifying {
		return ErrReentrantMutation
	}
	if id < 0 || int(id) >= len(g.arena) || g.arena[id] == nil {
		return ErrEdgeNotFound
	}
	e := g.arena[id]
	g.arena[id] = nil
	g.live--
	g.notify(g.removeObs, e)

	return nil
}

// Edge returns the live edge with the given ID.
func (g *Graph[N]) Edge(id EdgeID) (*Edge[N], bool) {
	if id < 0 || int(id) >= len(g.arena) || g.arena[id] == nil {
		return nil, false
	}

	return g.arena[id], true
}

// Edges returns all live edges in ascending ID order.
func (g *Graph[N]) Edges() []*Edge[N] {
	out := make([]*Edge[N], 0, g.live)
	for _, e := range g.arena {
		if e != nil {
			out = append(out, e)
		}
	}

	return out
}

// Len reports the number of live edges.
func (g *Graph[N]) Len() int { return g.live }

// OnAdd registers fn to run after every Add.
func (g *Graph[N]) OnAdd(fn Observer[N]) { g.addObs = append(g.addObs, fn) }

// OnRemove registers fn to run after every Remove.
func (g *Graph[N]) OnRemove(fn Observer[N]) { g.removeObs = append(g.removeObs, fn) }

// notify runs observers over a snapshot so that registrations made by an
// observer take effect from the next event on.
func (g *Graph[N]) notify(obs []Observer[N], e *Edge[N]) {
	if len(obs) == 0 {
		return
	}
	snapshot := obs[:len(obs):len(obs)]
	g.notifying = true
	defer func() { g.notifying = false }()
	for _, fn := range snapshot {
		fn(e)
	}
}
