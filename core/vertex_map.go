// SPDX-License-Identifier: MIT
// Package core - distinct-node index.

package core

// VertexMap tracks the distinct nodes of all live edges in first-seen order.
type VertexMap[N comparable] struct {
	g     *Graph[N]
	refs  map[N]int
	order []N
}

// NewVertexMap attaches a new vertex index to g.
func NewVertexMap[N comparable](g *Graph[N]) *VertexMap[N] {
	v := &VertexMap[N]{g: g, refs: make(map[N]int)}
	g.OnAdd(func(e *Edge[N]) {
		v.ref(e.From)
		if e.To != e.From {
			v.ref(e.To)
		}
	})
	g.OnRemove(func(e *Edge[N]) {
		v.unref(e.From)
		if e.To != e.From {
			v.unref(e.To)
		}
	})

	return v
}

func (v *VertexMap[N]) ref(n N) {
	if v.refs[n] == 0 {
		v.order = append(v.order, n)
	}
	v.refs[n]++
}

func (v *VertexMap[N]) unref(n N) {
	v.refs[n]--
	if v.refs[n] > 0 {
		return
	}
	delete(v.refs, n)
	for i, x := range v.order {
		if x == n {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

// Lookup reports whether n is an endpoint of any live edge. An unattached
// map returns ErrNotAttached.
func (v *VertexMap[N]) Lookup(n N) (bool, error) {
	if v == nil || v.g == nil {
		return false, ErrNotAttached
	}
	return v.refs[n] > 0, nil
}

// Has is Lookup for attached maps; an unattached map has no nodes.
func (v *VertexMap[N]) Has(n N) bool {
	if v == nil || v.g == nil {
		return false
	}
	return v.refs[n] > 0
}

// Nodes returns a copy of the distinct nodes in first-seen order.
func (v *VertexMap[N]) Nodes() ([]N, error) {
	if v == nil || v.g == nil {
		return nil, ErrNotAttached
	}
	out := make([]N, len(v.order))
	copy(out, v.order)

	return out, nil
}

// Len reports the number of distinct nodes.
func (v *VertexMap[N]) Len() int {
	if v == nil {
		return 0
	}
	return len(v.order)
}
