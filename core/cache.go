// SPDX-License-Identifier: MIT
// Package core - memoized algorithm results with mutation-driven invalidation.

package core

// Cached returns the value memoized under key, running factory on a miss.
//
// The first call on a graph registers one invalidation observer on both the
// add and remove channels; after that any mutation drops every cached value.
// Two calls with no mutation in between return the same value. If two
// goroutines miss concurrently, both factories run and the first stored
// result wins for both callers.
func Cached[N comparable, T any](g *Graph[N], key string, factory func() T) T {
	g.cacheMu.Lock()
	if v, ok := g.cache[key]; ok {
		g.cacheMu.Unlock()
		return v.(T)
	}
	if !g.cacheHooked {
		g.cacheHooked = true
		g.OnAdd(func(*Edge[N]) { g.InvalidateCache() })
		g.OnRemove(func(*Edge[N]) { g.InvalidateCache() })
	}
	g.cacheMu.Unlock()

	v := factory()

	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	if prev, ok := g.cache[key]; ok {
		return prev.(T)
	}
	if g.cache == nil {
		g.cache = make(map[string]any)
	}
	g.cache[key] = v

	return v
}

// InvalidateCache drops every memoized value.
func (g *Graph[N]) InvalidateCache() {
	g.cacheMu.Lock()
	g.cache = nil
	g.cacheMu.Unlock()
}
