// SPDX-License-Identifier: MIT
// Package core_test contains fixtures and brute-force oracles for core tests.

package core_test

import (
	"sort"

	"github.com/katalvlaran/choreo/core"
)

// Common node names used across core tests.
const (
	NodeA = "A"
	NodeB = "B"
	NodeC = "C"
	NodeD = "D"
)

// incidentByScan recomputes incident edge IDs of n by scanning every live edge.
func incidentByScan[N comparable](g *core.Graph[N], n N) []core.EdgeID {
	var ids []core.EdgeID
	for _, e := range g.Edges() {
		if e.From == n || e.To == n {
			ids = append(ids, e.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// edgeIDs extracts sorted IDs.
func edgeIDs[N comparable](es []*core.Edge[N]) []core.EdgeID {
	var ids []core.EdgeID
	for _, e := range es {
		ids = append(ids, e.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
