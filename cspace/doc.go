// Package cspace turns recorded joint angles into per-bone transition graphs
// over a quantized configuration space.
//
// Every angle is normalized into [0,360) and quantized at a fixed interval
// (default 5 degrees). The resulting grid cell, identified by its integer
// index tuple and interned to a CellID, is a graph node. Consecutive frames
// of a clip "visit" the edge between their cells: an existing edge has its
// count incremented, a missing one is created with count 1. Build then
// assigns weight = count / total outgoing count of the source cell.
//
//	b, _ := cspace.NewBuilder("elbow", 1)
//	_ = b.Ingest([][]float64{{10}, {10}, {15}, {15}})
//	g, _ := b.Build()
//	// 10->10 weight 0.5, 10->15 weight 0.5, 15->15 weight 1.0
//
// A BoneGraph is read-only after Build and satisfies the search.Graph
// interface with CellID nodes.
//
// Bones without angle channels are skipped by BuildAll; no graph exists for
// them and downstream interpolation keeps their pose fixed.
//
// Errors:
//
//	ErrZeroDOF       - builder requested for a bone without angle channels.
//	ErrNonFinite     - NaN or Inf angle.
//	ErrSealed        - Ingest after Build.
//	ErrCellNotFound  - pose falls in a cell the graph never saw.
//	motion.ErrDOFMismatch for vectors of the wrong length.
package cspace
