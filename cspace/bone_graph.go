// SPDX-License-Identifier: MIT
// Package cspace - read-only per-bone graph.

package cspace

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/motion"
)

// BoneGraph is the normalized transition graph of one bone.
type BoneGraph struct {
	Name     string
	DOF      int
	Interval float64
	Cells    *CellTable
	Index    *core.Index[CellID]
}

// Core exposes the underlying edge store, for caching.
func (bg *BoneGraph) Core() *core.Graph[CellID] { return bg.Index.Graph }

// Contains reports whether c is an endpoint of any transition.
func (bg *BoneGraph) Contains(c CellID) bool { return bg.Index.Vertices.Has(c) }

// Successors yields (cell, weight) for every transition leaving c, in
// insertion order.
func (bg *BoneGraph) Successors(c CellID) iter.Seq2[CellID, float64] {
	return func(yield func(CellID, float64) bool) {
		out, err := bg.Index.Adjacency.Successors(c)
		if err != nil {
			return
		}
		for _, e := range out {
			if !yield(e.To, e.Weight) {
				return
			}
		}
	}
}

// Nodes returns every cell with a transition, in first-seen order.
func (bg *BoneGraph) Nodes() []CellID {
	nodes, _ := bg.Index.Vertices.Nodes()
	return nodes
}

// Edges returns every transition in ID order.
func (bg *BoneGraph) Edges() []*core.Edge[CellID] { return bg.Index.Graph.Edges() }

// Edge returns the (from, to) transition.
func (bg *BoneGraph) Edge(from, to CellID) (*core.Edge[CellID], bool) {
	return bg.Index.Pairs.Lookup(from, to)
}

// CellOf quantizes angles and returns the cell if this graph contains it.
func (bg *BoneGraph) CellOf(angles []float64) (CellID, error) {
	id, err := bg.locate(angles)
	if err != nil {
		return 0, err
	}
	if !bg.Contains(id) {
		cell, _ := bg.Cells.Cell(id)
		return 0, fmt.Errorf("bone %q cell [%s] has no transitions: %w", bg.Name, cell, ErrCellNotFound)
	}
	return id, nil
}

// locate quantizes angles and returns the interned cell, edges or not.
func (bg *BoneGraph) locate(angles []float64) (CellID, error) {
	if len(angles) != bg.DOF {
		return 0, fmt.Errorf("bone %q: got %d angles, want %d: %w", bg.Name, len(angles), bg.DOF, motion.ErrDOFMismatch)
	}
	idx, err := Quantize(angles, bg.Interval)
	if err != nil {
		return 0, fmt.Errorf("bone %q: %w", bg.Name, err)
	}
	id, ok := bg.Cells.Lookup(idx)
	if !ok {
		return 0, fmt.Errorf("bone %q cell [%s]: %w", bg.Name, indexKey(idx), ErrCellNotFound)
	}
	return id, nil
}

// Cell returns the cell with the given ID.
func (bg *BoneGraph) Cell(c CellID) (Cell, bool) { return bg.Cells.Cell(c) }

// Center returns the center angles of c.
func (bg *BoneGraph) Center(c CellID) ([]float64, error) {
	cell, ok := bg.Cells.Cell(c)
	if !ok {
		return nil, fmt.Errorf("bone %q cell %d: %w", bg.Name, c, ErrCellNotFound)
	}
	return cell.Center(bg.Interval), nil
}
