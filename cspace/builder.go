// SPDX-License-Identifier: MIT
// Package cspace - per-bone graph builder.

package cspace

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/motion"
)

// Builder accumulates transition counts for one bone.
type Builder struct {
	bone   string
	dof    int
	cfg    config
	cells  *CellTable
	ix     *core.Index[CellID]
	clips  int
	frames int
	sealed bool
}

// NewBuilder returns a builder for a bone with dof angle channels.
func NewBuilder(bone string, dof int, opts ...Option) (*Builder, error) {
	if dof <= 0 {
		return nil, fmt.Errorf("bone %q: %w", bone, ErrZeroDOF)
	}
	cfg := newConfig(opts...)
	cells := cfg.cells
	if cells == nil {
		cells = NewCellTable()
	}

	return &Builder{
		bone:  bone,
		dof:   dof,
		cfg:   cfg,
		cells: cells,
		ix:    core.NewIndexed[CellID](),
	}, nil
}

// Ingest adds one clip (frames × dof angles). Each consecutive frame pair
// visits the edge between their cells.
func (b *Builder) Ingest(clip [][]float64) error {
	if b.sealed {
		return ErrSealed
	}
	ids := make([]CellID, len(clip))
	for i, v := range clip {
		if len(v) != b.dof {
			return fmt.Errorf("bone %q frame %d: got %d values, want %d: %w",
				b.bone, i, len(v), b.dof, motion.ErrDOFMismatch)
		}
		idx, err := Quantize(v, b.cfg.interval)
		if err != nil {
			return fmt.Errorf("bone %q frame %d: %w", b.bone, i, err)
		}
		ids[i] = b.cells.Intern(idx)
	}
	for i := 0; i+1 < len(ids); i++ {
		if _, err := b.ix.Visit(ids[i], ids[i+1]); err != nil {
			return fmt.Errorf("bone %q frame %d: %w", b.bone, i, err)
		}
	}
	b.clips++
	b.frames += len(clip)

	return nil
}

// Build normalizes outgoing weights and seals the builder.
func (b *Builder) Build() (*BoneGraph, error) {
	if b.sealed {
		return nil, ErrSealed
	}
	nodes, err := b.ix.Vertices.Nodes()
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		out, err := b.ix.Adjacency.Successors(n)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, e := range out {
			total += e.Count
		}
		for _, e := range out {
			e.Weight = float64(e.Count) / float64(total)
		}
	}
	b.sealed = true
	b.cfg.logger.Debug("bone graph built",
		slog.String("bone", b.bone),
		slog.Int("clips", b.clips),
		slog.Int("frames", b.frames),
		slog.Int("cells", len(nodes)),
		slog.Int("edges", b.ix.Graph.Len()))

	return &BoneGraph{
		Name:     b.bone,
		DOF:      b.dof,
		Interval: b.cfg.interval,
		Cells:    b.cells,
		Index:    b.ix,
	}, nil
}
