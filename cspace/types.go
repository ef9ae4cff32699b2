// SPDX-License-Identifier: MIT
// Package cspace - cell types and sentinel errors.

package cspace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/choreo/core"
)

// Sentinel errors, all preconditions.
var (
	ErrZeroDOF      = fmt.Errorf("cspace: bone has no angle channels: %w", core.ErrPrecondition)
	ErrNonFinite    = fmt.Errorf("cspace: non-finite angle: %w", core.ErrPrecondition)
	ErrSealed       = fmt.Errorf("cspace: builder already built: %w", core.ErrPrecondition)
	ErrCellNotFound = fmt.Errorf("cspace: cell not in graph: %w", core.ErrPrecondition)
)

// DefaultInterval is the quantization step in degrees.
const DefaultInterval = 5.0

// CellID is an interned pose cell.
type CellID int32

// Cell is the hyper-rectangle [Index·interval, (Index+1)·interval) per axis.
type Cell struct {
	ID    CellID
	Index []int
}

// Lower returns the lower corner in degrees.
func (c Cell) Lower(interval float64) []float64 {
	out := make([]float64, len(c.Index))
	for i, k := range c.Index {
		out[i] = float64(k) * interval
	}
	return out
}

// Upper returns the exclusive upper corner in degrees.
func (c Cell) Upper(interval float64) []float64 {
	out := c.Lower(interval)
	for i := range out {
		out[i] += interval
	}
	return out
}

// Center returns the midpoint of the cell in degrees.
func (c Cell) Center(interval float64) []float64 {
	out := c.Lower(interval)
	for i := range out {
		out[i] += interval / 2
	}
	return out
}

// Contains reports whether the normalized angles fall inside the cell.
func (c Cell) Contains(angles []float64, interval float64) bool {
	idx, err := Quantize(angles, interval)
	if err != nil || len(idx) != len(c.Index) {
		return false
	}
	for i := range idx {
		if idx[i] != c.Index[i] {
			return false
		}
	}
	return true
}

// String renders the index tuple as "2,3".
func (c Cell) String() string { return indexKey(c.Index) }

func indexKey(idx []int) string {
	var sb strings.Builder
	for i, k := range idx {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(k))
	}
	return sb.String()
}
