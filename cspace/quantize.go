// SPDX-License-Identifier: MIT
// Package cspace - angle normalization and quantization.

package cspace

import (
	"fmt"
	"math"
)

const fullTurn = 360.0

// NormalizeAngle maps a into [0,360). NaN and Inf pass through unchanged.
func NormalizeAngle(a float64) float64 {
	m := math.Mod(a, fullTurn)
	if m < 0 {
		m += fullTurn
	}
	if m >= fullTurn {
		// -tiny + 360 rounds up to 360.
		m = 0
	}
	return m
}

// NormalizeVector returns a normalized copy of v.
func NormalizeVector(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, a := range v {
		out[i] = NormalizeAngle(a)
	}
	return out
}

// Quantize returns the cell index of every component of v at the given
// interval. An index whose lower corner reaches 360 wraps to 0.
func Quantize(v []float64, interval float64) ([]int, error) {
	out := make([]int, len(v))
	for i, a := range v {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return nil, fmt.Errorf("component %d = %g: %w", i, a, ErrNonFinite)
		}
		k := int(math.Floor(NormalizeAngle(a) / interval))
		if float64(k)*interval >= fullTurn {
			k = 0
		}
		out[i] = k
	}
	return out, nil
}
