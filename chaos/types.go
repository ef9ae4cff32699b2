// Package chaos integrates ordinary differential equations with fixed and
// adaptive fourth-order Runge-Kutta and provides the Lorenz system used to
// key motion sequences.
//
// Integration is fully deterministic: identical (f, ic, n, h) always produce
// an identical Trajectory.
//
// Errors:
//
//	ErrEmptyState    - initial condition has no components.
//	ErrBadSteps      - negative step count.
//	ErrBadStep       - step size not a positive finite number.
//	ErrBadTolerance  - adaptive tolerance not positive.
//	ErrDimension     - initial condition has the wrong number of components.
//	ErrDivergence    - adaptive integration could not meet the tolerance,
//	                   or the state became non-finite.
package chaos

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/choreo/core"
)

// Sentinel errors. All but ErrDivergence wrap core.ErrPrecondition.
var (
	ErrEmptyState   = fmt.Errorf("chaos: empty initial condition: %w", core.ErrPrecondition)
	ErrBadSteps     = fmt.Errorf("chaos: step count must be >= 0: %w", core.ErrPrecondition)
	ErrBadStep      = fmt.Errorf("chaos: step size must be positive and finite: %w", core.ErrPrecondition)
	ErrBadTolerance = fmt.Errorf("chaos: tolerance must be positive: %w", core.ErrPrecondition)
	ErrDimension    = fmt.Errorf("chaos: initial condition has the wrong dimension: %w", core.ErrPrecondition)
	ErrDivergence   = errors.New("chaos: integration diverged")
)

// Vector is a point in state space.
type Vector []float64

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Func is the right-hand side of an ODE: the derivative at (state, t).
// h is the current step size, passed through for systems that need it.
type Func func(state Vector, t, h float64) Vector

// Trajectory is an integrated path: Points[i] is the state at Times[i].
type Trajectory struct {
	Points []Vector  `msgpack:"points" yaml:"points"`
	Times  []float64 `msgpack:"times" yaml:"times"`
}

// Len reports the number of states.
func (tr Trajectory) Len() int { return len(tr.Points) }
