package chaos

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Defaults for adaptive integration.
const (
	DefaultMaxHalvings   = 64
	DefaultGrowThreshold = 1.0 / 32
)

// AdaptiveOptions tunes AdaptiveRK4.
type AdaptiveOptions struct {
	// MaxHalvings caps how often one step may be halved before ErrDivergence.
	MaxHalvings int

	// GrowThreshold is the fraction of the tolerance under which the step
	// size is tentatively doubled for the next step.
	GrowThreshold float64

	// MaxStep caps doubling; zero means no cap.
	MaxStep float64

	err error
}

// AdaptiveOption configures AdaptiveOptions.
type AdaptiveOption func(*AdaptiveOptions)

// DefaultAdaptiveOptions returns the defaults used by AdaptiveRK4.
func DefaultAdaptiveOptions() AdaptiveOptions {
	return AdaptiveOptions{
		MaxHalvings:   DefaultMaxHalvings,
		GrowThreshold: DefaultGrowThreshold,
	}
}

// WithMaxHalvings sets the per-step halving cap. Values < 1 are rejected.
func WithMaxHalvings(n int) AdaptiveOption {
	return func(o *AdaptiveOptions) {
		if n < 1 {
			o.err = fmt.Errorf("chaos: WithMaxHalvings(%d): %w", n, ErrBadTolerance)
			return
		}
		o.MaxHalvings = n
	}
}

// WithGrowThreshold sets the doubling threshold as a fraction in (0, 1).
func WithGrowThreshold(frac float64) AdaptiveOption {
	return func(o *AdaptiveOptions) {
		if !(frac > 0 && frac < 1) {
			o.err = fmt.Errorf("chaos: WithGrowThreshold(%g): %w", frac, ErrBadTolerance)
			return
		}
		o.GrowThreshold = frac
	}
}

// WithMaxStep caps the step size reachable by doubling.
func WithMaxStep(h float64) AdaptiveOption {
	return func(o *AdaptiveOptions) {
		if !(h > 0) || math.IsInf(h, 0) {
			o.err = fmt.Errorf("chaos: WithMaxStep(%g): %w", h, ErrBadStep)
			return
		}
		o.MaxStep = h
	}
}

// AdaptiveRK4 integrates n accepted steps starting with step size h.
//
// Each step compares one full step with two half steps. When the Euclidean
// norm of the difference exceeds eps the step is halved and retried, at most
// MaxHalvings times. When it is below eps·GrowThreshold, the doubled step is
// tried from the new state and adopted for the next step only if it also
// meets eps. The returned trajectory has n+1 states at non-uniform times.
func AdaptiveRK4(f Func, ic Vector, n int, h, eps float64, opts ...AdaptiveOption) (Trajectory, error) {
	if err := validate(ic, n, h); err != nil {
		return Trajectory{}, err
	}
	if !(eps > 0) || math.IsInf(eps, 0) {
		return Trajectory{}, ErrBadTolerance
	}
	o := DefaultAdaptiveOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Trajectory{}, o.err
	}

	tr := Trajectory{
		Points: make([]Vector, 0, n+1),
		Times:  make([]float64, 0, n+1),
	}
	y, t := ic.Clone(), 0.0
	tr.Points = append(tr.Points, y)
	tr.Times = append(tr.Times, t)

	for i := 0; i < n; i++ {
		next, used, errNorm, err := stepWithin(f, y, t, h, eps, o.MaxHalvings)
		if err != nil {
			return tr, fmt.Errorf("chaos: step %d at t=%g: %w", i, t, err)
		}
		y, t, h = next, t+used, used
		tr.Points = append(tr.Points, y)
		tr.Times = append(tr.Times, t)

		if errNorm < eps*o.GrowThreshold {
			doubled := 2 * h
			if o.MaxStep > 0 && doubled > o.MaxStep {
				doubled = o.MaxStep
			}
			if doubled > h {
				if _, e, ok := compare(f, y, t, doubled); ok && e <= eps {
					h = doubled
				}
			}
		}
	}

	return tr, nil
}

// stepWithin halves h until one step from y meets eps. It returns the
// accepted (two half steps) state, the step size used and the error norm.
func stepWithin(f Func, y Vector, t, h, eps float64, maxHalvings int) (Vector, float64, float64, error) {
	for halvings := 0; ; halvings++ {
		half, e, ok := compare(f, y, t, h)
		if ok && e <= eps {
			return half, h, e, nil
		}
		if halvings >= maxHalvings {
			return nil, h, e, fmt.Errorf("error %g above tolerance %g after %d halvings: %w",
				e, eps, halvings, ErrDivergence)
		}
		h /= 2
	}
}

// compare runs one full step and two half steps and reports the half-step
// result with the norm of the difference. ok is false on non-finite output.
func compare(f Func, y Vector, t, h float64) (Vector, float64, bool) {
	full := rk4Step(f, y, t, h)
	half := rk4Step(f, rk4Step(f, y, t, h/2), t+h/2, h/2)
	if !finite(full) || !finite(half) {
		return half, math.Inf(1), false
	}

	return half, floats.Distance(full, half, 2), true
}
