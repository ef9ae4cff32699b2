package chaos

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// RK4 integrates f from ic with n fixed steps of size h and returns exactly
// n+1 states, the first being a copy of ic. n == 0 returns [ic].
func RK4(f Func, ic Vector, n int, h float64) (Trajectory, error) {
	if err := validate(ic, n, h); err != nil {
		return Trajectory{}, err
	}
	tr := Trajectory{
		Points: make([]Vector, 0, n+1),
		Times:  make([]float64, 0, n+1),
	}
	y := ic.Clone()
	tr.Points = append(tr.Points, y)
	tr.Times = append(tr.Times, 0)
	for i := 1; i <= n; i++ {
		y = rk4Step(f, y, float64(i-1)*h, h)
		tr.Points = append(tr.Points, y)
		tr.Times = append(tr.Times, float64(i)*h)
	}

	return tr, nil
}

// rk4Step returns the state one step of size h after y. y is not modified.
func rk4Step(f Func, y Vector, t, h float64) Vector {
	tmp := make([]float64, len(y))

	k1 := f(y, t, h)
	floats.AddScaledTo(tmp, y, h/2, k1)
	k2 := f(tmp, t+h/2, h)
	floats.AddScaledTo(tmp, y, h/2, k2)
	k3 := f(tmp, t+h/2, h)
	floats.AddScaledTo(tmp, y, h, k3)
	k4 := f(tmp, t+h, h)

	next := make(Vector, len(y))
	copy(next, y)
	floats.AddScaled(next, h/6, k1)
	floats.AddScaled(next, h/3, k2)
	floats.AddScaled(next, h/3, k3)
	floats.AddScaled(next, h/6, k4)

	return next
}

func validate(ic Vector, n int, h float64) error {
	switch {
	case len(ic) == 0:
		return ErrEmptyState
	case n < 0:
		return ErrBadSteps
	case !(h > 0) || math.IsInf(h, 0):
		return ErrBadStep
	}
	return nil
}

func finite(v Vector) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
