package chaos

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// State is the lifecycle stage of a Mapper.
type State int

const (
	// Uninitialized: configured, not yet run.
	Uninitialized State = iota
	// Integrating: Run is in progress.
	Integrating
	// Done: a trajectory (or an error) is available.
	Done
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Integrating:
		return "integrating"
	case Done:
		return "done"
	}
	return "unknown"
}

// Mapper integrates one initial condition once and keeps the result.
type Mapper struct {
	f    Func
	ic   Vector
	n    int
	h    float64
	eps  float64
	aops []AdaptiveOption
	adpt bool
	dim  int

	mu    sync.Mutex // serializes Run
	state atomic.Int32
	traj  Trajectory
	err   error
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithAdaptive switches the Mapper to AdaptiveRK4 with tolerance eps.
func WithAdaptive(eps float64, opts ...AdaptiveOption) MapperOption {
	return func(m *Mapper) {
		m.eps = eps
		m.aops = opts
		m.adpt = true
	}
}

// WithDim requires the initial condition to have exactly n components.
func WithDim(n int) MapperOption {
	return func(m *Mapper) { m.dim = n }
}

// NewMapper validates the integration parameters and returns an
// Uninitialized Mapper. ic is copied.
func NewMapper(f Func, ic Vector, n int, h float64, opts ...MapperOption) (*Mapper, error) {
	if err := validate(ic, n, h); err != nil {
		return nil, err
	}
	m := &Mapper{f: f, ic: ic.Clone(), n: n, h: h}
	for _, opt := range opts {
		opt(m)
	}
	if m.dim > 0 && len(m.ic) != m.dim {
		return nil, fmt.Errorf("%d components, want %d: %w", len(m.ic), m.dim, ErrDimension)
	}
	if m.adpt && (!(m.eps > 0) || math.IsInf(m.eps, 0)) {
		return nil, ErrBadTolerance
	}

	return m, nil
}

// Run integrates on first call and returns the stored result afterwards.
func (m *Mapper) Run() (Trajectory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.State() == Done {
		return m.traj, m.err
	}

	m.state.Store(int32(Integrating))
	if m.adpt {
		m.traj, m.err = AdaptiveRK4(m.f, m.ic, m.n, m.h, m.eps, m.aops...)
	} else {
		m.traj, m.err = RK4(m.f, m.ic, m.n, m.h)
	}
	m.state.Store(int32(Done))

	return m.traj, m.err
}

// State reports the current lifecycle stage.
func (m *Mapper) State() State {
	return State(m.state.Load())
}

// Trajectory returns the result of a completed Run, or false before Done.
func (m *Mapper) Trajectory() (Trajectory, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.State() != Done || m.err != nil {
		return Trajectory{}, false
	}
	return m.traj, true
}
