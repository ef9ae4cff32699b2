package chaos

// LorenzDim is the state dimension of the Lorenz system.
const LorenzDim = 3

// Lorenz holds the three constants of the Lorenz system
//
//	dx/dt = σ(y − x)
//	dy/dt = x(ρ − z) − y
//	dz/dt = xy − βz
type Lorenz struct {
	Sigma float64 `yaml:"sigma"`
	Rho   float64 `yaml:"rho"`
	Beta  float64 `yaml:"beta"`
}

// DefaultLorenz returns the classic chaotic parameters (10, 28, 8/3).
func DefaultLorenz() Lorenz {
	return Lorenz{Sigma: 10, Rho: 28, Beta: 8.0 / 3.0}
}

// Derivative evaluates the system at a three-component state. Shorter
// states panic; NewMapper with WithDim(LorenzDim) rejects them up front.
func (l Lorenz) Derivative(s Vector, _, _ float64) Vector {
	x, y, z := s[0], s[1], s[2]
	return Vector{
		l.Sigma * (y - x),
		x*(l.Rho-z) - y,
		x*y - l.Beta*z,
	}
}

// Func adapts Derivative to the Func signature.
func (l Lorenz) Func() Func { return l.Derivative }
