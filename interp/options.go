package interp

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/choreo/search"
)

// Strategy selects the joint search used to bridge a boundary.
type Strategy int

const (
	// BestFirst runs heuristic search on the product graph.
	BestFirst Strategy = iota
	// Parallel advances every bone graph in lockstep.
	Parallel
	// DepthLimited runs layered maximum-likelihood search on the product graph.
	DepthLimited
)

var strategyNames = [...]string{
	BestFirst:    "best-first",
	Parallel:     "parallel",
	DepthLimited: "depth-limited",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy maps a strategy name back to its value.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}

// Option configures an Interpolator.
type Option func(*config)

type config struct {
	strategy Strategy
	search   []search.Option
	workers  int
	logger   *slog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		strategy: BestFirst,
		workers:  4,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithStrategy picks the joint search.
func WithStrategy(s Strategy) Option {
	if s < BestFirst || s > DepthLimited {
		panic(fmt.Sprintf("interp: WithStrategy(%d)", int(s)))
	}
	return func(c *config) { c.strategy = s }
}

// WithSearchOptions passes options to every search. The context option is
// always overridden by the caller's context.
func WithSearchOptions(opts ...search.Option) Option {
	return func(c *config) { c.search = append(c.search, opts...) }
}

// WithWorkers bounds how many boundaries are bridged at once.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("interp: WithWorkers(%d)", n))
	}
	return func(c *config) { c.workers = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("interp: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}
