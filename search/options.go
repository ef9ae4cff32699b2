package search

import (
	"context"
	"fmt"
)

// DefaultMaxDepth is the depth DepthLimited and ParallelBFS use when
// MaxDepth is zero.
const DefaultMaxDepth = 32

// Option configures a search. Invalid values are recorded and surfaced as
// ErrOptionViolation when the search starts.
type Option func(*Options)

// Options holds parameters shared by all searches.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth caps path length in edges. Zero disables the cap for
	// Dijkstra, BestFirst and Reachable; DepthLimited and ParallelBFS fall
	// back to DefaultMaxDepth.
	MaxDepth int

	// MaxExpansions, if > 0, caps expanded nodes; hitting it ends the search
	// with no path.
	MaxExpansions int

	// OnExpand is called for every expanded node with its depth.
	OnExpand func(depth int)

	err error
}

// DefaultOptions returns background context, no depth cap, unlimited
// expansions and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		OnExpand: func(int) {},
	}
}

// layers is the number of rounds a layered search runs.
func (o Options) layers() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth caps path length. Negative values are rejected.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithMaxExpansions caps expanded nodes. Negative values are rejected.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithOnExpand registers a hook run before each node expansion.
func WithOnExpand(fn func(depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// budget counts expansions against MaxExpansions.
type budget struct {
	max  int
	used int
}

func (b *budget) spend() bool {
	b.used++
	return b.max == 0 || b.used <= b.max
}
