// Package shuffle reorders a motion sequence by keying its frames to one
// chaotic trajectory and reading them back along another.
//
// Frame i is keyed to point i·⌊M/N⌋ of the mapping trajectory. A second
// trajectory, strided the same way, is walked point by point and each point
// emits the frame of its nearest key. Reading back along the mapping
// trajectory itself reproduces the input order exactly.
package shuffle

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/katalvlaran/choreo/chaos"
	"github.com/katalvlaran/choreo/core"
)

// Sentinel errors, all preconditions.
var (
	ErrNoFrames        = fmt.Errorf("shuffle: sequence has no frames: %w", core.ErrPrecondition)
	ErrShortTrajectory = fmt.Errorf("shuffle: trajectory has fewer points than frames: %w", core.ErrPrecondition)
	ErrDimMismatch     = fmt.Errorf("shuffle: point dimension mismatch: %w", core.ErrPrecondition)
	ErrOrderRange      = fmt.Errorf("shuffle: order index out of range: %w", core.ErrPrecondition)
)

// Mapping is the point → frame table of one sequence.
type Mapping struct {
	frames int
	stride int
	dims   int
	keys   []chaos.Vector
	tree   *kdtree.Tree
}

// NewMapping keys n frames to traj. traj must have at least n points of
// equal dimension.
func NewMapping(n int, traj chaos.Trajectory) (*Mapping, error) {
	keys, stride, err := strided(n, traj)
	if err != nil {
		return nil, err
	}
	dims := len(keys[0])
	pts := make(keyPoints, n)
	for i, k := range keys {
		if len(k) != dims {
			return nil, fmt.Errorf("key %d has %d components, want %d: %w", i, len(k), dims, ErrDimMismatch)
		}
		pts[i] = keyPoint{frame: i, at: k}
	}

	return &Mapping{
		frames: n,
		stride: stride,
		dims:   dims,
		keys:   keys,
		tree:   kdtree.New(pts, false),
	}, nil
}

// strided picks n evenly strided points from traj.
func strided(n int, traj chaos.Trajectory) ([]chaos.Vector, int, error) {
	if n <= 0 {
		return nil, 0, ErrNoFrames
	}
	m := traj.Len()
	if m < n {
		return nil, 0, fmt.Errorf("%d points for %d frames: %w", m, n, ErrShortTrajectory)
	}
	stride := m / n
	out := make([]chaos.Vector, n)
	for i := range out {
		out[i] = traj.Points[i*stride]
	}
	return out, stride, nil
}

// Len returns the number of keyed frames.
func (m *Mapping) Len() int { return m.frames }

// Stride returns ⌊M/N⌋.
func (m *Mapping) Stride() int { return m.stride }

// Key returns the trajectory point of frame i.
func (m *Mapping) Key(i int) chaos.Vector { return m.keys[i].Clone() }

// Nearest returns the frame whose key is closest to p. Equidistant keys
// resolve to the lowest frame index.
func (m *Mapping) Nearest(p chaos.Vector) (int, error) {
	if len(p) != m.dims {
		return 0, fmt.Errorf("query has %d components, want %d: %w", len(p), m.dims, ErrDimMismatch)
	}
	return m.nearest(p, -1), nil
}

// nearest returns hint when p is exactly the key of frame hint.
func (m *Mapping) nearest(p chaos.Vector, hint int) int {
	if hint >= 0 && hint < m.frames && slices.Equal(m.keys[hint], p) {
		return hint
	}
	q := keyPoint{frame: -1, at: p}
	_, d := m.tree.Nearest(q)

	keep := kdtree.NewDistKeeper(d)
	m.tree.NearestSet(keep, q)
	best := -1
	for _, c := range keep.Heap {
		kp, ok := c.Comparable.(keyPoint)
		if !ok {
			continue
		}
		if best < 0 || kp.frame < best {
			best = kp.frame
		}
	}
	return best
}
