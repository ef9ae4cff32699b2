package shuffle

import (
	"fmt"

	"github.com/katalvlaran/choreo/chaos"
	"github.com/katalvlaran/choreo/motion"
)

// Shuffle reads m back along traj: the i-th of m.Len() evenly strided points
// of traj emits the frame of its nearest key. The result is the output order
// as original frame indices; frames may repeat or be skipped.
func Shuffle(m *Mapping, traj chaos.Trajectory) ([]int, error) {
	pts, _, err := strided(m.frames, traj)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(pts))
	for i, p := range pts {
		if len(p) != m.dims {
			return nil, fmt.Errorf("point %d has %d components, want %d: %w", i, len(p), m.dims, ErrDimMismatch)
		}
		order[i] = m.nearest(p, i)
	}
	return order, nil
}

// Apply returns copies of frames in the given order.
func Apply(frames []motion.Frame, order []int) ([]motion.Frame, error) {
	out := make([]motion.Frame, len(order))
	for i, k := range order {
		if k < 0 || k >= len(frames) {
			return nil, fmt.Errorf("position %d: index %d of %d frames: %w", i, k, len(frames), ErrOrderRange)
		}
		out[i] = frames[k].Clone()
	}
	return out, nil
}

// Boundary is a discontinuity in a shuffled order: the frame at Index is
// not the original successor of the frame before it.
type Boundary struct {
	// Index is the position in the shuffled order, always >= 1.
	Index int `yaml:"index" msgpack:"index"`

	// Pre and Post are the original indices of the frames at Index-1 and Index.
	Pre  int `yaml:"pre" msgpack:"pre"`
	Post int `yaml:"post" msgpack:"post"`
}

// Boundaries lists every position i >= 1 where order[i] != order[i-1]+1.
func Boundaries(order []int) []Boundary {
	var out []Boundary
	for i := 1; i < len(order); i++ {
		if order[i] != order[i-1]+1 {
			out = append(out, Boundary{Index: i, Pre: order[i-1], Post: order[i]})
		}
	}
	return out
}
