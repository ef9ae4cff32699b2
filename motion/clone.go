package motion

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Clone returns a deep copy of f.
func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	for k, v := range f {
		out[k] = append([]float64(nil), v...)
	}
	return out
}

// Clone returns a deep copy of s, frames and trajectory included.
func (s Sequence) Clone() (Sequence, error) {
	var out Sequence
	if err := deepcopy.Copy(&out, &s); err != nil {
		return Sequence{}, fmt.Errorf("motion: clone sequence: %w", err)
	}
	return out, nil
}

// FromClip copies a clip's frames into a new sequence.
func FromClip(c Clip) (Sequence, error) {
	return Sequence{Frames: c.Frames}.Clone()
}
