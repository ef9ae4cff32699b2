// Package motion holds the skeleton and frame data that choreo builds graphs
// from and resequences: bones with their channels, per-frame pose vectors,
// recorded clips and output sequences.
//
// Angles are degrees in any real range; translation channels (named
// "Xposition", "Yposition", "Zposition") may lead a bone's channel list.
package motion

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/choreo/chaos"
	"github.com/katalvlaran/choreo/core"
)

// Sentinel errors, all preconditions.
var (
	ErrDOFMismatch   = fmt.Errorf("motion: pose vector length does not match bone DOF: %w", core.ErrPrecondition)
	ErrUnknownBone   = fmt.Errorf("motion: unknown bone: %w", core.ErrPrecondition)
	ErrDuplicateBone = fmt.Errorf("motion: duplicate bone: %w", core.ErrPrecondition)
	ErrMissingBone   = fmt.Errorf("motion: frame lacks a recorded bone: %w", core.ErrPrecondition)
	ErrNoRoot        = fmt.Errorf("motion: skeleton has no root bone: %w", core.ErrPrecondition)
)

// maxTranslation is the number of leading position channels a bone may carry.
const maxTranslation = 3

// Bone is one articulated DOF group of a skeleton.
type Bone struct {
	Name     string   `yaml:"name"`
	Parent   string   `yaml:"parent,omitempty"`
	Channels []string `yaml:"channels,omitempty"`
}

// DOF is the number of recorded channels.
func (b Bone) DOF() int { return len(b.Channels) }

// TranslationDOF counts the leading position channels, at most three.
func (b Bone) TranslationDOF() int {
	n := 0
	for _, c := range b.Channels {
		if n == maxTranslation || !strings.HasSuffix(strings.ToLower(c), "position") {
			break
		}
		n++
	}
	return n
}

// AngleDOF is the number of rotation channels.
func (b Bone) AngleDOF() int { return b.DOF() - b.TranslationDOF() }

// Split separates a pose vector into translation and angle parts. Both
// returned slices alias v.
func (b Bone) Split(v []float64) (translation, angles []float64, err error) {
	if len(v) != b.DOF() {
		return nil, nil, fmt.Errorf("bone %q: got %d values, want %d: %w", b.Name, len(v), b.DOF(), ErrDOFMismatch)
	}
	k := b.TranslationDOF()
	return v[:k], v[k:], nil
}

// Join builds a fresh pose vector from translation and angle parts.
func (b Bone) Join(translation, angles []float64) []float64 {
	out := make([]float64, 0, len(translation)+len(angles))
	out = append(out, translation...)
	return append(out, angles...)
}

// Skeleton is a bone hierarchy in declaration order.
type Skeleton struct {
	Bones []Bone `yaml:"bones"`
}

// Bone looks a bone up by name.
func (s Skeleton) Bone(name string) (Bone, bool) {
	for _, b := range s.Bones {
		if b.Name == name {
			return b, true
		}
	}
	return Bone{}, false
}

// Root returns the first bone without a parent.
func (s Skeleton) Root() (Bone, bool) {
	for _, b := range s.Bones {
		if b.Parent == "" {
			return b, true
		}
	}
	return Bone{}, false
}

// Validate checks names are unique, parents exist and a root is present.
func (s Skeleton) Validate() error {
	seen := make(map[string]bool, len(s.Bones))
	for _, b := range s.Bones {
		if seen[b.Name] {
			return fmt.Errorf("%q: %w", b.Name, ErrDuplicateBone)
		}
		seen[b.Name] = true
	}
	for _, b := range s.Bones {
		if b.Parent != "" && !seen[b.Parent] {
			return fmt.Errorf("parent %q of %q: %w", b.Parent, b.Name, ErrUnknownBone)
		}
	}
	if _, ok := s.Root(); !ok && len(s.Bones) > 0 {
		return ErrNoRoot
	}
	return nil
}

// CheckFrame verifies every bone with channels is present with the right
// vector length.
func (s Skeleton) CheckFrame(f Frame) error {
	for _, b := range s.Bones {
		if b.DOF() == 0 {
			continue
		}
		v, ok := f[b.Name]
		if !ok {
			return fmt.Errorf("%q: %w", b.Name, ErrMissingBone)
		}
		if len(v) != b.DOF() {
			return fmt.Errorf("bone %q: got %d values, want %d: %w", b.Name, len(v), b.DOF(), ErrDOFMismatch)
		}
	}
	return nil
}

// Frame maps bone names to pose vectors at one instant.
type Frame map[string][]float64

// Clip is one recorded motion take.
type Clip struct {
	Name   string  `yaml:"name"`
	Frames []Frame `yaml:"frames"`
}

// Angles extracts the per-frame angle vectors of one bone.
func (c Clip) Angles(b Bone) ([][]float64, error) {
	out := make([][]float64, 0, len(c.Frames))
	for i, f := range c.Frames {
		v, ok := f[b.Name]
		if !ok {
			return nil, fmt.Errorf("clip %q frame %d bone %q: %w", c.Name, i, b.Name, ErrMissingBone)
		}
		_, angles, err := b.Split(v)
		if err != nil {
			return nil, fmt.Errorf("clip %q frame %d: %w", c.Name, i, err)
		}
		out = append(out, angles)
	}
	return out, nil
}

// Sequence is an ordered list of frames plus the trajectory that keyed it.
type Sequence struct {
	Frames     []Frame          `yaml:"frames"`
	Trajectory chaos.Trajectory `yaml:"trajectory,omitempty"`
}

// Len reports the number of frames.
func (s Sequence) Len() int { return len(s.Frames) }
