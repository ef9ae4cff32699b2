// Package interp repairs the discontinuities of a shuffled sequence by
// searching the joint pose graph between the frames on either side of each
// boundary and synthesizing the intermediate frames.
//
// Each intermediate joint node becomes one frame: every graphed bone takes
// the center of its cell, bones without a graph keep the pose of the frame
// before the boundary, and the root translation is interpolated linearly
// across the inserted span.
//
// A boundary with no joint path is a Gap. Gaps are collected and reported
// together; malformed input aborts. A skeleton without graphed bones keeps
// every pose fixed, so each of its boundaries is a Gap.
package interp

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/choreo/combinatoric"
	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/motion"
	"github.com/katalvlaran/choreo/search"
)

// Sentinel errors.
var (
	// ErrGap marks a boundary without a joint path.
	ErrGap = fmt.Errorf("interp: boundary not bridged: %w", search.ErrNoPath)

	ErrUnknownStrategy = fmt.Errorf("interp: unknown strategy: %w", core.ErrPrecondition)
	ErrGraphMismatch   = fmt.Errorf("interp: bone graph does not match skeleton: %w", core.ErrPrecondition)
	ErrBoundaryRange   = fmt.Errorf("interp: boundary index out of range: %w", core.ErrPrecondition)
)

// Interpolator bridges boundaries over a fixed set of bone graphs.
type Interpolator struct {
	skel  motion.Skeleton
	root  motion.Bone
	joint *combinatoric.Graph
	bones map[string]*cspace.BoneGraph
	cfg   config
}

// New checks that every graph belongs to a skeleton bone with the same
// number of angle channels.
func New(skel motion.Skeleton, graphs map[string]*cspace.BoneGraph, opts ...Option) (*Interpolator, error) {
	if err := skel.Validate(); err != nil {
		return nil, err
	}
	for name, bg := range graphs {
		b, ok := skel.Bone(name)
		if !ok {
			return nil, fmt.Errorf("graph %q: %w", name, motion.ErrUnknownBone)
		}
		if bg != nil && bg.DOF != b.AngleDOF() {
			return nil, fmt.Errorf("bone %q: graph has %d DOF, bone has %d angles: %w",
				name, bg.DOF, b.AngleDOF(), ErrGraphMismatch)
		}
	}
	var joint *combinatoric.Graph
	if len(graphs) > 0 {
		var err error
		if joint, err = combinatoric.New(graphs); err != nil {
			return nil, err
		}
	}
	root, _ := skel.Root()

	return &Interpolator{
		skel:  skel,
		root:  root,
		joint: joint,
		bones: graphs,
		cfg:   newConfig(opts...),
	}, nil
}

// Bridge returns the frames to insert between pre and post, possibly none.
// An error wrapping ErrGap means no joint path exists.
func (ip *Interpolator) Bridge(ctx context.Context, pre, post motion.Frame) ([]motion.Frame, error) {
	if err := ip.skel.CheckFrame(pre); err != nil {
		return nil, fmt.Errorf("pre: %w", err)
	}
	if err := ip.skel.CheckFrame(post); err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	if ip.joint == nil {
		return nil, fmt.Errorf("no graphed bones: %w", ErrGap)
	}
	start, err := ip.node(pre)
	if err != nil {
		return nil, fmt.Errorf("pre: %w", err)
	}
	goal, err := ip.node(post)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}

	path, err := ip.search(ctx, start, goal)
	if err != nil {
		return nil, err
	}
	if !path.Found() {
		return nil, fmt.Errorf("%s -> %s: %w", start, goal, ErrGap)
	}

	if len(path.Nodes) <= 2 {
		return nil, nil
	}
	mid := path.Nodes[1 : len(path.Nodes)-1]
	out := make([]motion.Frame, len(mid))
	for k, n := range mid {
		f, err := ip.synthesize(pre, post, n, float64(k+1)/float64(len(mid)+1))
		if err != nil {
			return nil, err
		}
		out[k] = f
	}
	return out, nil
}

func (ip *Interpolator) node(f motion.Frame) (combinatoric.Node, error) {
	cells := make(map[string]cspace.CellID, len(ip.bones))
	for name, bg := range ip.bones {
		b, _ := ip.skel.Bone(name)
		_, angles, err := b.Split(f[name])
		if err != nil {
			return combinatoric.Node{}, err
		}
		id, err := bg.CellOf(angles)
		if err != nil {
			return combinatoric.Node{}, err
		}
		cells[name] = id
	}
	return ip.joint.NewNode(cells)
}

func (ip *Interpolator) search(ctx context.Context, start, goal combinatoric.Node) (search.Path[combinatoric.Node], error) {
	opts := append(slices.Clone(ip.cfg.search), search.WithContext(ctx))
	switch ip.cfg.strategy {
	case Parallel:
		return ip.joint.Parallel(start, goal, opts...)
	case DepthLimited:
		res, err := ip.joint.DepthLimited(start, goal, opts...)
		return res.Best, err
	default:
		return ip.joint.BestFirst(start, goal, opts...)
	}
}

// synthesize builds the frame for joint node n at fraction t of the span.
func (ip *Interpolator) synthesize(pre, post motion.Frame, n combinatoric.Node, t float64) (motion.Frame, error) {
	out := pre.Clone()
	for _, b := range ip.skel.Bones {
		v, ok := out[b.Name]
		if !ok || b.DOF() == 0 {
			continue
		}
		trans, angles, err := b.Split(v)
		if err != nil {
			return nil, err
		}
		if b.Name == ip.root.Name && len(trans) > 0 {
			to, _, err := b.Split(post[b.Name])
			if err != nil {
				return nil, err
			}
			trans = lerp(trans, to, t)
		}
		if bg, ok := ip.bones[b.Name]; ok {
			id, _ := n.Cell(b.Name)
			if angles, err = bg.Center(id); err != nil {
				return nil, err
			}
		}
		out[b.Name] = b.Join(trans, angles)
	}
	return out, nil
}

func lerp(a, b []float64, t float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// IsGap reports whether err is a bridging gap rather than malformed input.
func IsGap(err error) bool { return errors.Is(err, ErrGap) }
