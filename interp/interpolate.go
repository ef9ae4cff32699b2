package interp

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/choreo/motion"
	"github.com/katalvlaran/choreo/shuffle"
)

// Gap is a boundary that could not be bridged.
type Gap struct {
	Boundary shuffle.Boundary
	Err      error
}

func (g Gap) Error() string {
	return fmt.Sprintf("boundary at %d (%d -> %d): %v", g.Boundary.Index, g.Boundary.Pre, g.Boundary.Post, g.Err)
}

func (g Gap) Unwrap() error { return g.Err }

// Result is an interpolated sequence.
type Result struct {
	// Frames is the input with bridges inserted before each boundary.
	Frames []motion.Frame

	// Inserted counts synthesized frames.
	Inserted int

	// Gaps lists unbridged boundaries in order.
	Gaps []Gap
}

// Err joins every gap, or returns nil when all boundaries were bridged.
func (r Result) Err() error {
	if len(r.Gaps) == 0 {
		return nil
	}
	errs := make([]error, len(r.Gaps))
	for i, g := range r.Gaps {
		errs[i] = g
	}
	return errors.Join(errs...)
}

// Interpolate bridges every boundary of frames concurrently and merges the
// bridges in frame order, whatever the order of boundaries. Boundaries
// without a path are reported as gaps and left as-is; any other failure
// aborts. Two boundaries at the same index are rejected.
func (ip *Interpolator) Interpolate(ctx context.Context, frames []motion.Frame, boundaries []shuffle.Boundary) (Result, error) {
	boundaries = slices.Clone(boundaries)
	slices.SortStableFunc(boundaries, func(a, b shuffle.Boundary) int { return cmp.Compare(a.Index, b.Index) })
	for i, b := range boundaries {
		if b.Index < 1 || b.Index >= len(frames) {
			return Result{}, fmt.Errorf("index %d of %d frames: %w", b.Index, len(frames), ErrBoundaryRange)
		}
		if i > 0 && boundaries[i-1].Index == b.Index {
			return Result{}, fmt.Errorf("index %d repeated: %w", b.Index, ErrBoundaryRange)
		}
	}

	bridges := make([][]motion.Frame, len(boundaries))
	gaps := make([]error, len(boundaries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ip.cfg.workers)
	for i, b := range boundaries {
		g.Go(func() error {
			out, err := ip.Bridge(gctx, frames[b.Index-1], frames[b.Index])
			switch {
			case IsGap(err):
				gaps[i] = err
			case err != nil:
				return fmt.Errorf("boundary at %d: %w", b.Index, err)
			default:
				bridges[i] = out
			}
			ip.cfg.logger.Debug("boundary bridged",
				slog.Int("index", b.Index),
				slog.Int("inserted", len(out)),
				slog.Bool("gap", gaps[i] != nil))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Frames: make([]motion.Frame, 0, len(frames))}
	next := 0
	for i, f := range frames {
		for next < len(boundaries) && boundaries[next].Index == i {
			if gaps[next] != nil {
				res.Gaps = append(res.Gaps, Gap{Boundary: boundaries[next], Err: gaps[next]})
			}
			res.Frames = append(res.Frames, bridges[next]...)
			res.Inserted += len(bridges[next])
			next++
		}
		res.Frames = append(res.Frames, f.Clone())
	}
	ip.cfg.logger.Info("sequence interpolated",
		slog.Int("frames", len(frames)),
		slog.Int("boundaries", len(boundaries)),
		slog.Int("inserted", res.Inserted),
		slog.Int("gaps", len(res.Gaps)))

	return res, nil
}
