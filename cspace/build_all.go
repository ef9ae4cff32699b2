package cspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/choreo/motion"
)

// BuildAll builds one graph per bone with angle channels from every clip,
// running up to WithWorkers builds at once. Bones without angle channels are
// skipped and absent from the result.
func BuildAll(ctx context.Context, skel motion.Skeleton, clips []motion.Clip, opts ...Option) (map[string]*BoneGraph, error) {
	cfg := newConfig(opts...)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	var mu sync.Mutex
	out := make(map[string]*BoneGraph, len(skel.Bones))
	for _, bone := range skel.Bones {
		if bone.AngleDOF() == 0 {
			cfg.logger.Debug("skipping bone without angle channels", slog.String("bone", bone.Name))
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := NewBuilder(bone.Name, bone.AngleDOF(), opts...)
			if err != nil {
				return err
			}
			for _, clip := range clips {
				series, err := clip.Angles(bone)
				if err != nil {
					return err
				}
				if err := b.Ingest(series); err != nil {
					return fmt.Errorf("clip %q: %w", clip.Name, err)
				}
			}
			bg, err := b.Build()
			if err != nil {
				return err
			}
			mu.Lock()
			out[bone.Name] = bg
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	cfg.logger.Info("bone graphs built", slog.Int("bones", len(out)), slog.Int("clips", len(clips)))

	return out, nil
}
