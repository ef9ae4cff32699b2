// Package pipeline runs choreo end to end: build bone graphs from a corpus,
// integrate the mapping and shuffle trajectories, reorder one clip and
// bridge the resulting discontinuities.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/choreo/chaos"
	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/interp"
	"github.com/katalvlaran/choreo/motion"
	"github.com/katalvlaran/choreo/shuffle"
	"github.com/katalvlaran/choreo/store"
)

// ErrUnknownClip is returned when the requested clip is not in the corpus.
var ErrUnknownClip = fmt.Errorf("pipeline: unknown clip: %w", core.ErrPrecondition)

// Pipeline holds a validated configuration and optional store.
type Pipeline struct {
	cfg   Config
	log   *slog.Logger
	store *store.Store
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger handed to every stage.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithStore persists graphs, Bayes tables and trajectories to s.
func WithStore(s *store.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// New validates cfg.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Graphs is the output of BuildGraphs.
type Graphs struct {
	Bones map[string]*cspace.BoneGraph
	Bayes []*cspace.BayesTable
}

// BuildGraphs builds every bone graph and parent/child Bayes table of the
// corpus and saves them when a store is configured.
func (p *Pipeline) BuildGraphs(ctx context.Context, corpus motion.Corpus) (Graphs, error) {
	if err := corpus.Validate(); err != nil {
		return Graphs{}, err
	}
	bones, err := cspace.BuildAll(ctx, corpus.Skeleton, corpus.Clips,
		cspace.WithInterval(p.cfg.Interval),
		cspace.WithWorkers(p.cfg.Workers),
		cspace.WithLogger(p.log))
	if err != nil {
		return Graphs{}, err
	}
	bayes, err := cspace.BuildBayesTables(corpus.Skeleton, corpus.Clips, bones)
	if err != nil {
		return Graphs{}, err
	}
	if p.store != nil {
		if err := p.store.SaveGraphs(ctx, bones); err != nil {
			return Graphs{}, err
		}
		if err := p.store.SaveBayes(ctx, bayes); err != nil {
			return Graphs{}, err
		}
	}
	return Graphs{Bones: bones, Bayes: bayes}, nil
}

// Integrate runs the configured Lorenz system from ic for steps steps.
func (p *Pipeline) Integrate(ic []float64, steps int) (chaos.Trajectory, error) {
	opts := append([]chaos.MapperOption{chaos.WithDim(chaos.LorenzDim)}, p.cfg.adaptiveOptions()...)
	m, err := chaos.NewMapper(p.cfg.Lorenz.Func(), ic, steps, p.cfg.StepSize, opts...)
	if err != nil {
		return chaos.Trajectory{}, err
	}
	return m.Run()
}

// Report is the outcome of one Run.
type Report struct {
	RunID      uuid.UUID          `yaml:"run_id"`
	Clip       string             `yaml:"clip"`
	Sequence   motion.Sequence    `yaml:"sequence"`
	Order      []int              `yaml:"order"`
	Boundaries []shuffle.Boundary `yaml:"boundaries"`
	Inserted   int                `yaml:"inserted"`
	Gaps       []interp.Gap       `yaml:"-"`
}

// Err joins every unbridged boundary, or returns nil.
func (r *Report) Err() error {
	return interp.Result{Gaps: r.Gaps}.Err()
}

// Run resequences one clip of corpus. Unbridged boundaries are reported in
// Report.Gaps, not as an error.
func (p *Pipeline) Run(ctx context.Context, corpus motion.Corpus, clipName string) (*Report, error) {
	clip, ok := corpus.Clip(clipName)
	if !ok {
		return nil, fmt.Errorf("%q: %w", clipName, ErrUnknownClip)
	}
	n := len(clip.Frames)
	if n == 0 {
		return nil, fmt.Errorf("clip %q: %w", clipName, shuffle.ErrNoFrames)
	}
	rep := &Report{RunID: uuid.New(), Clip: clipName}
	log := p.log.With(slog.String("run", rep.RunID.String()), slog.String("clip", clipName))

	graphs, err := p.BuildGraphs(ctx, corpus)
	if err != nil {
		return nil, err
	}

	steps := p.cfg.Steps
	if steps == 0 {
		steps = n - 1
	}
	mapTraj, err := p.Integrate(p.cfg.MappingIC, steps)
	if err != nil {
		return nil, fmt.Errorf("mapping trajectory: %w", err)
	}
	shufTraj, err := p.Integrate(p.cfg.ShuffleIC, steps)
	if err != nil {
		return nil, fmt.Errorf("shuffle trajectory: %w", err)
	}
	if p.store != nil {
		if err := p.store.SaveTrajectory(ctx, rep.RunID.String()+"/mapping", mapTraj); err != nil {
			return nil, err
		}
		if err := p.store.SaveTrajectory(ctx, rep.RunID.String()+"/shuffle", shufTraj); err != nil {
			return nil, err
		}
	}

	mapping, err := shuffle.NewMapping(n, mapTraj)
	if err != nil {
		return nil, err
	}
	rep.Order, err = shuffle.Shuffle(mapping, shufTraj)
	if err != nil {
		return nil, err
	}
	frames, err := shuffle.Apply(clip.Frames, rep.Order)
	if err != nil {
		return nil, err
	}
	rep.Boundaries = shuffle.Boundaries(rep.Order)
	log.Info("clip shuffled", slog.Int("frames", n), slog.Int("boundaries", len(rep.Boundaries)))

	if len(rep.Boundaries) > 0 {
		res, err := p.interpolate(ctx, corpus.Skeleton, graphs.Bones, frames, rep.Boundaries, log)
		if err != nil {
			return nil, err
		}
		frames = res.Frames
		rep.Inserted = res.Inserted
		rep.Gaps = res.Gaps
	}
	rep.Sequence = motion.Sequence{Frames: frames, Trajectory: shufTraj}

	if len(rep.Gaps) > 0 {
		log.Warn("boundaries left unbridged", slog.Int("gaps", len(rep.Gaps)))
	}
	return rep, nil
}

func (p *Pipeline) interpolate(ctx context.Context, skel motion.Skeleton, bones map[string]*cspace.BoneGraph,
	frames []motion.Frame, bs []shuffle.Boundary, log *slog.Logger) (interp.Result, error) {
	strategy, err := interp.ParseStrategy(p.cfg.Search.Strategy)
	if err != nil {
		return interp.Result{}, err
	}
	ip, err := interp.New(skel, bones,
		interp.WithStrategy(strategy),
		interp.WithSearchOptions(p.cfg.searchOptions()...),
		interp.WithWorkers(p.cfg.Workers),
		interp.WithLogger(log))
	if err != nil {
		return interp.Result{}, err
	}
	return ip.Interpolate(ctx, frames, bs)
}
