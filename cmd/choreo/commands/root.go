package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/choreo/pipeline"
	"github.com/katalvlaran/choreo/store"
)

// app carries global flags and the state they produce.
type app struct {
	configPath string
	verbose    bool
	storeDir   string

	cfg pipeline.Config
	log *slog.Logger
}

// NewRootCmd builds the command tree. stderr receives logs.
func NewRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "choreo",
		Short: "Motion-graph search and chaotic resequencing",
		Long: `choreo - build pose-transition graphs from motion capture and
resequence clips along a chaotic trajectory.

Each bone's angles are quantized into cells; consecutive frames become
weighted transitions. A clip is keyed to one Lorenz trajectory and read
back along another, and every resulting discontinuity is bridged by a
joint search over all bone graphs.

Examples:
  # Build and store graphs
  choreo build --corpus dance.yaml --store ./graphs

  # Resequence a clip
  choreo shuffle --corpus dance.yaml --clip waltz -o waltz.shuffled.yaml

  # Render one bone graph
  choreo dot --corpus dance.yaml --bone elbow | dot -Tsvg > elbow.svg`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(stderr)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (defaults apply when empty)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&a.storeDir, "store", "", "graph store directory (overrides store.dir)")

	root.AddCommand(
		newBuildCmd(a),
		newShuffleCmd(a),
		newIntegrateCmd(a),
		newDotCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd(os.Stderr).Execute()
}

func (a *app) init(stderr io.Writer) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	a.cfg = pipeline.DefaultConfig()
	if a.configPath != "" {
		cfg, err := pipeline.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.storeDir != "" {
		a.cfg.Store.Dir = a.storeDir
	}
	return nil
}

// openStore opens the configured store, or returns nil when none is set.
func (a *app) openStore() (*store.Store, error) {
	if !a.cfg.Store.Enabled() {
		return nil, nil
	}
	return store.Open(store.Options{
		Dir:      a.cfg.Store.Dir,
		InMemory: a.cfg.Store.InMemory,
		Logger:   a.log,
	})
}

// pipeline builds a Pipeline wired to the configured store. The returned
// closer is never nil.
func (a *app) pipeline() (*pipeline.Pipeline, func(), error) {
	s, err := a.openStore()
	if err != nil {
		return nil, func() {}, err
	}
	opts := []pipeline.Option{pipeline.WithLogger(a.log)}
	closer := func() {}
	if s != nil {
		opts = append(opts, pipeline.WithStore(s))
		closer = func() {
			if err := s.Close(); err != nil {
				a.log.Warn("close store", slog.Any("err", err))
			}
		}
	}
	p, err := pipeline.New(a.cfg, opts...)
	if err != nil {
		closer()
		return nil, func() {}, err
	}
	return p, closer, nil
}
