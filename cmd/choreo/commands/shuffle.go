package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/choreo/motion"
)

func newShuffleCmd(a *app) *cobra.Command {
	var (
		corpusPath string
		clipName   string
		outPath    string
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Resequence a clip and bridge its discontinuities",
		Long: `Key a clip to the mapping trajectory, read it back along the shuffle
trajectory and fill every discontinuity with interpolated frames.

The resulting sequence is written as YAML to --output, or stdout.
Boundaries that could not be bridged are logged; with --strict they
also fail the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			corpus, err := motion.LoadCorpus(corpusPath)
			if err != nil {
				return err
			}
			p, closeStore, err := a.pipeline()
			if err != nil {
				return err
			}
			defer closeStore()

			rep, err := p.Run(cmd.Context(), corpus, clipName)
			if err != nil {
				return err
			}
			data, err := motion.EncodeSequence(rep.Sequence)
			if err != nil {
				return err
			}
			if outPath == "" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}

			a.log.Info("shuffle done",
				slog.String("run", rep.RunID.String()),
				slog.Int("frames", rep.Sequence.Len()),
				slog.Int("boundaries", len(rep.Boundaries)),
				slog.Int("inserted", rep.Inserted))
			for _, g := range rep.Gaps {
				a.log.Warn("gap", slog.Int("at", g.Boundary.Index), slog.Any("err", g.Err))
			}
			if strict {
				return rep.Err()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "corpus YAML file (required)")
	cmd.Flags().StringVar(&clipName, "clip", "", "clip to resequence (required)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any boundary is left unbridged")
	_ = cmd.MarkFlagRequired("corpus")
	_ = cmd.MarkFlagRequired("clip")
	return cmd
}
