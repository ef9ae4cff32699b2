package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/dot"
	"github.com/katalvlaran/choreo/motion"
)

func newDotCmd(a *app) *cobra.Command {
	var (
		corpusPath string
		bone       string
	)
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Render a bone graph as Graphviz DOT",
		Long: `Print one bone graph in DOT. The graph is built from --corpus, or
loaded from the store when no corpus is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				bg  *cspace.BoneGraph
				err error
			)
			if corpusPath != "" {
				bg, err = a.buildBone(cmd, corpusPath, bone)
			} else {
				bg, err = a.loadBone(cmd, bone)
			}
			if err != nil {
				return err
			}
			return dot.WriteBoneGraph(cmd.OutOrStdout(), bg)
		},
	}
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "corpus YAML file")
	cmd.Flags().StringVar(&bone, "bone", "", "bone to render (required)")
	_ = cmd.MarkFlagRequired("bone")
	return cmd
}

func (a *app) buildBone(cmd *cobra.Command, corpusPath, bone string) (*cspace.BoneGraph, error) {
	corpus, err := motion.LoadCorpus(corpusPath)
	if err != nil {
		return nil, err
	}
	b, ok := corpus.Skeleton.Bone(bone)
	if !ok {
		return nil, fmt.Errorf("%q: %w", bone, motion.ErrUnknownBone)
	}
	graphs, err := cspace.BuildAll(cmd.Context(), corpus.Skeleton, corpus.Clips,
		cspace.WithInterval(a.cfg.Interval),
		cspace.WithWorkers(a.cfg.Workers),
		cspace.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	bg, ok := graphs[b.Name]
	if !ok {
		return nil, fmt.Errorf("bone %q has no angle channels", bone)
	}
	return bg, nil
}

func (a *app) loadBone(cmd *cobra.Command, bone string) (*cspace.BoneGraph, error) {
	s, err := a.openStore()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("dot: need --corpus or a store")
	}
	defer s.Close()
	return s.LoadGraph(cmd.Context(), bone)
}
