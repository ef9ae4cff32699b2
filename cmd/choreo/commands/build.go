package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/choreo/motion"
)

func newBuildCmd(a *app) *cobra.Command {
	var corpusPath string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build bone graphs from a corpus",
		Long: `Build one pose-transition graph per bone, plus a Bayes table for each
parent/child bone pair, and print a summary.

When a store is configured (--store or store.dir) the graphs and tables
are saved to it.`,
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

			graphs, err := p.BuildGraphs(cmd.Context(), corpus)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			names := make([]string, 0, len(graphs.Bones))
			for name := range graphs.Bones {
				names = append(names, name)
			}
			slices.Sort(names)
			fmt.Fprintf(out, "%-16s %8s %8s\n", "BONE", "NODES", "EDGES")
			for _, name := range names {
				bg := graphs.Bones[name]
				fmt.Fprintf(out, "%-16s %8d %8d\n", name, len(bg.Nodes()), len(bg.Edges()))
			}
			for _, t := range graphs.Bayes {
				fmt.Fprintf(out, "bayes %s/%s: %d entries\n", t.Parent, t.Child, t.Len())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "corpus YAML file (required)")
	_ = cmd.MarkFlagRequired("corpus")
	return cmd
}
