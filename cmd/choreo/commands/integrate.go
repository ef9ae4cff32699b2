package commands

import (
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newIntegrateCmd(a *app) *cobra.Command {
	var (
		ic    []float64
		steps int
	)
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrate a Lorenz trajectory",
		Long: `Integrate the configured Lorenz system from --ic and print the
trajectory as YAML. Step size, parameters and adaptive mode come from
the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, closeStore, err := a.pipeline()
			if err != nil {
				return err
			}
			defer closeStore()

			if len(ic) == 0 {
				ic = a.cfg.MappingIC
			}
			tr, err := p.Integrate(ic, steps)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(tr)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().Float64SliceVar(&ic, "ic", nil, "initial condition x,y,z (default mapping_ic)")
	cmd.Flags().IntVar(&steps, "steps", 100, "number of steps")
	return cmd
}
