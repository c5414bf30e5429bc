package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tunnelcli/internal/config"
	"tunnelcli/internal/reduction"
)

func newAreaCmd(root *rootOptions) *cobra.Command {
	physics := &physicsFlags{}
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Compare the reference area strategies",
		Long: `Print the NACA 0018 cross-section area from every strategy, the
relative difference between the analytic and tabulated areas, and the solid
blockage factor of the configured strategy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, root, func(cfg *config.Config) {
				physics.apply(cmd.Flags(), &cfg.Physics)
			})
			if err != nil {
				return err
			}
			defer rt.close(cmd.Context())

			report, err := rt.reduction.Geometry(cmd.Context(), 0, 0)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Chord: %g m, span: %g m\n", report.Chord, report.Span)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "STRATEGY\tAREA (m^2)")
			for _, s := range []reduction.Strategy{reduction.StrategyAnalytic, reduction.StrategyLegendre, reduction.StrategyTabulated} {
				fmt.Fprintf(tw, "%s\t%.10f\n", s, report.Areas[string(s)])
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Relative difference (analytic vs tabulated): %.4f%%\n", 100*report.RelativeDiff)
			fmt.Fprintf(out, "Blockage factor (%s): %.6g\n", report.Strategy, report.Blockage)
			return nil
		},
	}
	physics.register(cmd.Flags())
	return cmd
}
