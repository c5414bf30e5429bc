package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tunnelcli/internal/config"
	"tunnelcli/internal/exporter"
	"tunnelcli/internal/files"
	"tunnelcli/internal/reduction"
)

type reduceOptions struct {
	physics physicsFlags
	out     string
	plot    bool
	asJSON  bool
	name    string
}

func newReduceCmd(root *rootOptions) *cobra.Command {
	opts := &reduceOptions{}
	cmd := &cobra.Command{
		Use:   "reduce FILE",
		Short: "Reduce one measurement file",
		Long: `Reduce one measurement file and print its angle of attack, corrected
Reynolds number and lift coefficient.

Use "-" to read the measurement from stdin. With --out the Cp distribution
is written as CSV (and plotted with --plot) into that directory.`,
		Example: `  tunnelcli reduce data/group_8_test_4.dat
  tunnelcli reduce --chord 0.3 --geometry tabulated run.dat
  cat run.dat | tunnelcli reduce --name run.dat -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(cmd, root, opts, args[0])
		},
	}
	opts.physics.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.out, "out", "", "directory for the Cp distribution CSV")
	cmd.Flags().BoolVar(&opts.plot, "plot", false, "also plot the Cp distribution into --out")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().StringVar(&opts.name, "name", "stdin", "source name of a measurement read from stdin")
	return cmd
}

func runReduce(cmd *cobra.Command, root *rootOptions, opts *reduceOptions, path string) error {
	rt, err := setup(cmd, root, func(cfg *config.Config) {
		opts.physics.apply(cmd.Flags(), &cfg.Physics)
	})
	if err != nil {
		return err
	}
	defer rt.close(cmd.Context())

	ctx := cmd.Context()
	var res *reduction.Result
	if path == "-" {
		res, err = rt.reduction.ReduceReader(ctx, cmd.InOrStdin(), opts.name)
	} else {
		res, err = rt.reduction.ReduceFile(ctx, path)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, exporter.FormatReport(res))
	}

	if opts.out == "" {
		return nil
	}
	chord := rt.cfg.Physics.Chord
	manager := files.NewManager(opts.out, rt.logger)
	written, err := exporter.NewSummaryExporter(exporter.NewCSVWriter(manager)).ExportDistribution(res, chord)
	if err != nil {
		return err
	}
	rt.logger.InfoContext(ctx, "distribution written", slog.String("path", written))

	if opts.plot {
		written, err := writeCpPlot(manager, res, chord, rt.cfg.Run.PlotFormat)
		if err != nil {
			return err
		}
		rt.logger.InfoContext(ctx, "plot written", slog.String("path", written))
	}
	return nil
}
