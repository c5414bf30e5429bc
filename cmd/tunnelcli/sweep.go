package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tunnelcli/internal/config"
	"tunnelcli/internal/dataprocessing"
	"tunnelcli/internal/exporter"
	"tunnelcli/internal/files"
	"tunnelcli/internal/operations"
	"tunnelcli/pkg/contracts/domain"
)

const (
	summaryFileName  = "summary.csv"
	workbookFileName = "sweep.xlsx"
	sweepJSONName    = "sweep.json"
)

type sweepOptions struct {
	physics    physicsFlags
	workers    int
	out        string
	formats    []string
	plot       bool
	plotFormat string
	ext        string
}

// sweepDocument is the JSON export of a sweep
type sweepDocument struct {
	RunID     string                    `json:"run_id"`
	Summaries []domain.ReductionSummary `json:"summaries"`
	LiftCurve dataprocessing.LiftCurve  `json:"lift_curve"`
}

func newSweepCmd(root *rootOptions) *cobra.Command {
	opts := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep DIR|FILE...",
		Short: "Reduce every measurement of an angle-of-attack sweep",
		Long: `Reduce a set of measurement files concurrently and print one line per
file plus the fitted lift curve slope.

Directories are expanded to their files with the configured extension in
natural order. A file that fails to reduce is reported and skipped; the
command exits non-zero if any file failed.`,
		Example: `  tunnelcli sweep data/
  tunnelcli sweep --format csv,xlsx --plot --out reports data/*.dat`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, root, opts, args)
		},
	}
	opts.physics.register(cmd.Flags())
	cmd.Flags().IntVar(&opts.workers, "workers", operations.DefaultWorkers, "concurrent reductions")
	cmd.Flags().StringVar(&opts.out, "out", "", "output directory for exports (default from config)")
	cmd.Flags().StringSliceVar(&opts.formats, "format", nil, "export formats: csv, xlsx, json")
	cmd.Flags().BoolVar(&opts.plot, "plot", false, "plot every Cp distribution and the lift curve")
	cmd.Flags().StringVar(&opts.plotFormat, "plot-format", "png", "plot format: png, svg or pdf")
	cmd.Flags().StringVar(&opts.ext, "ext", config.DefaultDataExtension, "measurement file extension for directory inputs")
	return cmd
}

func runSweep(cmd *cobra.Command, root *rootOptions, opts *sweepOptions, args []string) error {
	fs := cmd.Flags()
	rt, err := setup(cmd, root, func(cfg *config.Config) {
		opts.physics.apply(fs, &cfg.Physics)
		if fs.Changed("workers") {
			cfg.Run.Workers = opts.workers
		}
		if fs.Changed("out") {
			cfg.Run.OutputDir = opts.out
		}
		if fs.Changed("format") {
			cfg.Run.Formats = opts.formats
		}
		if fs.Changed("plot") {
			cfg.Run.Plot = opts.plot
		}
		if fs.Changed("plot-format") {
			cfg.Run.PlotFormat = opts.plotFormat
		}
		if fs.Changed("ext") {
			cfg.Run.Extension = opts.ext
		}
	})
	if err != nil {
		return err
	}
	defer rt.close(cmd.Context())

	ctx := cmd.Context()
	paths, err := operations.ResolveInputs(args, rt.cfg.Run.Extension)
	if err != nil {
		return err
	}

	sweeper := operations.NewSweeper(rt.reduction, rt.cfg.Run.Workers, rt.logger,
		operations.WithMetrics(rt.metrics),
		operations.WithProgress(func(p operations.Progress, o operations.FileOutcome) {
			rt.logger.DebugContext(ctx, "sweep progress",
				slog.String("file", o.Path),
				slog.Int("done", p.Done),
				slog.Int("total", p.Total),
				slog.String("eta", p.ETA))
		}))
	report, err := sweeper.Run(ctx, paths)
	if err != nil {
		return err
	}

	summaries := report.Summaries()
	curve := dataprocessing.NewSummarizer(rt.logger).Summarize(summaries)
	if err := exporter.WriteSweepTable(cmd.OutOrStdout(), curve, summaries); err != nil {
		return err
	}

	if err := exportSweep(rt, report, curve); err != nil {
		return err
	}

	if report.HasFailures() {
		return fmt.Errorf("%d of %d files failed", report.Failed, len(report.Outcomes))
	}
	return nil
}

// exportSweep writes the configured formats and plots into the output
// directory
func exportSweep(rt *session, report *operations.SweepReport, curve dataprocessing.LiftCurve) error {
	run := rt.cfg.Run
	if len(run.Formats) == 0 && !run.Plot {
		return nil
	}

	chord := rt.cfg.Physics.Chord
	manager := files.NewManager(run.OutputDir, rt.logger)
	summary := exporter.NewSummaryExporter(exporter.NewCSVWriter(manager))
	results := report.Results()
	summaries := report.Summaries()

	var written []string
	for _, format := range run.Formats {
		switch format {
		case "csv":
			path, err := summary.ExportSummary(summaries, summaryFileName)
			if err != nil {
				return err
			}
			written = append(written, path)
			for _, res := range results {
				path, err := summary.ExportDistribution(res, chord)
				if err != nil {
					return err
				}
				written = append(written, path)
			}
		case "xlsx":
			path, err := exporter.NewWorkbookExporter(manager).Export(workbookFileName, summaries, results, chord)
			if err != nil {
				return err
			}
			written = append(written, path)
		case "json":
			path, err := summary.ExportJSON(sweepDocument{
				RunID:     report.RunID,
				Summaries: summaries,
				LiftCurve: curve,
			}, sweepJSONName)
			if err != nil {
				return err
			}
			written = append(written, path)
		}
	}

	if run.Plot {
		for _, res := range results {
			path, err := writeCpPlot(manager, res, chord, run.PlotFormat)
			if err != nil {
				return err
			}
			written = append(written, path)
		}
		if len(curve.Points) > 0 {
			path, err := writeLiftPlot(manager, curve, run.PlotFormat)
			if err != nil {
				return err
			}
			written = append(written, path)
		}
	}

	rt.logger.Info("sweep exports written",
		slog.String("run_id", report.RunID),
		slog.String("dir", manager.BaseDir()),
		slog.Int("files", len(written)))
	return nil
}
