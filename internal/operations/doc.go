// Package operations runs multi-file sweeps.
//
// A sweep takes the measurement files of a test series (one file per angle
// of attack) and reduces them concurrently with a bounded number of
// workers:
//
//	paths, err := operations.ResolveInputs([]string{"data/"}, ".dat")
//	sweeper := operations.NewSweeper(svc, cfg.Run.Workers, logger,
//	    operations.WithMetrics(metrics))
//	report, err := sweeper.Run(ctx, paths)
//
// Outcomes are stored at the index of their input, so the report order
// never depends on scheduling. A file that fails to parse or reduce is
// recorded with its error and the sweep carries on; no partial result is
// reported as a success.
//
// Each sweep gets a run id (a UUID, reused from the context trace id when
// one is present) that tags its log lines and span.
package operations
