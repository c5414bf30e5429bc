// Package services sits between the transports (CLI and HTTP) and the
// reduction core. It turns configuration into reducers, feeds parsed
// measurement files through them and records metrics for each outcome.
//
// # Services
//
//	ReductionService  parse + reduce one file or upload, geometry report
//	HealthService     liveness, readiness and version information
//
// Services take their dependencies and an optional *slog.Logger in the
// constructor; a nil logger falls back to slog.Default().
//
//	svc, err := services.NewReductionService(cfg.Physics, metrics, logger)
//	if err != nil {
//	    return err
//	}
//	res, err := svc.ReduceFile(ctx, "data/group_8_test_4.dat")
//
// A ReductionService is immutable. Per-request constant overrides go
// through WithOverrides, which returns a new service.
package services
