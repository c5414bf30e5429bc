package operations

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "tunnelcli/internal/errors"
	"tunnelcli/internal/infrastructure"
	"tunnelcli/internal/reduction"
	"tunnelcli/pkg/contracts/domain"
)

const (
	TracerName = "tunnelcli.operations"

	// DefaultWorkers bounds concurrent reductions when none is configured
	DefaultWorkers = 4
)

// FileReducer reduces one measurement file
type FileReducer interface {
	ReduceFile(ctx context.Context, path string) (*reduction.Result, error)
}

// FileOutcome is the result of one file of a sweep. Exactly one of Result
// and Err is set.
type FileOutcome struct {
	Path     string
	Summary  domain.ReductionSummary
	Result   *reduction.Result
	Err      error
	Duration time.Duration
}

// SweepReport holds the outcomes of a sweep in input order
type SweepReport struct {
	RunID       string        `json:"run_id"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Outcomes    []FileOutcome `json:"-"`
	Failed      int           `json:"failed"`
}

// Summaries returns one report line per input file, in input order
func (r *SweepReport) Summaries() []domain.ReductionSummary {
	out := make([]domain.ReductionSummary, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = o.Summary
	}
	return out
}

// Results returns the successful reductions in input order
func (r *SweepReport) Results() []*reduction.Result {
	out := make([]*reduction.Result, 0, len(r.Outcomes)-r.Failed)
	for _, o := range r.Outcomes {
		if o.Result != nil {
			out = append(out, o.Result)
		}
	}
	return out
}

// Succeeded returns the number of files reduced without error
func (r *SweepReport) Succeeded() int { return len(r.Outcomes) - r.Failed }

// HasFailures reports whether any file failed
func (r *SweepReport) HasFailures() bool { return r.Failed > 0 }

// Duration returns the wall time of the sweep
func (r *SweepReport) Duration() time.Duration { return r.CompletedAt.Sub(r.StartedAt) }

// ProgressFunc is called after each file finishes. Calls may come from
// several goroutines.
type ProgressFunc func(Progress, FileOutcome)

// SweepOption configures a Sweeper
type SweepOption func(*Sweeper)

// WithMetrics records sweep counters on m
func WithMetrics(m *infrastructure.ReductionMetrics) SweepOption {
	return func(s *Sweeper) { s.metrics = m }
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) SweepOption {
	return func(s *Sweeper) { s.onProgress = fn }
}

// Sweeper reduces many files with a bounded number of workers
type Sweeper struct {
	reducer    FileReducer
	workers    int
	metrics    *infrastructure.ReductionMetrics
	onProgress ProgressFunc
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewSweeper creates a sweeper. workers <= 0 selects DefaultWorkers.
func NewSweeper(reducer FileReducer, workers int, logger *slog.Logger, opts ...SweepOption) *Sweeper {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Sweeper{
		reducer: reducer,
		workers: workers,
		tracer:  otel.Tracer(TracerName),
		logger:  logger.With(slog.String("component", "sweep")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the concurrency limit
func (s *Sweeper) Workers() int { return s.workers }

// Run reduces every path. A failing file does not stop the sweep; its
// outcome carries the error and it is counted in Failed. The returned
// error is non-nil only when ctx ends before all files finish, in which
// case the unfinished files are reported as failed with the context error.
func (s *Sweeper) Run(ctx context.Context, paths []string) (*SweepReport, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)
	logger := s.logger.With(slog.String("run_id", runID))

	ctx, span := s.tracer.Start(ctx, "operations.sweep",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("sweep.run_id", runID),
			attribute.Int("sweep.files", len(paths)),
			attribute.Int("sweep.workers", s.workers),
		),
	)
	defer span.End()

	report := &SweepReport{
		RunID:     runID,
		StartedAt: time.Now(),
		Outcomes:  make([]FileOutcome, len(paths)),
	}
	tracker := NewProgressTracker(runID, len(paths))

	logger.InfoContext(ctx, "sweep_start",
		slog.Int("files", len(paths)),
		slog.Int("workers", s.workers))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, path := range paths {
		g.Go(func() error {
			outcome := s.reduceOne(ctx, logger, path)
			report.Outcomes[i] = outcome

			progress := tracker.Increment(outcome.Err != nil, outcome.Summary.Source)
			logger.DebugContext(ctx, "sweep_progress",
				slog.Int("done", progress.Done),
				slog.Int("total", progress.Total),
				slog.String("eta", progress.ETA))
			if s.onProgress != nil {
				s.onProgress(progress, outcome)
			}
			return nil
		})
	}
	// Workers never return errors; per-file failures live in the outcomes.
	_ = g.Wait()

	for _, o := range report.Outcomes {
		if o.Err != nil {
			report.Failed++
		}
	}
	report.CompletedAt = time.Now()

	s.metrics.RecordSweep(ctx, len(paths), report.Failed)
	span.SetAttributes(attribute.Int("sweep.failed", report.Failed))
	if report.Failed > 0 {
		span.SetStatus(codes.Error, "one or more files failed")
	}

	logger.InfoContext(ctx, "sweep_complete",
		slog.Int("files", len(paths)),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", report.Duration()))

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Sweeper) reduceOne(ctx context.Context, logger *slog.Logger, path string) FileOutcome {
	start := time.Now()
	source := filepath.Base(path)

	var (
		res *reduction.Result
		err error
	)
	if err = ctx.Err(); err == nil {
		res, err = s.reducer.ReduceFile(ctx, path)
	}

	outcome := FileOutcome{Path: path, Duration: time.Since(start)}
	if err != nil {
		outcome.Err = err
		outcome.Summary = reduction.FailureSummary(source, err)
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			logger.WarnContext(ctx, "file reduction failed",
				slog.String("file", source),
				slog.String("error_type", string(apperrors.TypeOf(err))),
				slog.String("field", outcome.Summary.Field),
				slog.String("error", err.Error()))
		}
		return outcome
	}

	outcome.Result = res
	outcome.Summary = res.Summary()
	return outcome
}
