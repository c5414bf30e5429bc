package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"tunnelcli/internal/config"
	"tunnelcli/internal/dataprocessing"
	apperrors "tunnelcli/internal/errors"
	"tunnelcli/internal/infrastructure"
	"tunnelcli/internal/reduction"
	api "tunnelcli/pkg/contracts/api/v1"
	"tunnelcli/pkg/contracts/domain"
)

// ReductionService loads measurement files and reduces them with one
// fixed set of run constants
type ReductionService struct {
	physics config.PhysicsConfig
	reducer *reduction.Reducer
	metrics *infrastructure.ReductionMetrics
	logger  *slog.Logger
}

// GeometryReport compares the area strategies at one chord
type GeometryReport struct {
	Chord        float64            `json:"chord"`
	Span         float64            `json:"span"`
	Strategy     string             `json:"strategy"`
	Areas        map[string]float64 `json:"areas"`
	RelativeDiff float64            `json:"relative_diff"`
	Blockage     float64            `json:"blockage"`
}

// ParamsFromConfig maps the physics section onto reduction run constants
func ParamsFromConfig(cfg config.PhysicsConfig) reduction.Params {
	return reduction.Params{
		Chord:      cfg.Chord,
		Density:    cfg.Density,
		Viscosity:  cfg.Viscosity,
		TunnelArea: cfg.TunnelArea,
		BlockageK:  cfg.BlockageK,
		Span:       cfg.Span,
		CpVelocity: reduction.VelocityBasis(cfg.CpVelocity),
	}
}

// GeometryFromConfig builds the configured area strategy
func GeometryFromConfig(cfg config.PhysicsConfig) (reduction.GeometryProvider, error) {
	return reduction.NewGeometry(reduction.Strategy(cfg.Geometry), cfg.TabulatedArea, cfg.Tolerance)
}

// NewReductionService builds the reducer for the physics section. metrics may be nil.
func NewReductionService(physics config.PhysicsConfig, metrics *infrastructure.ReductionMetrics, logger *slog.Logger) (*ReductionService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "reduction"))

	geometry, err := GeometryFromConfig(physics)
	if err != nil {
		return nil, err
	}
	reducer, err := reduction.NewReducer(ParamsFromConfig(physics), geometry, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("reduction service initialized",
		slog.String("geometry", geometry.Name()),
		slog.Float64("chord", physics.Chord),
		slog.Float64("model_area", reducer.ModelArea()),
		slog.Float64("blockage", reducer.Blockage()),
	)

	return &ReductionService{
		physics: physics,
		reducer: reducer,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Physics returns the run constants the service was built with
func (s *ReductionService) Physics() config.PhysicsConfig { return s.physics }

// Reducer returns the underlying reducer
func (s *ReductionService) Reducer() *reduction.Reducer { return s.reducer }

// WithOverrides returns a service for a single request whose non-zero
// params replace the configured constants. A non-nil BlockageK applies even
// when zero. The receiver is unchanged.
func (s *ReductionService) WithOverrides(p api.ReduceParams) (*ReductionService, error) {
	physics := s.physics
	changed := false
	override := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
			changed = true
		}
	}
	override(&physics.Chord, p.Chord)
	override(&physics.Density, p.Density)
	override(&physics.Viscosity, p.Viscosity)
	override(&physics.TunnelArea, p.TunnelArea)
	override(&physics.Span, p.Span)
	if p.BlockageK != nil && *p.BlockageK != physics.BlockageK {
		physics.BlockageK = *p.BlockageK
		changed = true
	}
	if p.Geometry != "" && p.Geometry != physics.Geometry {
		physics.Geometry = p.Geometry
		changed = true
	}
	if !changed {
		return s, nil
	}

	geometry, err := GeometryFromConfig(physics)
	if err != nil {
		return nil, err
	}
	reducer, err := reduction.NewReducer(ParamsFromConfig(physics), geometry, s.logger)
	if err != nil {
		return nil, err
	}
	return &ReductionService{
		physics: physics,
		reducer: reducer,
		metrics: s.metrics,
		logger:  s.logger,
	}, nil
}

// ReduceFile parses and reduces the measurement file at path
func (s *ReductionService) ReduceFile(ctx context.Context, path string) (*reduction.Result, error) {
	start := time.Now()
	m, err := dataprocessing.ParseFile(path)
	if err != nil {
		s.record(ctx, start, nil, err)
		return nil, err
	}
	return s.reduce(ctx, start, m)
}

// ReduceReader parses and reduces a measurement read from r. source names
// the measurement in results and errors.
func (s *ReductionService) ReduceReader(ctx context.Context, r io.Reader, source string) (*reduction.Result, error) {
	start := time.Now()
	m, err := dataprocessing.Parse(r, source)
	if err != nil {
		s.record(ctx, start, nil, err)
		return nil, err
	}
	return s.reduce(ctx, start, m)
}

// ReduceRequest applies the per-request overrides and reduces the
// measurement read from r. It also returns the chord the result was
// normalized with.
func (s *ReductionService) ReduceRequest(ctx context.Context, params api.ReduceParams, r io.Reader, source string) (*reduction.Result, float64, error) {
	svc, err := s.WithOverrides(params)
	if err != nil {
		return nil, 0, err
	}
	res, err := svc.ReduceReader(ctx, r, source)
	if err != nil {
		return nil, 0, err
	}
	return res, svc.physics.Chord, nil
}

func (s *ReductionService) reduce(ctx context.Context, start time.Time, m *domain.Measurement) (*reduction.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := s.reducer.Reduce(ctx, *m)
	s.record(ctx, start, res, err)
	return res, err
}

func (s *ReductionService) record(ctx context.Context, start time.Time, res *reduction.Result, err error) {
	if err != nil {
		errType := string(apperrors.TypeOf(err))
		if errType == "" {
			errType = "UNKNOWN"
		}
		s.metrics.RecordReduction(ctx, time.Since(start), 0, errType)
		return
	}
	s.metrics.RecordReduction(ctx, time.Since(start), res.Lift, "")
}

// Geometry evaluates every area strategy at chord and span. Zero values
// fall back to the configured ones.
func (s *ReductionService) Geometry(ctx context.Context, chord, span float64) (GeometryReport, error) {
	if chord == 0 {
		chord = s.physics.Chord
	}
	if span == 0 {
		span = s.physics.Span
	}

	strategies := []reduction.Strategy{
		reduction.StrategyAnalytic,
		reduction.StrategyLegendre,
		reduction.StrategyTabulated,
	}
	report := GeometryReport{
		Chord: chord,
		Span:  span,
		Areas: make(map[string]float64, len(strategies)),
	}
	for _, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			return GeometryReport{}, err
		}
		g, err := reduction.NewGeometry(strategy, s.physics.TabulatedArea, s.physics.Tolerance)
		if err != nil {
			return GeometryReport{}, err
		}
		area, err := g.Area(chord)
		if err != nil {
			return GeometryReport{}, fmt.Errorf("%s area: %w", strategy, err)
		}
		report.Areas[string(strategy)] = area
	}

	tabulated := report.Areas[string(reduction.StrategyTabulated)]
	report.RelativeDiff = math.Abs(report.Areas[string(reduction.StrategyAnalytic)]-tabulated) / tabulated

	configured := s.reducer.Geometry().Name()
	report.Strategy = configured
	eps, err := reduction.BlockageFactor(s.physics.BlockageK, report.Areas[configured]*span, s.physics.TunnelArea)
	if err != nil {
		return GeometryReport{}, err
	}
	report.Blockage = eps

	s.logger.DebugContext(ctx, "geometry evaluated",
		slog.Float64("chord", chord),
		slog.Float64("relative_diff", report.RelativeDiff))
	return report, nil
}

// IsClientError reports whether err was caused by the measurement or the
// request rather than the service
func IsClientError(err error) bool {
	return errors.Is(err, apperrors.ErrParse) ||
		errors.Is(err, apperrors.ErrInvalidInput) ||
		errors.Is(err, apperrors.ErrNotFound)
}
