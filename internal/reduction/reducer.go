package reduction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/floats"

	apperrors "tunnelcli/internal/errors"
	"tunnelcli/pkg/contracts/domain"
)

const TracerName = "tunnelcli.reduction"

// Reducer reduces measurements under one fixed set of run constants. The
// model area and blockage factor are computed once at construction and
// shared read-only, so a Reducer is safe for concurrent use.
type Reducer struct {
	params   Params
	geometry GeometryProvider
	area     float64
	volume   float64
	blockage float64
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewReducer validates params and evaluates the geometry
func NewReducer(params Params, geometry GeometryProvider, logger *slog.Logger) (*Reducer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if geometry == nil {
		geometry = NewAnalyticGeometry(DefaultTolerance)
	}
	if params.CpVelocity == "" {
		params.CpVelocity = VelocityMeasured
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	area, err := geometry.Area(params.Chord)
	if err != nil {
		return nil, fmt.Errorf("model area (%s): %w", geometry.Name(), err)
	}
	volume := area * params.Span
	eps, err := BlockageFactor(params.BlockageK, volume, params.TunnelArea)
	if err != nil {
		return nil, err
	}

	logger.Debug("reducer ready",
		slog.String("geometry", geometry.Name()),
		slog.Float64("model_area", area),
		slog.Float64("blockage", eps),
	)

	return &Reducer{
		params:   params,
		geometry: geometry,
		area:     area,
		volume:   volume,
		blockage: eps,
		tracer:   otel.Tracer(TracerName),
		logger:   logger,
	}, nil
}

// Params returns the run constants
func (r *Reducer) Params() Params { return r.params }

// Geometry returns the area provider
func (r *Reducer) Geometry() GeometryProvider { return r.geometry }

// ModelArea returns the section area at the configured chord
func (r *Reducer) ModelArea() float64 { return r.area }

// Blockage returns ε
func (r *Reducer) Blockage() float64 { return r.blockage }

// Reduce runs the full pipeline for one measurement: Reynolds number,
// blockage correction, Cp and lift.
func (r *Reducer) Reduce(ctx context.Context, m domain.Measurement) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "reduction.reduce",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("measurement.source", m.Source),
			attribute.Int("measurement.taps", m.Taps()),
		),
	)
	defer span.End()

	result, err := r.reduce(m)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && m.Source != "" {
			appErr.WithFile(m.Source)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.DebugContext(ctx, "reduction failed",
			slog.String("file", m.Source),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("reduction.aoa", result.AoA),
		attribute.Float64("reduction.reynolds", result.Corrected.Reynolds),
		attribute.Float64("reduction.cl", result.Lift),
	)
	r.logger.DebugContext(ctx, "measurement reduced",
		slog.String("file", m.Source),
		slog.Float64("aoa", result.AoA),
		slog.Float64("re", result.Corrected.Reynolds),
		slog.Float64("cl", result.Lift),
		slog.Int("excluded_taps", result.Partition.Excluded),
	)
	return result, nil
}

func (r *Reducer) reduce(m domain.Measurement) (*Result, error) {
	if !m.IsAligned() {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("tap arrays are not aligned: x=%d y=%d p=%d", len(m.X), len(m.Y), len(m.P)),
		).WithField("taps")
	}
	if !m.IsFinite() {
		return nil, apperrors.NewInvalidInputError("measurement contains non-finite values").WithField("taps")
	}
	if m.Uinf <= 0 {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("freestream velocity must be positive, got %v", m.Uinf),
		).WithField("uinf")
	}

	re, err := Reynolds(r.params, m.Uinf)
	if err != nil {
		return nil, err
	}
	measured := FlowState{Velocity: m.Uinf, Reynolds: re}
	corrected := ApplyBlockage(measured, r.blockage)

	u := measured.Velocity
	if r.params.CpVelocity == VelocityCorrected {
		u = corrected.Velocity
	}
	cp, err := PressureCoefficients(r.params, m.P, u)
	if err != nil {
		return nil, err
	}

	part, err := PartitionSurfaces(m.X, cp, m.Y)
	if err != nil {
		return nil, err
	}
	cl, err := LiftCoefficient(part)
	if err != nil {
		return nil, err
	}

	return &Result{
		Source:      m.Source,
		AoA:         m.AoA,
		Measured:    measured,
		Corrected:   corrected,
		Blockage:    r.blockage,
		ModelArea:   r.area,
		ModelVolume: r.volume,
		Cp:          cp,
		XOverC:      floats.ScaleTo(make([]float64, len(m.X)), 1/r.params.Chord, m.X),
		Partition:   part,
		Lift:        cl,
	}, nil
}

// Summary flattens a result into a sweep report line
func (res *Result) Summary() domain.ReductionSummary {
	return domain.ReductionSummary{
		Source:            res.Source,
		Status:            domain.ReductionStatusOK,
		AoA:               res.AoA,
		Velocity:          res.Measured.Velocity,
		CorrectedVelocity: res.Corrected.Velocity,
		Reynolds:          res.Corrected.Reynolds,
		Blockage:          res.Blockage,
		Lift:              res.Lift,
		Taps:              len(res.Cp),
	}
}

// FailureSummary builds the report line for a file that could not be reduced
func FailureSummary(source string, err error) domain.ReductionSummary {
	s := domain.ReductionSummary{
		Source:    source,
		Status:    domain.ReductionStatusFailed,
		ErrorType: string(apperrors.TypeOf(err)),
		Error:     err.Error(),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		s.Field = appErr.Field()
	}
	return s
}
