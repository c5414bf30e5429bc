package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"tunnelcli/internal/config"
	"tunnelcli/pkg/contracts"
)

const MeterName = "tunnelcli"

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// InitializeOTel sets up tracing and metrics from the telemetry config and
// installs them as the otel globals. Disabled signals fall back to no-op
// providers, so callers can always use the returned Meter and Tracer.
func InitializeOTel(cfg config.TelemetryConfig, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx := context.Background()

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(contracts.Version),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)

	providers := &OTelProviders{Logger: logger}

	if cfg.EnableTracing && cfg.TraceExporter != "none" {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}
	if cfg.EnableMetrics && cfg.MetricExporter != "none" {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	if providers.Tracer == nil {
		providers.Tracer = otel.Tracer(MeterName)
	}
	if providers.Meter == nil {
		providers.Meter = otel.Meter(MeterName)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.DebugContext(ctx, "opentelemetry initialized",
		slog.Bool("tracing_enabled", providers.TracerProvider != nil),
		slog.Bool("metrics_enabled", providers.MeterProvider != nil))

	return providers, nil
}

func initializeTracing(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		// stdout carries reports, span dumps go to stderr
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
	otel.SetTracerProvider(tp)

	providers.Logger.DebugContext(ctx, "tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return nil
}

func initializeMetrics(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version))
		otel.SetMeterProvider(mp)
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.DebugContext(ctx, "metrics initialized",
		slog.String("exporter", cfg.MetricExporter))
	return nil
}

// ReductionMetrics are the instruments recorded by reductions and the HTTP API
type ReductionMetrics struct {
	FilesTotal        metric.Int64Counter
	ReductionDuration metric.Float64Histogram
	LiftCoefficient   metric.Float64Histogram
	SweepsTotal       metric.Int64Counter

	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
}

// CreateReductionMetrics registers the instruments on meter
func CreateReductionMetrics(meter metric.Meter) (*ReductionMetrics, error) {
	filesTotal, err := meter.Int64Counter(
		"reduction_files_total",
		metric.WithDescription("Measurement files processed, by status and error type"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"reduction_duration_seconds",
		metric.WithDescription("Time to parse and reduce one measurement"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	lift, err := meter.Float64Histogram(
		"reduction_lift_coefficient",
		metric.WithDescription("Lift coefficients of successful reductions"),
		metric.WithExplicitBucketBoundaries(-1, -0.5, -0.25, 0, 0.25, 0.5, 0.75, 1, 1.25, 1.5),
	)
	if err != nil {
		return nil, err
	}

	sweeps, err := meter.Int64Counter(
		"reduction_sweeps_total",
		metric.WithDescription("Directory sweeps executed"),
	)
	if err != nil {
		return nil, err
	}

	httpRequests, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ReductionMetrics{
		FilesTotal:          filesTotal,
		ReductionDuration:   duration,
		LiftCoefficient:     lift,
		SweepsTotal:         sweeps,
		HTTPRequestsTotal:   httpRequests,
		HTTPRequestDuration: httpDuration,
	}, nil
}

// RecordReduction records the outcome of one file. errorType is empty on success.
func (m *ReductionMetrics) RecordReduction(ctx context.Context, duration time.Duration, cl float64, errorType string) {
	if m == nil {
		return
	}
	status := "ok"
	if errorType != "" {
		status = "failed"
	}
	attrs := metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("error_type", errorType),
	)
	m.FilesTotal.Add(ctx, 1, attrs)
	m.ReductionDuration.Record(ctx, duration.Seconds(), attrs)
	if errorType == "" {
		m.LiftCoefficient.Record(ctx, cl)
	}
}

// RecordSweep counts a finished sweep
func (m *ReductionMetrics) RecordSweep(ctx context.Context, files, failed int) {
	if m == nil {
		return
	}
	m.SweepsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("partial", failed > 0 && failed < files),
		attribute.Bool("failed", files > 0 && failed == files),
	))
}

// RecordHTTPRequest records one served request
func (m *ReductionMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}
	return nil
}

func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts the otel trace ID for log correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
