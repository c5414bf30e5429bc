package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"

	"tunnelcli/internal/config"
	"tunnelcli/internal/infrastructure"
	"tunnelcli/internal/services"
	handlers "tunnelcli/internal/transport/http"
	"tunnelcli/pkg/contracts"
)

// Application wires the reduction API together for the serve command
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Reduction     *services.ReductionService
	HealthService *services.HealthService
	Metrics       *infrastructure.ReductionMetrics
	OTelProviders *infrastructure.OTelProviders
	Logger        *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	serveErr chan error
}

// NewApplication builds the application from an already validated config
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}
	if err := app.initializeServices(); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) initializeServices() error {
	metrics, err := infrastructure.CreateReductionMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create reduction metrics: %w", err)
	}
	a.Metrics = metrics

	reduction, err := services.NewReductionService(a.Config.Physics, metrics, a.Logger)
	if err != nil {
		return err
	}
	a.Reduction = reduction
	a.HealthService = services.NewHealthService(reduction, a.Config.Run.OutputDir, a.Logger)
	return nil
}

func (a *Application) setupRouter() {
	a.Router = handlers.NewRouter(handlers.RouterDeps{
		Server:         a.Config.Server,
		Reduction:      a.Reduction,
		Health:         a.HealthService,
		Metrics:        a.Metrics,
		PrometheusHTTP: a.OTelProviders.PrometheusHTTP,
		Logger:         a.Logger,
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// Start binds the listener and serves in the background. Bind errors are
// returned; later serve errors are reported by Run.
func (a *Application) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	a.mu.Lock()
	a.listener = ln
	a.serveErr = make(chan error, 1)
	a.mu.Unlock()

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			a.serveErr <- err
		}
		close(a.serveErr)
	}()

	a.Logger.InfoContext(ctx, "server listening",
		slog.String("address", ln.Addr().String()),
		slog.String("geometry", a.Reduction.Reducer().Geometry().Name()),
		slog.Float64("chord", a.Config.Physics.Chord),
		slog.String("level", a.Config.Logging.Level))
	return nil
}

// Addr returns the bound address, or "" before Start
func (a *Application) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Stop gracefully stops the server and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx := ctx
	if timeout := a.Config.Server.ShutdownTimeout; timeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run serves until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// server fails, then shuts down gracefully
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("received shutdown signal")
	case serveErr = <-a.serveErr:
	}

	if err := a.Stop(context.Background()); err != nil {
		return err
	}
	return serveErr
}
