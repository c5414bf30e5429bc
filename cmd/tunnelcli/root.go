package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tunnelcli/internal/config"
	apperrors "tunnelcli/internal/errors"
	"tunnelcli/internal/infrastructure"
	"tunnelcli/internal/services"
	"tunnelcli/pkg/contracts"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "tunnelcli",
		Short: "Wind-tunnel pressure tap data reduction for the NACA 0018",
		Long: `Reduce wind-tunnel pressure tap measurements of a NACA 0018 section.

Each measurement file yields the pressure coefficient distribution, the
blockage-corrected Reynolds number and the sectional lift coefficient.

Run constants come from built-in defaults, then tunnel.yaml (or --config),
then TUNNEL_* environment variables, then command flags.`,
		Version:       contracts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(contracts.GetVersionString() + "\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: json or text")

	cmd.AddCommand(
		newReduceCmd(opts),
		newSweepCmd(opts),
		newAreaCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// physicsFlags override the run constants of PhysicsConfig
type physicsFlags struct {
	chord      float64
	density    float64
	viscosity  float64
	tunnelArea float64
	blockageK  float64
	span       float64
	geometry   string
	cpVelocity string
}

func (f *physicsFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.chord, "chord", config.DefaultChord, "chord length in m")
	fs.Float64Var(&f.density, "density", config.DefaultDensity, "air density in kg/m^3")
	fs.Float64Var(&f.viscosity, "viscosity", config.DefaultViscosity, "kinematic viscosity in m^2/s")
	fs.Float64Var(&f.tunnelArea, "tunnel-area", config.DefaultTunnelArea, "test section area in m^2")
	fs.Float64Var(&f.blockageK, "blockage-k", config.DefaultBlockageK, "solid blockage shape factor K")
	fs.Float64Var(&f.span, "span", config.DefaultSpan, "model span in m")
	fs.StringVar(&f.geometry, "geometry", "analytic", "reference area strategy: analytic, legendre or tabulated")
	fs.StringVar(&f.cpVelocity, "cp-velocity", "measured", "velocity for dynamic pressure: measured or corrected")
}

// apply copies the flags the user set onto cfg
func (f *physicsFlags) apply(fs *pflag.FlagSet, cfg *config.PhysicsConfig) {
	floats := map[string]struct {
		dst *float64
		v   float64
	}{
		"chord":       {&cfg.Chord, f.chord},
		"density":     {&cfg.Density, f.density},
		"viscosity":   {&cfg.Viscosity, f.viscosity},
		"tunnel-area": {&cfg.TunnelArea, f.tunnelArea},
		"blockage-k":  {&cfg.BlockageK, f.blockageK},
		"span":        {&cfg.Span, f.span},
	}
	for name, o := range floats {
		if fs.Changed(name) {
			*o.dst = o.v
		}
	}
	if fs.Changed("geometry") {
		cfg.Geometry = f.geometry
	}
	if fs.Changed("cp-velocity") {
		cfg.CpVelocity = f.cpVelocity
	}
}

// session is what a command needs once configuration is resolved
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	otel      *infrastructure.OTelProviders
	metrics   *infrastructure.ReductionMetrics
	reduction *services.ReductionService
	logFile   *os.File
}

// loadConfig resolves the configuration, lets override apply command
// flags and validates the result
func loadConfig(opts *rootOptions, override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// newLogger builds the logger of cfg writing to the command's stderr and
// installs it as the default
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, *os.File, error) {
	logger, logFile, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, apperrors.NewConfigError("failed to initialize logger", err)
	}
	slog.SetDefault(logger)
	return logger, logFile, nil
}

// setup resolves the configuration and builds the logger, telemetry and
// reduction service
func setup(cmd *cobra.Command, opts *rootOptions, override func(*config.Config)) (*session, error) {
	cfg, err := loadConfig(opts, override)
	if err != nil {
		return nil, err
	}
	logger, logFile, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	rt := &session{cfg: cfg, logger: logger, logFile: logFile}

	rt.otel, err = infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		rt.close(cmd.Context())
		return nil, err
	}
	rt.metrics, err = infrastructure.CreateReductionMetrics(rt.otel.Meter)
	if err != nil {
		rt.close(cmd.Context())
		return nil, err
	}
	rt.reduction, err = services.NewReductionService(cfg.Physics, rt.metrics, logger)
	if err != nil {
		rt.close(cmd.Context())
		return nil, err
	}
	return rt, nil
}

// close flushes telemetry and closes the log file
func (rt *session) close(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if rt.otel != nil {
		if err := rt.otel.Shutdown(ctx); err != nil {
			rt.logger.WarnContext(ctx, "telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}
	if rt.logFile != nil {
		rt.logFile.Close()
	}
}
