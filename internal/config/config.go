package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics" envconfig:"PHYSICS"`
	Run       RunConfig       `yaml:"run" envconfig:"RUN"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// PhysicsConfig holds the run constants of a reduction: airfoil, air and
// tunnel properties. They are fixed at run start and shared read-only by
// every file of the run.
type PhysicsConfig struct {
	Chord      float64 `yaml:"chord" envconfig:"CHORD" validate:"gt=0"`             // m
	Density    float64 `yaml:"density" envconfig:"DENSITY" validate:"gt=0"`         // kg/m^3
	Viscosity  float64 `yaml:"viscosity" envconfig:"VISCOSITY" validate:"gt=0"`     // m^2/s, kinematic
	TunnelArea float64 `yaml:"tunnel_area" envconfig:"TUNNEL_AREA" validate:"gt=0"` // m^2
	BlockageK  float64 `yaml:"blockage_k" envconfig:"BLOCKAGE_K" validate:"gte=0"`
	Span       float64 `yaml:"span" envconfig:"SPAN" validate:"gt=0"` // m

	// Geometry selects how the reference area is obtained:
	// "analytic", "legendre" or "tabulated".
	Geometry      string  `yaml:"geometry" envconfig:"GEOMETRY" validate:"oneof=analytic legendre tabulated"`
	TabulatedArea float64 `yaml:"tabulated_area" envconfig:"TABULATED_AREA" validate:"gt=0"`
	Tolerance     float64 `yaml:"tolerance" envconfig:"TOLERANCE" validate:"gt=0,lte=1e-7"`

	// CpVelocity is the velocity used for dynamic pressure: "measured" or "corrected".
	CpVelocity string `yaml:"cp_velocity" envconfig:"CP_VELOCITY" validate:"oneof=measured corrected"`
}

// RunConfig controls batch processing and report output
type RunConfig struct {
	Workers    int      `yaml:"workers" envconfig:"WORKERS" validate:"gte=1,lte=256"`
	Extension  string   `yaml:"extension" envconfig:"EXTENSION" validate:"required,startswith=."`
	OutputDir  string   `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	Formats    []string `yaml:"formats" envconfig:"FORMATS" validate:"dive,oneof=csv xlsx json"`
	Plot       bool     `yaml:"plot" envconfig:"PLOT"`
	PlotFormat string   `yaml:"plot_format" envconfig:"PLOT_FORMAT" validate:"oneof=png svg pdf"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	MaxUploadBytes  int64           `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" validate:"gt=0"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	EnableTracing  bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	EnableMetrics  bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=prometheus none"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

var validate = validator.New()

// Load builds the configuration from defaults, then the YAML file at path
// (or the first file found in the standard locations when path is empty),
// then TUNNEL_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; absent keys keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalises derived fields
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	for i, f := range c.Run.Formats {
		c.Run.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}
	return nil
}

// HasFormat reports whether the export format is enabled
func (r RunConfig) HasFormat(format string) bool {
	for _, f := range r.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"tunnel.yaml",
		"configs/tunnel.yaml",
		"../configs/tunnel.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Chord:         DefaultChord,
			Density:       DefaultDensity,
			Viscosity:     DefaultViscosity,
			TunnelArea:    DefaultTunnelArea,
			BlockageK:     DefaultBlockageK,
			Span:          DefaultSpan,
			Geometry:      "analytic",
			TabulatedArea: DefaultTabulatedArea,
			Tolerance:     DefaultQuadratureTolerance,
			CpVelocity:    "measured",
		},
		Run: RunConfig{
			Workers:    4,
			Extension:  DefaultDataExtension,
			OutputDir:  DefaultReportsDir,
			Formats:    []string{"csv"},
			Plot:       false,
			PlotFormat: "png",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  DefaultMaxUploadBytes,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     20,
				Burst:   10,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			Environment:    "development",
			EnableTracing:  false,
			TraceExporter:  "none",
			EnableMetrics:  true,
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
