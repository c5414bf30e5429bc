package config

// Application constants
const (
	AppName = "tunnelcli"

	// EnvPrefix namespaces environment overrides, e.g. TUNNEL_PHYSICS_CHORD.
	EnvPrefix = "TUNNEL"
)

// Physical defaults for the NACA 0018 test section.
const (
	DefaultChord      = 0.45     // m
	DefaultDensity    = 1.237    // kg/m^3
	DefaultViscosity  = 14.34e-6 // m^2/s
	DefaultTunnelArea = 4.5      // m^2
	DefaultBlockageK  = 0.52
	DefaultSpan       = 1.0 // m

	// DefaultTabulatedArea is the unit-chord NACA 0018 section area from a
	// panel-method tool.
	DefaultTabulatedArea = 0.123289

	DefaultQuadratureTolerance = 1e-10
)

// Run defaults
const (
	DefaultDataExtension  = ".dat"
	DefaultReportsDir     = "reports"
	DefaultMaxUploadBytes = 10 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogFile   = "logs/tunnelcli.log"
)
