package contracts

import (
	"fmt"
	"runtime"
)

const (
	Version = "1.0.0"

	// DataFormatVersion identifies the measurement file layout: header with
	// AoA at token 2 and Uinf at token 6, one skipped line, x y p rows.
	DataFormatVersion = "v1"

	// APIVersion is the prefix of the HTTP routes, /api/v1
	APIVersion = "v1"
)

// Set with -ldflags "-X tunnelcli/pkg/contracts.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is served by /api/version
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	DataFormat   string `json:"data_format"`
	APIVersion   string `json:"api_version"`
}

func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		DataFormat:   DataFormatVersion,
		APIVersion:   APIVersion,
	}
}

// GetVersionString is the line printed by --version; the commit is appended
// for release builds
func GetVersionString() string {
	s := fmt.Sprintf("tunnelcli v%s", Version)
	if GitCommit != "unknown" {
		s += fmt.Sprintf(" (%s)", GitCommit)
	}
	return s
}
