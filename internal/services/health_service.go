package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"tunnelcli/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	reduction *ReductionService
	outputDir string
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. outputDir may be empty when
// the server writes no reports.
func NewHealthService(reduction *ReductionService, outputDir string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		reduction: reduction,
		outputDir: outputDir,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
}

// ReadinessCheck reports whether the reducer is built and the report
// directory is usable
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services: map[string]ServiceHealth{
			"reduction": hs.checkReduction(),
			"storage":   hs.checkStorage(),
		},
	}

	for _, sh := range status.Services {
		if sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":      info.Version,
		"build_time":   info.BuildTime,
		"git_commit":   info.GitCommit,
		"api_version":  info.APIVersion,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

func (hs *HealthService) checkReduction() ServiceHealth {
	if hs.reduction == nil {
		return ServiceHealth{Status: "not_ready", Message: "reducer not initialized"}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("geometry %s, blockage %.6g", hs.reduction.Reducer().Geometry().Name(), hs.reduction.Reducer().Blockage()),
	}
}

func (hs *HealthService) checkStorage() ServiceHealth {
	if hs.outputDir == "" {
		return ServiceHealth{Status: "ready", Message: "no report directory configured"}
	}
	info, err := os.Stat(hs.outputDir)
	if os.IsNotExist(err) {
		// Created on first write.
		return ServiceHealth{Status: "ready", Message: "report directory will be created"}
	}
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("%s is not a directory", hs.outputDir)}
	}
	return ServiceHealth{Status: "ready"}
}
