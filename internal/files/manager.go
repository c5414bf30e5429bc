package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager writes report artifacts below an output directory
type Manager struct {
	baseDir string
	logger  *slog.Logger
}

// NewManager creates a new file manager rooted at baseDir
func NewManager(baseDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{baseDir: baseDir, logger: logger}
}

// BaseDir returns the output directory
func (m *Manager) BaseDir() string { return m.baseDir }

// Path resolves a name relative to the output directory
func (m *Manager) Path(name string) string {
	if filepath.IsAbs(name) || m.baseDir == "" {
		return name
	}
	return filepath.Join(m.baseDir, name)
}

// EnsureDirectory creates the directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	fullPath := m.Path(path)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
	}
	return nil
}

// WriteFile writes data through a temporary file and renames it into
// place, so readers never observe a partial report.
func (m *Manager) WriteFile(name string, data []byte) (string, error) {
	fullPath := m.Path(name)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write %s: %w", fullPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close %s: %w", fullPath, err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move %s into place: %w", fullPath, err)
	}

	m.logger.Debug("report written",
		slog.String("path", fullPath),
		slog.Int("bytes", len(data)))
	return fullPath, nil
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(name string) bool {
	_, err := os.Stat(m.Path(name))
	return err == nil
}
