package operations

import (
	"fmt"
	"sync"
	"time"
)

// Progress is a point-in-time view of a sweep
type Progress struct {
	Done       int     `json:"done"`
	Total      int     `json:"total"`
	Failed     int     `json:"failed"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message,omitempty"`
	ETA        string  `json:"eta"`
}

// ProgressTracker counts finished files of a sweep. Safe for concurrent use.
type ProgressTracker struct {
	Name      string
	Total     int
	StartTime time.Time

	mu      sync.Mutex
	done    int
	failed  int
	message string
}

// NewProgressTracker creates a tracker for total files
func NewProgressTracker(name string, total int) *ProgressTracker {
	return &ProgressTracker{
		Name:      name,
		Total:     total,
		StartTime: time.Now(),
	}
}

// Increment records one finished file and returns the updated view
func (p *ProgressTracker) Increment(failed bool, message string) Progress {
	p.mu.Lock()
	p.done++
	if failed {
		p.failed++
	}
	p.message = message
	p.mu.Unlock()
	return p.Snapshot()
}

// Snapshot returns the current progress
func (p *ProgressTracker) Snapshot() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()

	pct := 0.0
	if p.Total > 0 {
		pct = float64(p.done) / float64(p.Total) * 100
	}
	return Progress{
		Done:       p.done,
		Total:      p.Total,
		Failed:     p.failed,
		Percentage: pct,
		Message:    p.message,
		ETA:        p.etaLocked(),
	}
}

// IsComplete reports whether every file has finished
func (p *ProgressTracker) IsComplete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done >= p.Total
}

// Elapsed returns the time since the tracker was created
func (p *ProgressTracker) Elapsed() time.Duration {
	return time.Since(p.StartTime)
}

func (p *ProgressTracker) etaLocked() string {
	if p.done >= p.Total {
		return "done"
	}
	if p.done == 0 {
		return "calculating..."
	}

	rate := float64(p.done) / time.Since(p.StartTime).Seconds()
	if rate == 0 {
		return "calculating..."
	}
	return formatSeconds(float64(p.Total-p.done) / rate)
}

func formatSeconds(s float64) string {
	switch {
	case s < 60:
		return fmt.Sprintf("%.0f seconds", s)
	case s < 3600:
		return fmt.Sprintf("%.1f minutes", s/60)
	default:
		return fmt.Sprintf("%.1f hours", s/3600)
	}
}
