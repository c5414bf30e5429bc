package operations

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	tracker := NewProgressTracker("run", 4)

	p := tracker.Snapshot()
	assert.Equal(t, 0, p.Done)
	assert.Equal(t, "calculating...", p.ETA)
	assert.False(t, tracker.IsComplete())

	p = tracker.Increment(false, "a.dat")
	assert.Equal(t, 1, p.Done)
	assert.Equal(t, 0, p.Failed)
	assert.Equal(t, 25.0, p.Percentage)
	assert.Equal(t, "a.dat", p.Message)

	p = tracker.Increment(true, "b.dat")
	assert.Equal(t, 2, p.Done)
	assert.Equal(t, 1, p.Failed)
	assert.Equal(t, 50.0, p.Percentage)

	tracker.Increment(false, "c.dat")
	p = tracker.Increment(false, "d.dat")
	assert.Equal(t, 100.0, p.Percentage)
	assert.Equal(t, "done", p.ETA)
	assert.True(t, tracker.IsComplete())
	assert.GreaterOrEqual(t, tracker.Elapsed().Nanoseconds(), int64(0))
}

func TestProgressTracker_Concurrent(t *testing.T) {
	tracker := NewProgressTracker("run", 100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Increment(i%10 == 0, "")
		}()
	}
	wg.Wait()

	p := tracker.Snapshot()
	assert.Equal(t, 100, p.Done)
	assert.Equal(t, 10, p.Failed)
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{12, "12 seconds"},
		{90, "1.5 minutes"},
		{5400, "1.5 hours"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSeconds(tt.seconds))
	}
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	tracker := NewProgressTracker("empty", 0)
	p := tracker.Snapshot()
	assert.Equal(t, 0.0, p.Percentage)
	assert.Equal(t, "done", p.ETA)
	assert.True(t, tracker.IsComplete())
}
