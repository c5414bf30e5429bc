package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	logger, handler := NewTestLogger(nil)

	logger.With("service", "reduction").WithGroup("run").Warn("file failed", "source", "a.dat")
	logger.Info("sweep completed", slog.Int("files", 3))

	require.Len(t, handler.Records(), 2)
	r, ok := handler.Find("failed")
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, r.Level)
	assert.Equal(t, "reduction", r.Attrs["service"])
	assert.Equal(t, "a.dat", r.Attrs["run.source"])

	assert.Len(t, handler.RecordsAt(slog.LevelInfo), 1)
	AssertLogContains(t, handler, slog.LevelInfo, "sweep")
	AssertNoErrors(t, handler)
}

func TestMeasurement(t *testing.T) {
	content := Measurement(5, 20, [3]float64{0, 0.01, -50}, [3]float64{0.1, -0.02, 35})
	assert.Equal(t, "x y 5 z q w 20 extra\nx y p\n0 0.01 -50\n0.1 -0.02 35\n", content)

	path := WriteMeasurement(t, t.TempDir(), "sub/a.dat", content)
	assert.FileExists(t, path)
}
