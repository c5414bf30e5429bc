package dataprocessing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunnelcli/pkg/contracts/domain"
)

func ok(source string, aoa, cl float64) domain.ReductionSummary {
	return domain.ReductionSummary{
		Source:   source,
		Status:   domain.ReductionStatusOK,
		AoA:      aoa,
		Reynolds: 628469,
		Lift:     cl,
	}
}

func TestSummarizer_Summarize(t *testing.T) {
	// thin-airfoil slope 2π per radian, zero lift at -1°
	perDeg := 2 * math.Pi * math.Pi / 180
	line := func(a float64) float64 { return perDeg * (a + 1) }

	summaries := []domain.ReductionSummary{
		ok("test_8.dat", 8, line(8)),
		ok("test_0.dat", 0, line(0)),
		{Source: "test_bad.dat", Status: domain.ReductionStatusFailed, Error: "boom"},
		ok("test_4.dat", 4, line(4)),
		ok("test_-4.dat", -4, line(-4)),
	}

	curve := NewSummarizer(nil).Summarize(summaries)

	require.Len(t, curve.Points, 4)
	assert.Equal(t, []string{"test_bad.dat"}, curve.Failed)
	for i, want := range []float64{-4, 0, 4, 8} {
		assert.Equal(t, want, curve.Points[i].AoA)
	}

	require.True(t, curve.HasFit)
	assert.InDelta(t, perDeg, curve.Slope, 1e-12)
	assert.InDelta(t, 2*math.Pi, curve.SlopePerRad, 1e-10)
	assert.InDelta(t, -1, curve.ZeroLiftAoA, 1e-9)
	assert.InDelta(t, line(8), curve.MaxLift, 1e-15)
	assert.Equal(t, 8.0, curve.MaxLiftAoA)
}

func TestSummarizer_NoFit(t *testing.T) {
	tests := []struct {
		name      string
		summaries []domain.ReductionSummary
	}{
		{"empty sweep", nil},
		{"single file", []domain.ReductionSummary{ok("a.dat", 5, 0.5)}},
		{"repeated angle", []domain.ReductionSummary{ok("a.dat", 5, 0.5), ok("b.dat", 5, 0.52)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve := NewSummarizer(nil).Summarize(tt.summaries)
			assert.False(t, curve.HasFit)
			assert.Zero(t, curve.Slope)
		})
	}
}

func TestSummarizer_FitIncludesStall(t *testing.T) {
	linear := NewSummarizer(nil).Summarize([]domain.ReductionSummary{
		ok("a.dat", 0, 0), ok("b.dat", 4, 0.4), ok("c.dat", 8, 0.8),
	})
	stalled := NewSummarizer(nil).Summarize([]domain.ReductionSummary{
		ok("a.dat", 0, 0), ok("b.dat", 4, 0.4), ok("c.dat", 8, 0.8), ok("d.dat", 16, 0.6),
	})

	require.True(t, linear.HasFit)
	require.True(t, stalled.HasFit)
	assert.InDelta(t, 0.1, linear.Slope, 1e-12)
	assert.Less(t, stalled.Slope, linear.Slope)
	assert.Equal(t, 8.0, stalled.MaxLiftAoA)
}

func TestLiftCurve_JSONKeepsZeroFit(t *testing.T) {
	curve := NewSummarizer(nil).Summarize([]domain.ReductionSummary{
		ok("a.dat", -2, 0), ok("b.dat", 2, 0),
	})
	require.True(t, curve.HasFit)

	raw, err := json.Marshal(curve)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"slope_per_deg", "slope_per_rad", "intercept", "zero_lift_aoa"} {
		v, present := fields[key]
		assert.True(t, present, key)
		assert.Equal(t, 0.0, v, key)
	}
	assert.Equal(t, true, fields["has_fit"])
}

func TestSortByAoA_TiesBySource(t *testing.T) {
	points := []LiftPoint{
		{Source: "b.dat", AoA: 2},
		{Source: "a.dat", AoA: 2},
		{Source: "c.dat", AoA: -2},
	}
	SortByAoA(points)
	assert.Equal(t, "c.dat", points[0].Source)
	assert.Equal(t, "a.dat", points[1].Source)
	assert.Equal(t, "b.dat", points[2].Source)
}
