package reduction

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tunnelcli/internal/errors"
	"tunnelcli/pkg/contracts/domain"
)

// goldenMeasurement is the four-tap reference case: AoA 5°, U = 20 m/s
func goldenMeasurement() domain.Measurement {
	return domain.Measurement{
		Source: "golden.dat",
		AoA:    5.0,
		Uinf:   20.0,
		X:      []float64{0.0, 0.1, 0.2, 0.3},
		Y:      []float64{0.01, 0.02, -0.01, -0.02},
		P:      []float64{-50.0, -40.0, 30.0, 35.0},
	}
}

func newTestReducer(t *testing.T, params Params, strategy Strategy) *Reducer {
	t.Helper()
	geom, err := NewGeometry(strategy, 0, 0)
	require.NoError(t, err)
	r, err := NewReducer(params, geom, slog.Default())
	require.NoError(t, err)
	return r
}

func TestGoldenReduction(t *testing.T) {
	r := newTestReducer(t, DefaultParams(), StrategyAnalytic)

	result, err := r.Reduce(context.Background(), goldenMeasurement())
	require.NoError(t, err)

	// q = 0.5·1.237·20² = 247.4
	// ∫Cp_lower = 0.1·(30+35)/2/q = 3.25/q, ∫Cp_upper = 0.1·(-50-40)/2/q = -4.5/q
	assert.InDelta(t, 7.75/247.4, result.Lift, 1e-15)
	assert.InDelta(t, 0.03132578819725141, result.Lift, 1e-15)

	assert.Equal(t, 5.0, result.AoA)
	assert.Equal(t, "golden.dat", result.Source)
	assert.InDelta(t, 627615.0627615063, result.Measured.Reynolds, 1e-6)
	assert.InDelta(t, 0.0013602712144634979, result.Blockage, 1e-12)
	assert.InDelta(t, 20.02720542428927, result.Corrected.Velocity, 1e-9)
	assert.InDelta(t, 628468.7894651445, result.Corrected.Reynolds, 1e-3)
	assert.Equal(t, 628469.0, math.Round(result.Corrected.Reynolds))

	assert.InDelta(t, 0.123315*0.45*0.45, result.ModelArea, 1e-10)
	assert.InDelta(t, result.ModelArea, result.ModelVolume, 1e-15)

	assert.InDeltaSlice(t, []float64{0, 0.1 / 0.45, 0.2 / 0.45, 0.3 / 0.45}, result.XOverC, 1e-12)
	assert.InDeltaSlice(t, []float64{-50 / 247.4, -40 / 247.4, 30 / 247.4, 35 / 247.4}, result.Cp, 1e-12)
	assert.Len(t, result.Partition.Upper, 2)
	assert.Len(t, result.Partition.Lower, 2)

	s := result.Summary()
	assert.Equal(t, domain.ReductionStatusOK, s.Status)
	assert.Equal(t, 4, s.Taps)
	assert.Equal(t, result.Lift, s.Lift)
	assert.Equal(t, result.Corrected.Reynolds, s.Reynolds)
}

func TestReducer_ReversedUpperSurface(t *testing.T) {
	r := newTestReducer(t, DefaultParams(), StrategyAnalytic)

	m := goldenMeasurement()
	m.X = []float64{0.1, 0.0, 0.2, 0.3}
	m.Y = []float64{0.02, 0.01, -0.01, -0.02}
	m.P = []float64{-40.0, -50.0, 30.0, 35.0}

	result, err := r.Reduce(context.Background(), m)
	require.NoError(t, err)
	assert.InDelta(t, 0.03132578819725141, result.Lift, 1e-15)
}

func TestReducer_ChordLineTapsExcluded(t *testing.T) {
	r := newTestReducer(t, DefaultParams(), StrategyAnalytic)

	m := goldenMeasurement()
	m.X = append([]float64{-0.01}, append(m.X, 0.45)...)
	m.Y = append([]float64{0}, append(m.Y, 0)...)
	m.P = append([]float64{500}, append(m.P, -500)...)

	result, err := r.Reduce(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Partition.Excluded)
	assert.InDelta(t, 0.03132578819725141, result.Lift, 1e-15)
	assert.Len(t, result.Cp, 6)
}

func TestReducer_CorrectedVelocityBasis(t *testing.T) {
	params := DefaultParams()
	params.CpVelocity = VelocityCorrected
	r := newTestReducer(t, params, StrategyAnalytic)

	result, err := r.Reduce(context.Background(), goldenMeasurement())
	require.NoError(t, err)

	scale := (1 + result.Blockage) * (1 + result.Blockage)
	assert.InDelta(t, 0.03132578819725141/scale, result.Lift, 1e-15)
}

func TestReducer_IndependentConfigurations(t *testing.T) {
	wide := DefaultParams()
	wide.Chord = 0.9
	wide.TunnelArea = 9

	a := newTestReducer(t, DefaultParams(), StrategyTabulated)
	b := newTestReducer(t, wide, StrategyTabulated)

	ra, err := a.Reduce(context.Background(), goldenMeasurement())
	require.NoError(t, err)
	rb, err := b.Reduce(context.Background(), goldenMeasurement())
	require.NoError(t, err)

	assert.InDelta(t, 2*ra.Measured.Reynolds, rb.Measured.Reynolds, 1e-6)
	assert.Equal(t, ra.Lift, rb.Lift)
	assert.NotEqual(t, ra.Blockage, rb.Blockage)
	assert.Equal(t, 0.45, a.Params().Chord)
}

func TestReducer_Errors(t *testing.T) {
	r := newTestReducer(t, DefaultParams(), StrategyAnalytic)

	tests := []struct {
		name   string
		mutate func(*domain.Measurement)
		field  string
	}{
		{"zero velocity", func(m *domain.Measurement) { m.Uinf = 0 }, "uinf"},
		{"negative velocity", func(m *domain.Measurement) { m.Uinf = -3 }, "uinf"},
		{"misaligned taps", func(m *domain.Measurement) { m.P = m.P[:3] }, "taps"},
		{"nan pressure", func(m *domain.Measurement) { m.P[1] = math.NaN() }, "taps"},
		{"one upper tap", func(m *domain.Measurement) { m.Y[0] = 0 }, "upper"},
		{"one lower tap", func(m *domain.Measurement) { m.Y[3] = 0 }, "lower"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := goldenMeasurement()
			tt.mutate(&m)

			result, err := r.Reduce(context.Background(), m)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.field, appErr.Field())
			assert.Equal(t, "golden.dat", appErr.Context["file"])

			s := FailureSummary(m.Source, err)
			assert.True(t, s.Failed())
			assert.Equal(t, "INVALID_INPUT", s.ErrorType)
			assert.Equal(t, tt.field, s.Field)
		})
	}
}

func TestNewReducer_Errors(t *testing.T) {
	params := DefaultParams()
	params.TunnelArea = 0
	_, err := NewReducer(params, nil, nil)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = NewReducer(DefaultParams(), AnalyticGeometry{Tolerance: 1e-12, MaxDepth: 2}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrNumerical))
}

func TestReducer_ConcurrentUse(t *testing.T) {
	r := newTestReducer(t, DefaultParams(), StrategyLegendre)

	var wg sync.WaitGroup
	lifts := make([]float64, 16)
	for i := range lifts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := r.Reduce(context.Background(), goldenMeasurement())
			if err == nil {
				lifts[i] = res.Lift
			}
		}(i)
	}
	wg.Wait()

	for _, cl := range lifts {
		assert.InDelta(t, 0.03132578819725141, cl, 1e-15)
	}
}
