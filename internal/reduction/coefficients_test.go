package reduction

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tunnelcli/internal/errors"
)

func TestPressureCoefficients(t *testing.T) {
	params := DefaultParams()

	t.Run("divides by dynamic pressure", func(t *testing.T) {
		cp, err := PressureCoefficients(params, []float64{-247.4, 0, 123.7}, 20)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{-1, 0, 0.5}, cp, 1e-12)
	})

	t.Run("linear in pressure", func(t *testing.T) {
		p := []float64{-50, -40, 30, 35, 12.5}
		doubled := make([]float64, len(p))
		for i, v := range p {
			doubled[i] = 2 * v
		}
		for _, u := range []float64{5, 20, 37.5} {
			cp, err := PressureCoefficients(params, p, u)
			require.NoError(t, err)
			cp2, err := PressureCoefficients(params, doubled, u)
			require.NoError(t, err)
			for i := range cp {
				assert.InDelta(t, 2*cp[i], cp2[i], 1e-12)
			}
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		p := []float64{10, 20}
		_, err := PressureCoefficients(params, p, 20)
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 20}, p)
	})

	t.Run("empty array", func(t *testing.T) {
		cp, err := PressureCoefficients(params, nil, 20)
		require.NoError(t, err)
		assert.Empty(t, cp)
	})

	tests := []struct {
		name string
		p    []float64
		uinf float64
	}{
		{"zero velocity", []float64{1}, 0},
		{"nan velocity", []float64{1}, math.NaN()},
		{"infinite velocity", []float64{1}, math.Inf(1)},
		{"nan pressure", []float64{1, math.NaN()}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, err := PressureCoefficients(params, tt.p, tt.uinf)
			require.Error(t, err)
			assert.Nil(t, cp)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestReynolds(t *testing.T) {
	params := DefaultParams()

	re, err := Reynolds(params, 20)
	require.NoError(t, err)
	assert.InDelta(t, 627615.0627615063, re, 1e-6)

	t.Run("linear in velocity", func(t *testing.T) {
		for _, u := range []float64{1, 12.3, 20, 45} {
			a, err := Reynolds(params, u)
			require.NoError(t, err)
			b, err := Reynolds(params, 2*u)
			require.NoError(t, err)
			assert.InDelta(t, 2*a, b, 1e-6)
		}
	})

	t.Run("uses the configured chord", func(t *testing.T) {
		p := params
		p.Chord = 0.9
		b, err := Reynolds(p, 20)
		require.NoError(t, err)
		assert.InDelta(t, 2*re, b, 1e-6)
	})

	t.Run("non-finite velocity", func(t *testing.T) {
		_, err := Reynolds(params, math.Inf(-1))
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"zero chord", func(p *Params) { p.Chord = 0 }, "chord"},
		{"negative density", func(p *Params) { p.Density = -1 }, "density"},
		{"nan viscosity", func(p *Params) { p.Viscosity = math.NaN() }, "viscosity"},
		{"zero tunnel area", func(p *Params) { p.TunnelArea = 0 }, "tunnel_area"},
		{"negative blockage constant", func(p *Params) { p.BlockageK = -0.1 }, "blockage_k"},
		{"unknown velocity basis", func(p *Params) { p.CpVelocity = "average" }, "cp_velocity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.field, appErr.Field())
		})
	}
}
