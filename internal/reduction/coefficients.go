package reduction

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	apperrors "tunnelcli/internal/errors"
)

// DynamicPressure returns q = 0.5·ρ·U²
func DynamicPressure(params Params, uinf float64) float64 {
	return 0.5 * params.Density * uinf * uinf
}

// PressureCoefficients converts the raw differential pressures into Cp in
// one pass over the tap array. The result has the same indexing as p.
func PressureCoefficients(params Params, p []float64, uinf float64) ([]float64, error) {
	if !isFinite(uinf) {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("freestream velocity is not finite: %v", uinf),
		).WithField("uinf")
	}
	q := DynamicPressure(params, uinf)
	if q <= 0 || !isFinite(q) {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("dynamic pressure must be positive, got %v (uinf=%v, density=%v)", q, uinf, params.Density),
		).WithField("uinf")
	}
	for i, v := range p {
		if !isFinite(v) {
			return nil, apperrors.NewInvalidInputError(
				fmt.Sprintf("pressure at tap %d is not finite", i),
			).WithField("p")
		}
	}

	return floats.ScaleTo(make([]float64, len(p)), 1/q, p), nil
}

// Reynolds returns Re = U·c/ν
func Reynolds(params Params, uinf float64) (float64, error) {
	if !isFinite(uinf) {
		return 0, apperrors.NewInvalidInputError(
			fmt.Sprintf("freestream velocity is not finite: %v", uinf),
		).WithField("uinf")
	}
	if params.Viscosity <= 0 || !isFinite(params.Viscosity) {
		return 0, apperrors.NewInvalidInputError("kinematic viscosity must be positive").WithField("viscosity")
	}
	return uinf * params.Chord / params.Viscosity, nil
}
