package reduction

import (
	"fmt"
	"math"

	apperrors "tunnelcli/internal/errors"
)

// VelocityBasis selects which freestream velocity feeds the dynamic pressure
type VelocityBasis string

const (
	// VelocityMeasured uses the velocity recorded in the file header.
	VelocityMeasured VelocityBasis = "measured"
	// VelocityCorrected uses the blockage-corrected velocity.
	VelocityCorrected VelocityBasis = "corrected"
)

// Params are the immutable run constants of a reduction
type Params struct {
	Chord      float64       `json:"chord"`       // m
	Density    float64       `json:"density"`     // kg/m^3
	Viscosity  float64       `json:"viscosity"`   // m^2/s, kinematic
	TunnelArea float64       `json:"tunnel_area"` // m^2
	BlockageK  float64       `json:"blockage_k"`
	Span       float64       `json:"span"` // m
	CpVelocity VelocityBasis `json:"cp_velocity"`
}

// DefaultParams returns the constants of the NACA 0018 test section
func DefaultParams() Params {
	return Params{
		Chord:      0.45,
		Density:    1.237,
		Viscosity:  14.34e-6,
		TunnelArea: 4.5,
		BlockageK:  0.52,
		Span:       1.0,
		CpVelocity: VelocityMeasured,
	}
}

// Validate checks that every constant is finite and physically meaningful
func (p Params) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"chord", p.Chord},
		{"density", p.Density},
		{"viscosity", p.Viscosity},
		{"tunnel_area", p.TunnelArea},
		{"span", p.Span},
	}
	for _, f := range positive {
		if !isFinite(f.value) || f.value <= 0 {
			return apperrors.NewInvalidInputError(
				fmt.Sprintf("%s must be a positive finite number, got %v", f.name, f.value),
			).WithField(f.name)
		}
	}
	if !isFinite(p.BlockageK) || p.BlockageK < 0 {
		return apperrors.NewInvalidInputError(
			fmt.Sprintf("blockage_k must be a non-negative finite number, got %v", p.BlockageK),
		).WithField("blockage_k")
	}
	switch p.CpVelocity {
	case VelocityMeasured, VelocityCorrected, "":
	default:
		return apperrors.NewInvalidInputError(
			fmt.Sprintf("unknown cp velocity basis %q", p.CpVelocity),
		).WithField("cp_velocity")
	}
	return nil
}

// FlowState is a freestream velocity and its Reynolds number
type FlowState struct {
	Velocity float64 `json:"velocity"` // m/s
	Reynolds float64 `json:"reynolds"`
}

// SurfacePoint is one tap on a surface
type SurfacePoint struct {
	X  float64 `json:"x"`
	Cp float64 `json:"cp"`
}

// Surface is an ordered run of taps on one side of the airfoil
type Surface []SurfacePoint

// Xs returns the x positions
func (s Surface) Xs() []float64 {
	xs := make([]float64, len(s))
	for i, pt := range s {
		xs[i] = pt.X
	}
	return xs
}

// Cps returns the pressure coefficients
func (s Surface) Cps() []float64 {
	cps := make([]float64, len(s))
	for i, pt := range s {
		cps[i] = pt.Cp
	}
	return cps
}

// Partition splits the taps into the two surfaces. Taps with y == 0 land
// on neither and are counted in Excluded.
type Partition struct {
	Upper    Surface `json:"upper"`
	Lower    Surface `json:"lower"`
	Excluded int     `json:"excluded"`
}

// Result is the full reduction of one measurement
type Result struct {
	Source      string    `json:"source"`
	AoA         float64   `json:"aoa"`
	Measured    FlowState `json:"measured"`
	Corrected   FlowState `json:"corrected"`
	Blockage    float64   `json:"blockage"`     // epsilon
	ModelArea   float64   `json:"model_area"`   // m^2, cross-section
	ModelVolume float64   `json:"model_volume"` // m^3
	Cp          []float64 `json:"cp"`
	XOverC      []float64 `json:"x_c"`
	Partition   Partition `json:"partition"`
	Lift        float64   `json:"cl"`
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
