// Package api contains API contract definitions for the tunnelcli HTTP service.
// Version v1 represents the current stable API version.
package api

import (
	"tunnelcli/pkg/contracts/domain"
)

// ReduceParams are the optional per-request overrides of the run constants.
// Zero values keep the server's configured value.
type ReduceParams struct {
	Chord      float64 `json:"chord" query:"chord" validate:"omitempty,gt=0"`
	Density    float64 `json:"density" query:"density" validate:"omitempty,gt=0"`
	Viscosity  float64 `json:"viscosity" query:"viscosity" validate:"omitempty,gt=0"`
	TunnelArea float64 `json:"tunnel_area" query:"tunnel_area" validate:"omitempty,gt=0"`
	Span       float64 `json:"span" query:"span" validate:"omitempty,gt=0"`
	Geometry   string  `json:"geometry" query:"geometry" validate:"omitempty,oneof=analytic legendre tabulated"`
	// BlockageK is a pointer so that K=0 can switch the correction off
	BlockageK *float64 `json:"blockage_k,omitempty" query:"blockage_k" validate:"omitempty,gte=0"`
}

// SurfacePoint is one (x/c, Cp) sample of a surface distribution
type SurfacePoint struct {
	XOverC float64 `json:"x_c"`
	Cp     float64 `json:"cp"`
}

// ReduceResponse is returned by POST /api/v1/reduce
type ReduceResponse struct {
	RequestID string                  `json:"request_id"`
	Summary   domain.ReductionSummary `json:"summary"`
	Report    string                  `json:"report"`
	XOverC    []float64               `json:"x_c"`
	Cp        []float64               `json:"cp"`
	Upper     []SurfacePoint          `json:"upper"`
	Lower     []SurfacePoint          `json:"lower"`
}

// GeometryParams select the airfoil evaluated by GET /api/v1/geometry.
// Zero values keep the server's configured value.
type GeometryParams struct {
	Chord float64 `json:"chord" query:"chord" validate:"omitempty,gt=0"`
	Span  float64 `json:"span" query:"span" validate:"omitempty,gt=0"`
}

// GeometryResponse is returned by GET /api/v1/geometry
type GeometryResponse struct {
	Chord        float64            `json:"chord"`
	Span         float64            `json:"span"`
	Strategy     string             `json:"strategy"`
	Areas        map[string]float64 `json:"areas"`
	RelativeDiff float64            `json:"relative_diff"`
	Blockage     float64            `json:"blockage"`
}
