package reduction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	apperrors "tunnelcli/internal/errors"
)

// Strategy names a geometry provider
type Strategy string

const (
	StrategyAnalytic  Strategy = "analytic"
	StrategyLegendre  Strategy = "legendre"
	StrategyTabulated Strategy = "tabulated"
)

// NACA 0018 section constants
const (
	Thickness = 0.18

	naca0 = 0.2969
	naca1 = -0.1260
	naca2 = -0.3516
	naca3 = 0.2843
	naca4 = -0.1015
)

const (
	// TabulatedUnitArea is the unit-chord section area reported by a
	// panel-method tool.
	TabulatedUnitArea = 0.123289

	DefaultTolerance = 1e-10
	DefaultMaxDepth  = 64

	// MaxTolerance bounds the absolute quadrature tolerance on the unit-chord
	// area (about 0.1233), keeping the relative error below 1e-6.
	MaxTolerance = 1e-7

	// legendrePoints integrates the substituted degree-9 polynomial exactly.
	legendrePoints = 16
)

// GeometryProvider supplies the cross-sectional area of the airfoil
type GeometryProvider interface {
	Name() string
	Area(chord float64) (float64, error)
}

// NewGeometry builds the provider for a strategy. Zero tabulatedArea or
// tolerance select the defaults; a tolerance above MaxTolerance is rejected.
func NewGeometry(strategy Strategy, tabulatedArea, tolerance float64) (GeometryProvider, error) {
	switch strategy {
	case StrategyAnalytic, "":
		if math.IsNaN(tolerance) || tolerance < 0 || tolerance > MaxTolerance {
			return nil, apperrors.NewInvalidInputError(
				fmt.Sprintf("quadrature tolerance must be in (0, %g], got %v", MaxTolerance, tolerance),
			).WithField("tolerance")
		}
		return NewAnalyticGeometry(tolerance), nil
	case StrategyLegendre:
		return LegendreGeometry{}, nil
	case StrategyTabulated:
		if tabulatedArea == 0 {
			tabulatedArea = TabulatedUnitArea
		}
		if !isFinite(tabulatedArea) || tabulatedArea < 0 {
			return nil, apperrors.NewInvalidInputError(
				fmt.Sprintf("tabulated area must be positive, got %v", tabulatedArea),
			).WithField("tabulated_area")
		}
		return TabulatedGeometry{UnitArea: tabulatedArea}, nil
	default:
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("unknown geometry strategy %q", strategy),
		).WithField("geometry")
	}
}

// HalfThickness is the NACA 0018 half-thickness y_t at unit chord
func HalfThickness(xi float64) float64 {
	return (Thickness / 0.2) * thicknessPolynomial(xi)
}

func thicknessPolynomial(xi float64) float64 {
	return naca0*math.Sqrt(xi) + xi*(naca1+xi*(naca2+xi*(naca3+xi*naca4)))
}

// sectionWidth is the full thickness 2·y_t, the integrand of the area
func sectionWidth(xi float64) float64 {
	return 2 * HalfThickness(xi)
}

func checkChord(chord float64) error {
	if !isFinite(chord) || chord <= 0 {
		return apperrors.NewInvalidInputError(
			fmt.Sprintf("chord must be positive, got %v", chord),
		).WithField("chord")
	}
	return nil
}

// AnalyticGeometry integrates the thickness distribution with adaptive
// Simpson quadrature. The √ξ term makes the derivative singular at the
// leading edge, so refinement concentrates there.
type AnalyticGeometry struct {
	Tolerance float64
	MaxDepth  int
}

// NewAnalyticGeometry returns an adaptive provider; tolerance <= 0 selects
// DefaultTolerance.
func NewAnalyticGeometry(tolerance float64) AnalyticGeometry {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return AnalyticGeometry{Tolerance: tolerance, MaxDepth: DefaultMaxDepth}
}

func (g AnalyticGeometry) Name() string { return string(StrategyAnalytic) }

// Area returns the section area for chord, in chord units squared
func (g AnalyticGeometry) Area(chord float64) (float64, error) {
	if err := checkChord(chord); err != nil {
		return 0, err
	}
	unit, err := adaptiveSimpson(sectionWidth, 0, 1, g.Tolerance, g.MaxDepth)
	if err != nil {
		return 0, err
	}
	return unit * chord * chord, nil
}

// LegendreGeometry substitutes ξ = t², turning the integrand into a
// polynomial in t that a fixed Gauss-Legendre rule integrates exactly.
type LegendreGeometry struct{}

func (LegendreGeometry) Name() string { return string(StrategyLegendre) }

// Area returns the section area for chord
func (LegendreGeometry) Area(chord float64) (float64, error) {
	if err := checkChord(chord); err != nil {
		return 0, err
	}
	f := func(t float64) float64 {
		return sectionWidth(t*t) * 2 * t
	}
	unit := quad.Fixed(f, 0, 1, legendrePoints, quad.Legendre{}, 0)
	if !isFinite(unit) {
		return 0, apperrors.NewNumericalError("gauss-legendre area is not finite", nil)
	}
	return unit * chord * chord, nil
}

// TabulatedGeometry scales a precomputed unit-chord area
type TabulatedGeometry struct {
	UnitArea float64
}

func (TabulatedGeometry) Name() string { return string(StrategyTabulated) }

// Area returns UnitArea·chord²
func (g TabulatedGeometry) Area(chord float64) (float64, error) {
	if err := checkChord(chord); err != nil {
		return 0, err
	}
	return g.UnitArea * chord * chord, nil
}

// adaptiveSimpson integrates f over [a, b] to an absolute tolerance. It
// returns a NUMERICAL error when an interval still fails the error estimate
// at maxDepth.
func adaptiveSimpson(f func(float64) float64, a, b, tol float64, maxDepth int) (float64, error) {
	fa, fb := f(a), f(b)
	m := (a + b) / 2
	fm := f(m)
	whole := simpson(a, b, fa, fm, fb)

	v, err := simpsonStep(f, a, b, fa, fm, fb, whole, tol, maxDepth)
	if err != nil {
		return 0, err
	}
	if !isFinite(v) {
		return 0, apperrors.NewNumericalError("adaptive quadrature produced a non-finite area", nil)
	}
	return v, nil
}

func simpson(a, b, fa, fm, fb float64) float64 {
	return (b - a) / 6 * (fa + 4*fm + fb)
}

func simpsonStep(f func(float64) float64, a, b, fa, fm, fb, whole, tol float64, depth int) (float64, error) {
	m := (a + b) / 2
	lm, rm := (a+m)/2, (m+b)/2
	flm, frm := f(lm), f(rm)
	left := simpson(a, m, fa, flm, fm)
	right := simpson(m, b, fm, frm, fb)
	delta := left + right - whole

	if math.Abs(delta) <= 15*tol {
		return left + right + delta/15, nil
	}
	if depth <= 0 {
		return 0, apperrors.NewNumericalError(
			fmt.Sprintf("adaptive quadrature did not converge on [%g, %g]", a, b), nil,
		).WithContext("tolerance", tol)
	}

	l, err := simpsonStep(f, a, m, fa, flm, fm, left, tol/2, depth-1)
	if err != nil {
		return 0, err
	}
	r, err := simpsonStep(f, m, b, fm, frm, fb, right, tol/2, depth-1)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}
