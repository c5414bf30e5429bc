// Package reduction turns pressure-tap measurements from a NACA 0018
// wind-tunnel test into aerodynamic coefficients.
//
// # Core Components
//
//  1. Pressure coefficients: Cp = p / (0.5·ρ·U²) over the whole tap array
//  2. Reynolds number: Re = U·c/ν
//  3. Geometry: the NACA 0018 section area, from an adaptive quadrature of
//     the thickness distribution, a Gauss-Legendre rule, or a tabulated
//     unit-chord constant
//  4. Solid blockage: ε = K·V/S^1.5 applied to U and Re
//  5. Lift: taps split by the sign of y, each surface sorted by x and
//     integrated with the trapezoidal rule; c_l = ∫Cp_lower − ∫Cp_upper
//
// # Architecture
//
//   - types.go: Params, FlowState, Surface, Partition and Result
//   - coefficients.go: Cp and Reynolds number
//   - geometry.go: section area strategies
//   - blockage.go: solid-blockage correction
//   - lift.go: surface partition and lift integration
//   - reducer.go: per-measurement orchestration
//
// Every function takes its run constants explicitly through Params, so
// several tunnel or chord configurations can be reduced side by side.
//
// # Usage Example
//
//	geom, _ := reduction.NewGeometry(reduction.StrategyAnalytic, 0, 0)
//	reducer, err := reduction.NewReducer(reduction.DefaultParams(), geom, slog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := reducer.Reduce(ctx, measurement)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Re = %.0f, c_l = %.4f\n", result.Corrected.Reynolds, result.Lift)
//
// # Error Handling
//
// Degenerate input (zero velocity, non-positive tunnel area, fewer than two
// taps on a surface) returns an INVALID_INPUT AppError; a quadrature that
// does not converge returns a NUMERICAL AppError. Neither is ever reported
// as NaN.
package reduction
