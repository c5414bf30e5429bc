package reduction

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"

	apperrors "tunnelcli/internal/errors"
)

// MinSurfacePoints is the fewest taps a surface needs for the trapezoidal rule
const MinSurfacePoints = 2

// PartitionSurfaces splits taps by the sign of y: y > 0 is the upper
// surface, y < 0 the lower one and y == 0 neither. Each surface is returned
// sorted by increasing x regardless of the tap order in the file.
func PartitionSurfaces(x, cp, y []float64) (Partition, error) {
	if len(x) != len(cp) || len(x) != len(y) {
		return Partition{}, apperrors.NewInvalidInputError(
			fmt.Sprintf("tap arrays are not aligned: x=%d cp=%d y=%d", len(x), len(cp), len(y)),
		).WithField("taps")
	}

	var part Partition
	for i := range x {
		pt := SurfacePoint{X: x[i], Cp: cp[i]}
		switch {
		case y[i] > 0:
			part.Upper = append(part.Upper, pt)
		case y[i] < 0:
			part.Lower = append(part.Lower, pt)
		default:
			part.Excluded++
		}
	}

	sortByX(part.Upper)
	sortByX(part.Lower)
	return part, nil
}

func sortByX(s Surface) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].X < s[j].X })
}

// IntegrateSurface applies the trapezoidal rule to a surface already sorted
// by x. name identifies the surface in errors.
func IntegrateSurface(s Surface, name string) (float64, error) {
	if len(s) < MinSurfacePoints {
		return 0, apperrors.NewInvalidInputError(
			fmt.Sprintf("%s surface has %d taps, need at least %d", name, len(s), MinSurfacePoints),
		).WithField(name)
	}
	for i := 1; i < len(s); i++ {
		if s[i].X <= s[i-1].X {
			return 0, apperrors.NewInvalidInputError(
				fmt.Sprintf("%s surface x is not strictly increasing at tap %d (x=%v)", name, i, s[i].X),
			).WithField(name)
		}
	}
	return integrate.Trapezoidal(s.Xs(), s.Cps()), nil
}

// LiftCoefficient integrates each surface over its own x domain and
// returns c_l = ∫Cp_lower dx − ∫Cp_upper dx.
func LiftCoefficient(part Partition) (float64, error) {
	upper, err := IntegrateSurface(part.Upper, "upper")
	if err != nil {
		return 0, err
	}
	lower, err := IntegrateSurface(part.Lower, "lower")
	if err != nil {
		return 0, err
	}
	return lower - upper, nil
}
