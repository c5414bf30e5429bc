package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// GoldenMeasurement is a four-tap measurement at AoA 5 deg and 20 m/s.
// With the default run constants it reduces to GoldenLift.
const GoldenMeasurement = `x y 5.0 z q w 20.0 extra
x y p
0.0 0.01 -50.0
0.1 0.02 -40.0
0.2 -0.01 30.0
0.3 -0.02 35.0
`

// Reference values of GoldenMeasurement under the default run constants
const (
	GoldenLift              = 7.75 / 247.4
	GoldenReynolds          = 627615.0627615063
	GoldenCorrectedReynolds = 628468.7894651445
	GoldenBlockage          = 0.0013602712144634979
)

// Measurement renders a measurement file with the given header values and
// "x y p" rows
func Measurement(aoa, uinf float64, rows ...[3]float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "x y %g z q w %g extra\nx y p\n", aoa, uinf)
	for _, r := range rows {
		fmt.Fprintf(&b, "%g %g %g\n", r[0], r[1], r[2])
	}
	return b.String()
}

// WriteMeasurement writes content to dir/name and returns the path
func WriteMeasurement(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
