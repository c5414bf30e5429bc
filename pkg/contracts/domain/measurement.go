package domain

import "math"

// Measurement is one wind-tunnel pressure-tap recording as read from a
// measurement file. X, Y and P are index-aligned and keep file order.
type Measurement struct {
	Source string    `json:"source"`
	AoA    float64   `json:"aoa"`  // degrees
	Uinf   float64   `json:"uinf"` // m/s, uncorrected
	X      []float64 `json:"x"`    // m, chordwise
	Y      []float64 `json:"y"`    // m, sign selects the surface
	P      []float64 `json:"p"`    // Pa, differential
}

// Taps returns the number of pressure taps
func (m Measurement) Taps() int {
	return len(m.X)
}

// IsAligned reports whether the tap arrays share one length
func (m Measurement) IsAligned() bool {
	return len(m.X) == len(m.Y) && len(m.X) == len(m.P)
}

// IsFinite reports whether every scalar and tap value is finite
func (m Measurement) IsFinite() bool {
	if !finite(m.AoA) || !finite(m.Uinf) {
		return false
	}
	for _, s := range [][]float64{m.X, m.Y, m.P} {
		for _, v := range s {
			if !finite(v) {
				return false
			}
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
