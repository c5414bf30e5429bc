package dataprocessing

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"tunnelcli/pkg/contracts/domain"
)

// LiftPoint is one successfully reduced file on the lift curve
type LiftPoint struct {
	Source   string  `json:"source"`
	AoA      float64 `json:"aoa"`
	Reynolds float64 `json:"reynolds"`
	Lift     float64 `json:"cl"`
}

// LiftCurve summarises a sweep: c_l against angle of attack
type LiftCurve struct {
	Points []LiftPoint `json:"points"`
	Failed []string    `json:"failed,omitempty"`

	// Least-squares fit c_l = Intercept + Slope·α over every point, stalled
	// ones included, α in degrees. Meaningful only when HasFit is true;
	// ZeroLiftAoA stays 0 for a flat fit.
	HasFit      bool    `json:"has_fit"`
	Slope       float64 `json:"slope_per_deg"`
	SlopePerRad float64 `json:"slope_per_rad"`
	Intercept   float64 `json:"intercept"`
	ZeroLiftAoA float64 `json:"zero_lift_aoa"`

	MaxLift    float64 `json:"max_cl"`
	MaxLiftAoA float64 `json:"max_cl_aoa"`
}

// Summarizer builds lift curves from sweep results
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize orders successful reductions by angle of attack and fits a
// straight line through all of them, so a sweep past stall lowers the
// slope. Failed files are listed by source only.
func (s *Summarizer) Summarize(summaries []domain.ReductionSummary) LiftCurve {
	var curve LiftCurve
	for _, sum := range summaries {
		if sum.Failed() {
			curve.Failed = append(curve.Failed, sum.Source)
			continue
		}
		curve.Points = append(curve.Points, LiftPoint{
			Source:   sum.Source,
			AoA:      sum.AoA,
			Reynolds: sum.Reynolds,
			Lift:     sum.Lift,
		})
	}

	SortByAoA(curve.Points)

	for i, p := range curve.Points {
		if i == 0 || p.Lift > curve.MaxLift {
			curve.MaxLift = p.Lift
			curve.MaxLiftAoA = p.AoA
		}
	}

	if distinctAoA(curve.Points) >= 2 {
		aoa := make([]float64, len(curve.Points))
		cl := make([]float64, len(curve.Points))
		for i, p := range curve.Points {
			aoa[i], cl[i] = p.AoA, p.Lift
		}
		alpha, beta := stat.LinearRegression(aoa, cl, nil, false)
		curve.HasFit = true
		curve.Intercept = alpha
		curve.Slope = beta
		curve.SlopePerRad = beta * 180 / math.Pi
		if beta != 0 {
			curve.ZeroLiftAoA = -alpha / beta
		}
	}

	s.logger.Info("lift curve summarised",
		slog.Int("points", len(curve.Points)),
		slog.Int("failed", len(curve.Failed)),
		slog.Bool("fit", curve.HasFit),
		slog.Float64("slope_per_deg", curve.Slope),
	)
	return curve
}

// SortByAoA orders points by angle of attack, ties by source name
func SortByAoA(points []LiftPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].AoA != points[j].AoA {
			return points[i].AoA < points[j].AoA
		}
		return points[i].Source < points[j].Source
	})
}

func distinctAoA(points []LiftPoint) int {
	n := 0
	for i, p := range points {
		if i == 0 || p.AoA != points[i-1].AoA {
			n++
		}
	}
	return n
}
