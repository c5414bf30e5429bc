package exporter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"tunnelcli/internal/dataprocessing"
	"tunnelcli/internal/reduction"
	"tunnelcli/pkg/contracts/domain"
)

// formatFloat formats a value for CSV output without losing precision
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatReynolds rounds a Reynolds number to an integer
func formatReynolds(re float64) string {
	return strconv.FormatFloat(math.Round(re), 'f', 0, 64)
}

// formatLift prints c_l to four decimal places
func formatLift(cl float64) string {
	return strconv.FormatFloat(cl, 'f', 4, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

// FormatReport renders the console report of one reduction
func FormatReport(res *reduction.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", res.Source)
	fmt.Fprintf(&b, "Angle of attack: AoA = %g deg\n", res.AoA)
	fmt.Fprintf(&b, "Reynolds number: Re = %s\n", formatReynolds(res.Corrected.Reynolds))
	fmt.Fprintf(&b, "Lift coefficient: c_l = %s\n", formatLift(res.Lift))
	return b.String()
}

// WriteSweepTable writes the lift curve as an aligned table ordered by AoA,
// followed by the fit and any failed files.
func WriteSweepTable(w io.Writer, curve dataprocessing.LiftCurve, summaries []domain.ReductionSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tAOA (deg)\tRE\tC_L")
	for _, p := range curve.Points {
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\n", p.Source, p.AoA, formatReynolds(p.Reynolds), formatLift(p.Lift))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if curve.HasFit {
		fmt.Fprintf(w, "\nLift slope: dc_l/dAoA = %.4f per deg (%.3f per rad), zero lift at %.2f deg\n",
			curve.Slope, curve.SlopePerRad, curve.ZeroLiftAoA)
	}

	var failed []domain.ReductionSummary
	for _, s := range summaries {
		if s.Failed() {
			failed = append(failed, s)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(w, "\nFailed files (%d):\n", len(failed))
		for _, s := range failed {
			fmt.Fprintf(w, "  %s: %s\n", s.Source, s.Error)
		}
	}
	return nil
}
