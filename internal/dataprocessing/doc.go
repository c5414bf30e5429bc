// Package dataprocessing reads wind-tunnel measurement files and summarises
// reduced sweeps.
//
// # Measurement files
//
// A measurement file is whitespace delimited text:
//
//	line 1   header tokens; token[2] = AoA (deg), token[6] = U (m/s)
//	line 2   ignored
//	line 3+  x y p   (m, m, Pa), one pressure tap per line
//
// Blank lines and lines starting with '#' are skipped. Taps keep file order;
// the sign of y selects the surface downstream.
//
//	m, err := dataprocessing.ParseFile("group_8/group_8_test_4.dat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Lift curves
//
// Summarizer orders per-file results by angle of attack and fits c_l(α):
//
//	curve := dataprocessing.NewSummarizer(logger).Summarize(summaries)
//	fmt.Printf("dc_l/dα = %.4f per rad\n", curve.SlopePerRad)
//
// # Error Handling
//
// Malformed content returns a PARSING AppError carrying the file name and
// the offending field ("header[6]", "line 12: p"). A missing file returns
// NOT_FOUND.
package dataprocessing
