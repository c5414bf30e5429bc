package exporter

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"tunnelcli/internal/reduction"
	"tunnelcli/pkg/contracts/domain"
)

// SummaryHeaders are the columns of the sweep summary CSV
var SummaryHeaders = []string{
	"source", "status", "aoa_deg", "velocity", "corrected_velocity",
	"reynolds", "blockage", "cl", "taps", "error_type", "field", "error",
}

// DistributionHeaders are the columns of a per-file Cp CSV
var DistributionHeaders = []string{"surface", "x", "x_c", "cp"}

// SummaryExporter writes sweep and per-file reports
type SummaryExporter struct {
	csv *CSVWriter
}

// NewSummaryExporter creates a new exporter writing through w
func NewSummaryExporter(w *CSVWriter) *SummaryExporter {
	return &SummaryExporter{csv: w}
}

// ExportSummary writes one row per file, failures included, in input order
func (e *SummaryExporter) ExportSummary(summaries []domain.ReductionSummary, name string) (string, error) {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, summaryToCSVRow(s))
	}
	return e.csv.WriteCSV(name, WriteOptions{
		Headers:   SummaryHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}

// ExportDistribution writes the integrated surfaces of one result, each
// sorted by x, to <stem>_cp.csv
func (e *SummaryExporter) ExportDistribution(res *reduction.Result, chord float64) (string, error) {
	return e.csv.WriteCSV(DistributionFileName(res.Source), WriteOptions{
		Headers: DistributionHeaders,
		Records: distributionRows(res.Partition, chord),
	})
}

// EncodeDistribution renders the Cp distribution CSV of one result
func EncodeDistribution(res *reduction.Result, chord float64) ([]byte, error) {
	return EncodeCSV(WriteOptions{
		Headers: DistributionHeaders,
		Records: distributionRows(res.Partition, chord),
	})
}

// ExportJSON writes v as indented JSON
func (e *SummaryExporter) ExportJSON(v interface{}, name string) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return e.csv.files.WriteFile(name, append(data, '\n'))
}

// DistributionFileName maps group_8_test_4.dat to group_8_test_4_cp.csv
func DistributionFileName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_cp.csv"
}

func distributionRows(part reduction.Partition, chord float64) [][]string {
	rows := make([][]string, 0, len(part.Upper)+len(part.Lower))
	add := func(name string, s reduction.Surface) {
		for _, pt := range s {
			rows = append(rows, []string{name, formatFloat(pt.X), formatFloat(pt.X / chord), formatFloat(pt.Cp)})
		}
	}
	add("upper", part.Upper)
	add("lower", part.Lower)
	return rows
}

func summaryToCSVRow(s domain.ReductionSummary) []string {
	if s.Failed() {
		return []string{s.Source, string(s.Status), "", "", "", "", "", "", "", s.ErrorType, s.Field, s.Error}
	}
	return []string{
		s.Source,
		string(s.Status),
		formatFloat(s.AoA),
		formatFloat(s.Velocity),
		formatFloat(s.CorrectedVelocity),
		formatFloat(s.Reynolds),
		formatFloat(s.Blockage),
		formatFloat(s.Lift),
		formatInt(s.Taps),
		"", "", "",
	}
}
