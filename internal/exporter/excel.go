package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tunnelcli/internal/files"
	"tunnelcli/internal/reduction"
	"tunnelcli/pkg/contracts/domain"
)

const (
	SummarySheet = "Summary"

	// excel rejects sheet names longer than this
	maxSheetName = 31
)

// WorkbookExporter writes a sweep into one .xlsx workbook: a Summary sheet
// and one sheet per reduced file with its surface distributions.
type WorkbookExporter struct {
	files *files.Manager
}

// NewWorkbookExporter creates a workbook exporter writing through manager
func NewWorkbookExporter(manager *files.Manager) *WorkbookExporter {
	return &WorkbookExporter{files: manager}
}

// Export builds the workbook and writes it to name. results may be shorter
// than summaries; failed files have no distribution sheet.
func (e *WorkbookExporter) Export(name string, summaries []domain.ReductionSummary, results []*reduction.Result, chord float64) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return "", fmt.Errorf("failed to name summary sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, SummarySheet, SummaryHeaders, summaryRows(summaries), header); err != nil {
		return "", err
	}

	used := map[string]bool{strings.ToLower(SummarySheet): true}
	for _, res := range results {
		if res == nil {
			continue
		}
		sheet := uniqueSheetName(sheetNameFor(res.Source), used)
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, DistributionHeaders, distributionCells(res.Partition, chord), header); err != nil {
			return "", err
		}
		meta := [][]interface{}{
			{"AoA (deg)", res.AoA},
			{"Re (corrected)", res.Corrected.Reynolds},
			{"c_l", res.Lift},
		}
		for i, row := range meta {
			cell, _ := excelize.CoordinatesToCellName(6, i+1)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return "", fmt.Errorf("failed to write %s metadata: %w", sheet, err)
			}
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("failed to render workbook: %w", err)
	}
	return e.files.WriteFile(name, buf.Bytes())
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func summaryRows(summaries []domain.ReductionSummary) [][]interface{} {
	rows := make([][]interface{}, 0, len(summaries))
	for _, s := range summaries {
		if s.Failed() {
			rows = append(rows, []interface{}{s.Source, string(s.Status), "", "", "", "", "", "", "", s.ErrorType, s.Field, s.Error})
			continue
		}
		rows = append(rows, []interface{}{
			s.Source, string(s.Status), s.AoA, s.Velocity, s.CorrectedVelocity,
			s.Reynolds, s.Blockage, s.Lift, s.Taps, "", "", "",
		})
	}
	return rows
}

func distributionCells(part reduction.Partition, chord float64) [][]interface{} {
	rows := make([][]interface{}, 0, len(part.Upper)+len(part.Lower))
	for _, side := range []struct {
		name    string
		surface reduction.Surface
	}{{"upper", part.Upper}, {"lower", part.Lower}} {
		for _, pt := range side.surface {
			rows = append(rows, []interface{}{side.name, pt.X, pt.X / chord, pt.Cp})
		}
	}
	return rows
}

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// sheetNameFor derives a valid sheet name from a file name
func sheetNameFor(source string) string {
	base := filepath.Base(source)
	name := sheetNameReplacer.Replace(strings.TrimSuffix(base, filepath.Ext(base)))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "measurement"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf("_%d", i)
		r := []rune(name)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		candidate = string(r) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
