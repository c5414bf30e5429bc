// Package exporter writes reduction results for people and spreadsheets.
//
// This package contains four components:
//
// CSVWriter: Core CSV writing with optional UTF-8 BOM for Excel
// compatibility, written atomically through files.Manager.
//
// SummaryExporter: The sweep summary (one row per file, failures included)
// and per-file Cp distributions as CSV, plus JSON dumps.
//
// WorkbookExporter: The same data as one .xlsx workbook with a Summary
// sheet and one sheet per reduced file.
//
// FormatReport / WriteSweepTable: Console output. Re is rounded to an
// integer and c_l printed to four decimals so output is stable for
// snapshot tests.
//
// Example usage:
//
//	manager := files.NewManager("reports", logger)
//	summary := exporter.NewSummaryExporter(exporter.NewCSVWriter(manager))
//	path, err := summary.ExportSummary(summaries, "summary.csv")
package exporter
