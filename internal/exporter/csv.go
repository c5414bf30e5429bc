package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"tunnelcli/internal/files"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	files *files.Manager
}

// NewCSVWriter creates a new CSV writer writing through manager
func NewCSVWriter(manager *files.Manager) *CSVWriter {
	return &CSVWriter{files: manager}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes a complete CSV file and returns its path
func (w *CSVWriter) WriteCSV(name string, options WriteOptions) (string, error) {
	data, err := EncodeCSV(options)
	if err != nil {
		return "", err
	}
	return w.files.WriteFile(name, data)
}

// EncodeCSV renders headers and records as CSV bytes
func EncodeCSV(options WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if options.BOMPrefix {
		buf.Write(utf8BOM)
	}

	writer := csv.NewWriter(&buf)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
