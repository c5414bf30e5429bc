package dataprocessing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "tunnelcli/internal/errors"
	"tunnelcli/pkg/contracts/domain"
)

// Header layout of a measurement file: whitespace separated tokens on the
// first line, AoA and freestream velocity at fixed positions.
const (
	HeaderAoAIndex      = 2
	HeaderVelocityIndex = 6

	// HeaderLines is the number of lines before the first data row.
	HeaderLines = 2

	// RowFields is the x, y, p triple of a data row.
	RowFields = 3

	maxLineBytes = 1 << 20
)

var rowColumns = [RowFields]string{"x", "y", "p"}

// ParseFile reads one measurement file. The measurement Source is the file's
// base name so that failures in a sweep name the offending file.
func ParseFile(filePath string) (*domain.Measurement, error) {
	source := filepath.Base(filePath)

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("measurement file").WithFile(source)
		}
		return nil, apperrors.NewStorageError("failed to open measurement file", err).WithFile(source)
	}
	defer f.Close()

	return Parse(f, source)
}

// Parse reads a measurement from r. Line 1 carries the header, line 2 is
// skipped, every further line is an "x y p" row. Blank lines and lines
// whose first field starts with '#' are skipped rather than rejected, so
// annotated exports load unchanged. Tap order is preserved.
func Parse(r io.Reader, source string) (*domain.Measurement, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	m := &domain.Measurement{Source: source}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case lineNo == 1:
			aoa, uinf, err := parseHeader(line)
			if err != nil {
				return nil, err.WithFile(source)
			}
			m.AoA, m.Uinf = aoa, uinf
			continue
		case lineNo < HeaderLines+1:
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		x, y, p, err := parseRow(fields, lineNo)
		if err != nil {
			return nil, err.WithFile(source)
		}
		m.X = append(m.X, x)
		m.Y = append(m.Y, y)
		m.P = append(m.P, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewParsingError("failed to read measurement", err).
			WithFile(source).
			WithField(fmt.Sprintf("line %d", lineNo+1))
	}

	if lineNo == 0 {
		return nil, apperrors.NewParsingError("file is empty", nil).WithFile(source).WithField("header")
	}
	if len(m.X) == 0 {
		return nil, apperrors.NewParsingError("no data rows after the header", nil).WithFile(source).WithField("rows")
	}
	return m, nil
}

func parseHeader(line string) (aoa, uinf float64, _ *apperrors.AppError) {
	tokens := strings.Fields(line)
	if len(tokens) <= HeaderVelocityIndex {
		missing := HeaderVelocityIndex
		if len(tokens) <= HeaderAoAIndex {
			missing = HeaderAoAIndex
		}
		return 0, 0, apperrors.NewParsingError(
			fmt.Sprintf("header has %d fields, need at least %d", len(tokens), HeaderVelocityIndex+1), nil,
		).WithField(fmt.Sprintf("header[%d]", missing))
	}

	aoa, err := headerValue(tokens, HeaderAoAIndex, "angle of attack")
	if err != nil {
		return 0, 0, err
	}
	uinf, err = headerValue(tokens, HeaderVelocityIndex, "freestream velocity")
	if err != nil {
		return 0, 0, err
	}
	return aoa, uinf, nil
}

// headerValue parses tokens[i] as a finite float; NaN and Inf are
// rejected here so the error names the header field.
func headerValue(tokens []string, i int, name string) (float64, *apperrors.AppError) {
	field := fmt.Sprintf("header[%d]", i)
	v, err := strconv.ParseFloat(tokens[i], 64)
	if err != nil {
		return 0, apperrors.NewParsingError(fmt.Sprintf("%s %q is not numeric", name, tokens[i]), err).WithField(field)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.NewParsingError(fmt.Sprintf("%s %q is not finite", name, tokens[i]), nil).WithField(field)
	}
	return v, nil
}

func parseRow(fields []string, lineNo int) (x, y, p float64, _ *apperrors.AppError) {
	if len(fields) != RowFields {
		return 0, 0, 0, apperrors.NewParsingError(
			fmt.Sprintf("data row has %d fields, want %d", len(fields), RowFields), nil,
		).WithField(fmt.Sprintf("line %d", lineNo))
	}

	var vals [RowFields]float64
	for i, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, 0, 0, apperrors.NewParsingError(
				fmt.Sprintf("%s value %q is not numeric", rowColumns[i], tok), err,
			).WithField(fmt.Sprintf("line %d: %s", lineNo, rowColumns[i]))
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}
