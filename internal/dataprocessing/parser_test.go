package dataprocessing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tunnelcli/internal/errors"
)

const goldenFile = `x y 5.0 z q w 20.0 extra
x y p
0.0 0.01 -50.0
0.1 0.02 -40.0
0.2 -0.01 30.0
0.3 -0.02 35.0
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(goldenFile), "golden.dat")
	require.NoError(t, err)

	assert.Equal(t, "golden.dat", m.Source)
	assert.Equal(t, 5.0, m.AoA)
	assert.Equal(t, 20.0, m.Uinf)
	assert.Equal(t, []float64{0.0, 0.1, 0.2, 0.3}, m.X)
	assert.Equal(t, []float64{0.01, 0.02, -0.01, -0.02}, m.Y)
	assert.Equal(t, []float64{-50.0, -40.0, 30.0, 35.0}, m.P)
	assert.True(t, m.IsAligned())
}

func TestParse_Layout(t *testing.T) {
	t.Run("second line is skipped even when numeric", func(t *testing.T) {
		in := "a b 2.5 c d e 15\n9 9 9\n0.1 0.01 1\n0.2 -0.01 2\n"
		m, err := Parse(strings.NewReader(in), "s.dat")
		require.NoError(t, err)
		assert.Equal(t, 2, m.Taps())
		assert.Equal(t, 0.1, m.X[0])
	})

	t.Run("tabs, repeated spaces and blank lines", func(t *testing.T) {
		in := "run 7 -4.0 deg  U  = 18.5\r\n\r\n0.3\t0.02\t-10\n\n  0.1   0.03  -20  \n0.2 -0.01 5\r\n"
		m, err := Parse(strings.NewReader(in), "t.dat")
		require.NoError(t, err)
		assert.Equal(t, -4.0, m.AoA)
		assert.Equal(t, 18.5, m.Uinf)
		assert.Equal(t, []float64{0.3, 0.1, 0.2}, m.X, "file order is preserved")
	})

	t.Run("comment rows", func(t *testing.T) {
		in := goldenFile + "# trailing edge tap removed\n"
		m, err := Parse(strings.NewReader(in), "c.dat")
		require.NoError(t, err)
		assert.Equal(t, 4, m.Taps())
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "header with five tokens",
			input: "x 5.0 y z q\nskip\n0 0.1 1\n0 -0.1 1\n",
			field: "header[6]",
		},
		{
			name:  "header with two tokens",
			input: "x 5.0\nskip\n0 0.1 1\n",
			field: "header[2]",
		},
		{
			name:  "non-numeric angle of attack",
			input: "x 1 five z q w 20.0\nskip\n0 0.1 1\n",
			field: "header[2]",
		},
		{
			name:  "non-numeric velocity",
			input: "x y 5.0 z q w fast\nskip\n0 0.1 1\n",
			field: "header[6]",
		},
		{
			name:  "NaN angle of attack",
			input: "x y NaN z q w 20\nskip\n0 0.1 1\n0 -0.1 1\n",
			field: "header[2]",
		},
		{
			name:  "infinite velocity",
			input: "x y 5.0 z q w +Inf\nskip\n0 0.1 1\n0 -0.1 1\n",
			field: "header[6]",
		},
		{
			name:  "row with two fields",
			input: "x y 5.0 z q w 20.0\nskip\n0 0.1 1\n0.2 0.1\n",
			field: "line 4",
		},
		{
			name:  "row with four fields",
			input: "x y 5.0 z q w 20.0\nskip\n0 0.1 1 7\n",
			field: "line 3",
		},
		{
			name:  "non-numeric pressure",
			input: "x y 5.0 z q w 20.0\nskip\n0 0.1 1\n0.1 -0.1 n/a\n",
			field: "line 4: p",
		},
		{
			// AoA is read from token 2, so a velocity-style header with the
			// angle in token 1 is rejected rather than silently misread.
			name:  "angle of attack in the wrong position",
			input: "x 5.0 y z q w 20.0 extra\nskip\n0 0.1 1\n0 -0.1 1\n",
			field: "header[2]",
		},
		{
			name:  "empty file",
			input: "",
			field: "header",
		},
		{
			name:  "header only",
			input: "x y 5.0 z q w 20.0\nskip\n",
			field: "rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tt.input), "bad.dat")
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, apperrors.ErrParse))

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.field, appErr.Field())
			assert.Equal(t, "bad.dat", appErr.Context["file"])
			assert.Contains(t, err.Error(), "file=bad.dat")
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "group_8_test_4.dat")
	require.NoError(t, os.WriteFile(path, []byte(goldenFile), 0o644))

	m, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "group_8_test_4.dat", m.Source)
	assert.Equal(t, 4, m.Taps())

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "missing.dat"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}
