package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tunnelcli/internal/files"
	"tunnelcli/internal/reduction"
	"tunnelcli/pkg/contracts/domain"
)

func TestWorkbookExporter_Export(t *testing.T) {
	dir := t.TempDir()
	exp := NewWorkbookExporter(files.NewManager(dir, nil))

	res := goldenResult()
	summaries := []domain.ReductionSummary{
		res.Summary(),
		{Source: "broken.dat", Status: domain.ReductionStatusFailed, ErrorType: "PARSING", Error: "bad header"},
	}

	path, err := exp.Export("sweep.xlsx", summaries, []*reduction.Result{res, nil}, 0.45)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, "group_8_test_4"}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, SummaryHeaders, rows[0])
	assert.Equal(t, "group_8_test_4.dat", rows[1][0])
	assert.Equal(t, "failed", rows[2][1])

	cl, err := f.GetCellValue(SummarySheet, "H2")
	require.NoError(t, err)
	assert.Contains(t, cl, "0.0313")

	dist, err := f.GetRows("group_8_test_4")
	require.NoError(t, err)
	require.Len(t, dist, 5)
	assert.Equal(t, "upper", dist[1][0])
	assert.Equal(t, "lower", dist[4][0])

	aoa, err := f.GetCellValue("group_8_test_4", "G1")
	require.NoError(t, err)
	assert.Equal(t, "5", aoa)
}

func TestSheetNames(t *testing.T) {
	assert.Equal(t, "run_1", sheetNameFor("/data/run_1.dat"))
	assert.Equal(t, "a_b_c", sheetNameFor("a[b]c.dat"))
	assert.Len(t, []rune(sheetNameFor("a_very_long_measurement_file_name_from_the_tunnel.dat")), maxSheetName)
	assert.Equal(t, "measurement", sheetNameFor(".dat"))

	used := map[string]bool{"summary": true}
	assert.Equal(t, "Summary_2", uniqueSheetName("Summary", used))
	assert.Equal(t, "run", uniqueSheetName("run", used))
	assert.Equal(t, "run_2", uniqueSheetName("run", used))
	assert.Equal(t, "RUN_3", uniqueSheetName("RUN", used))
}
