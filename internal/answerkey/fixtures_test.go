package answerkey

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"answerkey/internal/config"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a single-sheet workbook whose first row is header.
func writeWorkbook(t *testing.T, path string, header []string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

// writeInputColumn saves an Input_Dataset.xlsx with one "Input Data" column.
func writeInputColumn(t *testing.T, dir string, cells ...string) string {
	t.Helper()
	rows := make([][]string, len(cells))
	for i, c := range cells {
		rows[i] = []string{c}
	}
	return writeWorkbook(t, filepath.Join(dir, "Input_Dataset.xlsx"), []string{DefaultColumn}, rows)
}

func testConfig(input, output string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Input.Path = input
	cfg.Output.Path = output
	return cfg
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if len(data) == 0 {
		return []string{}
	}
	require.True(t, strings.HasSuffix(string(data), "\n"), "answer key must end with a newline")
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// leftovers lists temp files a failed write might have left in dir.
func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var found []string
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			found = append(found, e.Name())
		}
	}
	return found
}
