package answerkey

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadColumn_Workbook(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, filepath.Join(dir, "vectors.xlsx"),
		[]string{"Index", "Input Data", "Notes"},
		[][]string{
			{"0", "00", "zero"},
			{"1", "01"},
			{"2", "FF", "minus one"},
		})

	got, err := LoadColumn(path, "", DefaultColumn)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"00", "01", "FF"}, got); diff != "" {
		t.Errorf("LoadColumn mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadColumn_HeaderOnly(t *testing.T) {
	path := writeInputColumn(t, t.TempDir())

	got, err := LoadColumn(path, "", DefaultColumn)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadColumn_ShortRowsReadEmpty(t *testing.T) {
	path := writeWorkbook(t, filepath.Join(t.TempDir(), "short.xlsx"),
		[]string{"Index", "Input Data"},
		[][]string{{"0", "0A"}, {"1"}, {"2", "0B"}})

	got, err := LoadColumn(path, "", DefaultColumn)
	require.NoError(t, err)
	assert.Equal(t, []string{"0A", "", "0B"}, got)
}

func TestLoadColumn_NamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Vectors")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Other"))
	require.NoError(t, f.SetCellValue("Vectors", "A1", DefaultColumn))
	require.NoError(t, f.SetCellValue("Vectors", "A2", "7F"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := LoadColumn(path, "Vectors", DefaultColumn)
	require.NoError(t, err)
	assert.Equal(t, []string{"7F"}, got)

	_, err = LoadColumn(path, "", DefaultColumn)
	assert.True(t, errors.Is(err, ErrMissingColumn), "first sheet has no Input Data column")

	_, err = LoadColumn(path, "Missing", DefaultColumn)
	assert.True(t, errors.Is(err, ErrMalformedFile))
}

func TestLoadColumn_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.csv")
	content := "\ufeffInput Data,Expected\n00,1\n01,1\nFF,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := LoadColumn(path, "", DefaultColumn)
	require.NoError(t, err)
	assert.Equal(t, []string{"00", "01", "FF"}, got)
}

func TestLoadColumn_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")
	_, err := LoadColumn(path, "", DefaultColumn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageLoad, se.Stage)
	assert.Equal(t, path, se.Path)
}

func TestLoadColumn_MissingColumn(t *testing.T) {
	path := writeWorkbook(t, filepath.Join(t.TempDir(), "vectors.xlsx"),
		[]string{"input data"}, [][]string{{"00"}})

	_, err := LoadColumn(path, "", DefaultColumn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), `"Input Data"`)
}

func TestLoadColumn_MalformedFiles(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.xlsx")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a zip archive"), 0644))

	badCSV := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(badCSV, []byte("Input Data\n\"unterminated\n"), 0644))

	emptyCSV := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(emptyCSV, nil, 0644))

	unknown := filepath.Join(dir, "vectors.txt")
	require.NoError(t, os.WriteFile(unknown, []byte("Input Data\n00\n"), 0644))

	for _, path := range []string{garbage, badCSV, emptyCSV, unknown, dir} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadColumn(path, "", DefaultColumn)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedFile), "got %v", err)
		})
	}
}
