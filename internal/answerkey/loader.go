package answerkey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultColumn is the header of the test-vector column.
const DefaultColumn = "Input Data"

// LoadColumn reads the cells of one named column from a spreadsheet.
// The first row is the header; data rows are returned in file order.
// .xlsx/.xlsm workbooks and .csv files are supported. sheet selects a
// workbook sheet and is ignored for CSV; empty means the first sheet.
func LoadColumn(path, sheet, column string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, loadError(ErrFileNotFound, path, err)
	}
	if info.IsDir() {
		return nil, loadError(ErrMalformedFile, path, errors.New("is a directory"))
	}

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		rows, err = readWorkbook(path, sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, loadError(ErrMalformedFile, path, fmt.Errorf("unsupported file type %q", ext))
	}
	if err != nil {
		return nil, err
	}

	return extractColumn(path, rows, column)
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadError(ErrMalformedFile, path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, loadError(ErrMalformedFile, path, errors.New("workbook has no sheets"))
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, loadError(ErrMalformedFile, path, fmt.Errorf("sheet %q not found", sheet))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, loadError(ErrMalformedFile, path, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, loadError(ErrFileNotFound, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, loadError(ErrMalformedFile, path, err)
	}
	return records, nil
}

// extractColumn picks column out of rows. Cells past a short row's end read as "".
func extractColumn(path string, rows [][]string, column string) ([]string, error) {
	if len(rows) == 0 {
		return nil, loadError(ErrMalformedFile, path, errors.New("no header row"))
	}

	header := rows[0]
	idx := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, loadError(ErrMissingColumn, path, fmt.Errorf("column %q not in header %q", column, header))
	}

	cells := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if idx < len(row) {
			cells = append(cells, row[idx])
		} else {
			cells = append(cells, "")
		}
	}
	return cells, nil
}
