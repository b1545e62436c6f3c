// Package names reads the list of names to process from a spreadsheet.
// The file must contain a column literally named "Name"; each non-empty
// cell in that column is one name. Blank cells are skipped silently.
package names

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/FocuswithJustin/Tehillim119/core/errors"
)

// RequiredColumn is the header the name column must carry.
const RequiredColumn = "Name"

// ReadFile reads names from a spreadsheet on disk. The format is chosen by
// file extension: .xlsx and .csv are supported.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewSpreadsheet(path, "cannot open file", err)
	}
	defer f.Close()

	return Read(f, path)
}

// Read reads names from an open spreadsheet. filename is used for format
// detection and error messages only.
func Read(r io.Reader, filename string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r, filename)
	case ".csv":
		return readCSV(r, filename)
	case ".xls":
		return nil, errors.NewSpreadsheet(filename,
			"legacy .xls is not supported; save as .xlsx or .csv", nil)
	default:
		return nil, errors.NewSpreadsheet(filename,
			"unsupported file type; expected .xlsx or .csv", nil)
	}
}

func readXLSX(r io.Reader, filename string) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewSpreadsheet(filename, "could not read workbook", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.NewSpreadsheet(filename, "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewSpreadsheet(filename, "could not read rows", err)
	}

	return extractNames(rows, filename)
}

func readCSV(r io.Reader, filename string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewSpreadsheet(filename, "could not parse CSV", err)
	}

	return extractNames(rows, filename)
}

// extractNames locates the required column in the header row and collects
// its non-empty, trimmed values.
func extractNames(rows [][]string, filename string) ([]string, error) {
	if len(rows) == 0 {
		return nil, errors.NewSpreadsheet(filename, "file is empty", nil)
	}

	col := -1
	for i, header := range rows[0] {
		if strings.TrimSpace(header) == RequiredColumn {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, errors.NewSpreadsheet(filename,
			`missing required column "`+RequiredColumn+`"`, nil)
	}

	var out []string
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[col])
		if name == "" {
			continue
		}
		out = append(out, name)
	}

	if len(out) == 0 {
		return nil, errors.NewSpreadsheet(filename,
			`no names found in column "`+RequiredColumn+`"`, nil)
	}

	return out, nil
}
