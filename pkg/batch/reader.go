package batch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRecords extracts raw records from a batch file, choosing the reader
// by filename extension. Anything that is not a spreadsheet is read as
// delimited text.
func ReadRecords(data []byte, filename string, delimiter rune) ([][]string, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".xls"):
		return ReadXLS(data)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return ReadXLSX(data)
	default:
		return ReadCSV(data, delimiter)
	}
}

// ReadCSV reads delimited text records. A leading UTF-8 BOM is stripped and
// rows may have a variable number of fields; the parser validates them.
func ReadCSV(data []byte, delimiter rune) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}

// ReadXLS reads the cells of a legacy Excel workbook.
func ReadXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls workbook: %w", err)
	}
	return workbook.ReadAllCells(10000), nil
}

// ReadXLSX reads the first sheet of an xlsx workbook.
func ReadXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}
	return rows, nil
}
