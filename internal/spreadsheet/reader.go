package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingHeaderRow is returned when the sheet has fewer than two rows.
	// The second row holds the column headers.
	ErrMissingHeaderRow = errors.New("spreadsheet has no header row")
	// ErrUnsupportedFormat is returned for file types the reader cannot open.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrNoSheets is returned for workbooks without any worksheet.
	ErrNoSheets = errors.New("workbook contains no sheets")
	// ErrUnreadable wraps decoder failures.
	ErrUnreadable = errors.New("spreadsheet could not be read")
)

// Format identifies how an upload is decoded.
type Format string

const (
	FormatExcel Format = "excel"
	FormatCSV   Format = "csv"
)

// csvSheetName is reported as the sheet name of CSV uploads.
const csvSheetName = "csv"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat maps a file name to a Format by extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatExcel, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Parse decodes an uploaded spreadsheet into a Table. The first row is
// discarded and the second row supplies the column headers. Excel workbooks
// are read from their first sheet.
func Parse(r io.Reader, filename string) (*Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	var (
		sheet string
		rows  [][]string
	)
	switch format {
	case FormatExcel:
		sheet, rows, err = readExcel(r)
	case FormatCSV:
		sheet, rows, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}

	return newTable(sheet, rows)
}

func readExcel(r io.Reader) (string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", nil, fmt.Errorf("%w: sheet %q: %w", ErrUnreadable, sheets[0], err)
	}
	return sheets[0], rows, nil
}

func readCSV(r io.Reader) (string, [][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return csvSheetName, rows, nil
}
