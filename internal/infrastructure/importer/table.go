// Package importer loads ingredient catalog spreadsheets into the catalog table.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyTable is returned when a file has no header row
var ErrEmptyTable = errors.New("table has no header row")

// Table is a header row plus data rows, all cells as text
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadCSV reads a comma separated table. Rows may be ragged.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return newTable(records)
}

// ReadXLSX reads the first worksheet of a workbook
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return newTable(rows)
}

func newTable(records [][]string) (*Table, error) {
	for i, rec := range records {
		if !blankRow(rec) {
			return &Table{Header: records[i], Rows: records[i+1:]}, nil
		}
	}
	return nil, ErrEmptyTable
}

func blankRow(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
