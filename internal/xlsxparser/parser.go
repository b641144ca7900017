// =============================================================================
// parse-d2l - XLSX Reader
// =============================================================================
//
// This module reads classlist exports that were opened and saved as Excel
// workbooks. The sheet is read the same way as a CSV file:
//
//   | Row 1 | Email   | First Name | Last Name | OrgDefinedId |   <- header
//   | Row 2 | a@x.com | Ann        | Lee       | 123          |   <- data
//   | ...   |         |            |           |              |
//
// SPREADSHEET DIFFERENCES FROM CSV:
//   - Excel does not store trailing empty cells, so every data row is padded
//     with empty strings up to the header width. A blank cell is therefore
//     an empty value, never a missing column.
//   - Completely blank rows are skipped.
//   - Cell values are the formatted text Excel would display.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/parse-d2l/internal/config"
	"github.com/ginjaninja78/parse-d2l/internal/types"
)

// =============================================================================
// WORKBOOK READER
// =============================================================================

// Reader streams rows from one worksheet. It implements types.RowSource.
type Reader struct {
	file       *excelize.File
	rows       *excelize.Rows
	sheet      string
	header     []string
	currentRow types.Row
	rowNumber  int
	err        error
}

var _ types.RowSource = (*Reader)(nil)

// Open opens a workbook and reads the header of the configured sheet.
//
// PARAMETERS:
//   - filePath: The path to the .xlsx file.
//   - settings: The XLSX settings. An empty Sheet selects the first sheet.
//
// RETURNS:
//   - A Reader positioned before the first data row. The caller must Close it.
//   - An error if the workbook or sheet cannot be opened.
func Open(filePath string, settings config.XLSXSettings) (*Reader, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	r, err := newReader(f, settings.Sheet)
	if err != nil {
		f.Close()
		return nil, err
	}

	return r, nil
}

func newReader(f *excelize.File, sheet string) (*Reader, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("invalid sheet name %q: %w", sheet, err)
	}
	if index == -1 {
		return nil, fmt.Errorf("sheet %q not found (available: %v)", sheet, f.GetSheetList())
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	r := &Reader{
		file:  f,
		rows:  rows,
		sheet: sheet,
	}

	if err := r.readHeader(); err != nil {
		rows.Close()
		return nil, err
	}

	return r, nil
}

// readHeader reads the first row of the sheet. An empty sheet has an empty header.
func (r *Reader) readHeader() error {
	r.header = []string{}

	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return fmt.Errorf("failed to read header row: %w", err)
		}
		return nil
	}

	columns, err := r.rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}

	r.header = columns
	return nil
}

// Sheet returns the name of the worksheet being read.
func (r *Reader) Sheet() string {
	return r.sheet
}

// Header returns the column names in sheet order.
func (r *Reader) Header() []string {
	return r.header
}

// Next advances to the next non-blank row.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	for r.rows.Next() {
		columns, err := r.rows.Columns()
		if err != nil {
			r.err = fmt.Errorf("error reading row %d: %w", r.rowNumber+1, err)
			return false
		}

		if isRowEmpty(columns) {
			continue
		}

		r.rowNumber++
		r.currentRow = types.NewRow(r.header, padRow(columns, len(r.header)))
		return true
	}

	if err := r.rows.Error(); err != nil {
		r.err = fmt.Errorf("error reading row %d: %w", r.rowNumber+1, err)
	}
	return false
}

// Row returns the current row.
func (r *Reader) Row() types.Row {
	return r.currentRow
}

// RowNumber returns the current data row number (1-indexed, blank rows not counted).
func (r *Reader) RowNumber() int {
	return r.rowNumber
}

// Err returns any error that occurred during reading.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the row iterator and the workbook.
func (r *Reader) Close() error {
	rowsErr := r.rows.Close()
	if err := r.file.Close(); err != nil {
		return err
	}
	return rowsErr
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// padRow extends row with empty cells up to width.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
