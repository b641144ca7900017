// =============================================================================
// parse-d2l - Shared Types
// =============================================================================
//
// This package contains types shared by the input readers and the converter
// so that neither has to import the other. Types defined here are used by:
//   - csvparser
//   - xlsxparser
//   - validation
//   - converter
//
// =============================================================================

package types

// =============================================================================
// ROW TYPES
// =============================================================================

// Row is a single data row keyed by header name.
// Only named lookup is used; column order within a row carries no meaning.
//
// A header the row is too short to fill is absent from the map rather than
// mapped to an empty string, so callers can tell "empty cell" from "no cell".
type Row map[string]string

// Lookup returns the value for column and whether the row had a cell for it.
func (r Row) Lookup(column string) (string, bool) {
	value, ok := r[column]
	return value, ok
}

// NewRow pairs a record with the header. Cells past the end of the header
// are dropped; headers past the end of the record are left out of the row.
// When a header name repeats, the rightmost cell wins.
func NewRow(header, record []string) Row {
	row := make(Row, len(header))
	for i, name := range header {
		if i >= len(record) {
			break
		}
		row[name] = record[i]
	}
	return row
}

// =============================================================================
// ROW SOURCE
// =============================================================================

// RowSource is a forward-only stream of rows with a header.
//
// USAGE:
//
//	defer src.Close()
//	for src.Next() {
//	    row := src.Row()
//	    // ...
//	}
//	if err := src.Err(); err != nil {
//	    return err
//	}
type RowSource interface {
	// Header returns the column names in file order.
	Header() []string

	// Next advances to the next data row. It returns false at the end of
	// input or on error.
	Next() bool

	// Row returns the current data row.
	Row() Row

	// RowNumber returns the 1-based index of the current data row,
	// not counting the header.
	RowNumber() int

	// Err returns the first read error, if any.
	Err() error

	// Close releases the underlying file.
	Close() error
}
