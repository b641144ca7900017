// =============================================================================
// parse-d2l - CSV Parser Module
// =============================================================================
//
// This module reads classlist CSV exports one row at a time. The first record
// is the header; every following record becomes a types.Row keyed by header.
//
// READER SETTINGS:
//   - Delimiter from config (default comma)
//   - Double-quote escaping, multi-line quoted fields (encoding/csv)
//   - Variable field counts are allowed; short rows simply lack the
//     trailing columns and the converter decides what that means
//   - Cell values are kept verbatim (no trimming)
//
// A UTF-8 byte order mark in front of the first header is dropped.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/parse-d2l/internal/config"
	"github.com/ginjaninja78/parse-d2l/internal/types"
)

const byteOrderMark = "\ufeff"

// =============================================================================
// STREAMING READER
// =============================================================================

// Reader streams rows from a CSV file. It implements types.RowSource.
type Reader struct {
	closer     io.Closer
	reader     *csv.Reader
	header     []string
	currentRow types.Row
	rowNumber  int
	err        error
}

var _ types.RowSource = (*Reader)(nil)

// Open opens a CSV file and reads its header.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV settings from the configuration.
//
// RETURNS:
//   - A Reader positioned before the first data row. The caller must Close it.
//   - An error if the file cannot be opened or the header cannot be read.
func Open(filePath string, settings config.CSVSettings) (*Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := newReader(file, file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

// NewReader wraps an io.Reader. Close is a no-op unless src is an io.Closer.
func NewReader(src io.Reader, settings config.CSVSettings) (*Reader, error) {
	closer, _ := src.(io.Closer)
	return newReader(src, closer, settings)
}

func newReader(src io.Reader, closer io.Closer, settings config.CSVSettings) (*Reader, error) {
	csvReader := csv.NewReader(bufio.NewReader(src))
	configureReader(csvReader, settings)

	r := &Reader{
		closer: closer,
		reader: csvReader,
	}

	if err := r.readHeader(); err != nil {
		return nil, err
	}

	return r, nil
}

// configureReader applies the settings to a csv.Reader.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = ','
	if settings.Delimiter != "" {
		reader.Comma = settings.Comma()
	}

	// Short and long rows are handled per row, not rejected wholesale.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = settings.Lazy()
}

// readHeader reads the header record. An empty file has an empty header.
func (r *Reader) readHeader() error {
	record, err := r.reader.Read()
	if errors.Is(err, io.EOF) {
		r.header = []string{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	header := make([]string, len(record))
	copy(header, record)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], byteOrderMark)
	}

	r.header = header
	return nil
}

// Header returns the column names in file order.
func (r *Reader) Header() []string {
	return r.header
}

// Next advances to the next row. Returns false when there are no more rows.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	record, err := r.reader.Read()
	if errors.Is(err, io.EOF) {
		return false
	}
	if err != nil {
		r.err = fmt.Errorf("error reading row %d: %w", r.rowNumber+1, err)
		return false
	}

	r.rowNumber++
	r.currentRow = types.NewRow(r.header, record)

	return true
}

// Row returns the current row.
func (r *Reader) Row() types.Row {
	return r.currentRow
}

// RowNumber returns the current data row number (1-indexed).
func (r *Reader) RowNumber() int {
	return r.rowNumber
}

// Err returns any error that occurred during reading.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
