// =============================================================================
// parse-d2l - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline for a single export, from the
// input file to the text output.
//
// CONVERSION PIPELINE:
//   1. Open the input (CSV, or XLSX by extension)
//   2. Check the header for the columns the format needs
//   3. Build one output line per data row, in input order
//   4. Join the lines with "\n" and write them to a file or stdout
//
// Nothing is written unless steps 1 to 3 succeed. A conversion runs on a
// single goroutine and holds at most the input file open while reading and
// the output file open while writing.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/parse-d2l/internal/config"
	"github.com/ginjaninja78/parse-d2l/internal/csvparser"
	"github.com/ginjaninja78/parse-d2l/internal/format"
	"github.com/ginjaninja78/parse-d2l/internal/log"
	"github.com/ginjaninja78/parse-d2l/internal/types"
	"github.com/ginjaninja78/parse-d2l/internal/validation"
	"github.com/ginjaninja78/parse-d2l/internal/xlsxparser"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options are the resolved command-line arguments of one conversion.
type Options struct {
	// InputPath is the export to read.
	InputPath string

	// OutputPath is the file to overwrite. Empty means stdout.
	OutputPath string

	// Format is the requested output format.
	Format format.Format
}

// Result represents the outcome of converting a single file.
type Result struct {
	// InputPath is the path to the input file that was processed.
	InputPath string

	// OutputPath is the file written, empty when the output went to stdout.
	OutputPath string

	// Format is the output format used.
	Format format.Format

	// Success indicates whether the conversion completed.
	Success bool

	// Error contains the error if the conversion failed.
	Error error

	// Rows is the number of data rows converted (and lines written).
	Rows int

	// Duration is the time taken by the conversion.
	Duration time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts one export according to its Options.
type Converter struct {
	opts   Options
	cfg    *config.Config
	stdout io.Writer
}

// New creates a Converter. A nil cfg uses the default configuration.
func New(opts Options, cfg *config.Config) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Converter{
		opts:   opts,
		cfg:    cfg,
		stdout: os.Stdout,
	}
}

// SetStdout replaces the writer used when no output path is set.
func (c *Converter) SetStdout(w io.Writer) {
	c.stdout = w
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result describing the outcome. Result.Error is a
//     *validation.MissingColumnsError when the header lacks required columns
//     and a *validation.RowError when a data row is too short.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		InputPath:  c.opts.InputPath,
		OutputPath: c.opts.OutputPath,
		Format:     c.opts.Format,
	}

	log.Debug("Converting %s as %s", c.opts.InputPath, c.opts.Format)

	// =========================================================================
	// STEP 1: OPEN INPUT
	// =========================================================================

	src, err := OpenSource(c.opts.InputPath, c.cfg)
	if err != nil {
		result.Error = err
		return result
	}
	defer src.Close()

	log.DebugH2("Header: %v", src.Header())

	// =========================================================================
	// STEP 2: VALIDATE COLUMNS
	// =========================================================================

	if err := validation.ValidateColumns(src.Header(), c.opts.Format.Fields()); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 3: BUILD LINES
	// =========================================================================

	lines, err := BuildLines(src, c.opts.Format)
	if err != nil {
		result.Error = err
		return result
	}
	result.Rows = len(lines)

	// =========================================================================
	// STEP 4: EMIT
	// =========================================================================

	if err := Emit(lines, c.opts.OutputPath, c.stdout); err != nil {
		result.Error = err
		return result
	}

	result.Success = true
	result.Duration = time.Since(startTime)

	log.Debug("Converted %d row(s) in %s", result.Rows, result.Duration)

	return result
}

// =============================================================================
// PIPELINE STAGES
// =============================================================================

// OpenSource opens an input file as a RowSource. Files ending in .xlsx or
// .xlsm are read as workbooks; everything else is read as CSV.
func OpenSource(path string, cfg *config.Config) (types.RowSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		r, err := xlsxparser.Open(path, cfg.XLSX)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		r, err := csvparser.Open(path, cfg.CSV)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// BuildLines formats every row of src, in order.
//
// RETURNS:
//   - One line per data row.
//   - A *validation.RowError if a row has no cell for a required column, or
//     the read error of src.
func BuildLines(src types.RowSource, f format.Format) ([]string, error) {
	required := f.Fields()
	lines := []string{}

	for src.Next() {
		row := src.Row()
		if err := validation.ValidateRow(row, src.RowNumber(), required); err != nil {
			return nil, err
		}
		lines = append(lines, FormatLine(row, f))
	}

	if err := src.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// FormatLine renders a single row. Values are used verbatim.
//
//	Email:   <Email>
//	Names:   <First Name> <Last Name>
//	Hostbin: <First Name> <Last Name>,<OrgDefinedId>
func FormatLine(row types.Row, f format.Format) string {
	switch f {
	case format.Email:
		return row[format.ColumnEmail]
	case format.Hostbin:
		return row[format.ColumnFirstName] + " " + row[format.ColumnLastName] + "," + row[format.ColumnOrgDefinedID]
	default:
		return row[format.ColumnFirstName] + " " + row[format.ColumnLastName]
	}
}

// Emit joins lines with "\n" and writes them out.
//
// PARAMETERS:
//   - lines: The output lines.
//   - outputPath: The file to create or truncate. The file gets no trailing
//     newline. Empty writes to stdout followed by a single newline.
//   - stdout: The writer used when outputPath is empty.
func Emit(lines []string, outputPath string, stdout io.Writer) error {
	output := strings.Join(lines, "\n")

	if outputPath == "" {
		if _, err := fmt.Fprintln(stdout, output); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
