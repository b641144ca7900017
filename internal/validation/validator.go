// =============================================================================
// parse-d2l - Validation
// =============================================================================
//
// This module checks that an export carries the columns an output format
// needs. Validation happens at two levels:
//   1. Header-level: every required column is in the header (ValidateColumns)
//   2. Row-level: a data row has a cell for every required column (ValidateRow)
//
// Both failures are fatal. The converter stops before writing anything.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/parse-d2l/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// MissingColumnsError reports required columns absent from the header.
type MissingColumnsError struct {
	// Missing holds the absent column names in required-field order.
	Missing []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing fields in csv: %s", FormatColumns(e.Missing))
}

// RowError reports a data row too short to hold a required column.
type RowError struct {
	// Row is the 1-based data row number (the header is not counted).
	Row int

	// Column is the first required column the row has no cell for.
	Column string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d has no value for column %q", e.Row, e.Column)
}

// =============================================================================
// VALIDATORS
// =============================================================================

// ValidateColumns checks that header contains every required column.
//
// PARAMETERS:
//   - header: The column names from the input.
//   - required: The columns the output format needs, in report order.
//
// RETURNS:
//   - nil if all columns are present.
//   - *MissingColumnsError listing absent columns in the order of required.
func ValidateColumns(header []string, required []string) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

// ValidateRow checks that row has a cell for every required column.
func ValidateRow(row types.Row, rowNumber int, required []string) error {
	for _, name := range required {
		if _, ok := row.Lookup(name); !ok {
			return &RowError{Row: rowNumber, Column: name}
		}
	}
	return nil
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatColumns renders column names as a bracketed, quoted list,
// e.g. ['Last Name', 'OrgDefinedId'].
func FormatColumns(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = "'" + c + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
