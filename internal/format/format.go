// =============================================================================
// parse-d2l - Output Formats
// =============================================================================
//
// This package defines the three output formats and the columns each one
// needs from the classlist export.
//
//   | Format  | Name      | Required columns                         | Line                          |
//   |---------|-----------|------------------------------------------|-------------------------------|
//   | Email   | "email"   | Email                                    | <Email>                       |
//   | Hostbin | "hostbin" | Last Name, First Name, OrgDefinedId      | <First> <Last>,<OrgDefinedId> |
//   | Names   | "names"   | Last Name, First Name                    | <First> <Last>                |
//
// =============================================================================

package format

import (
	"fmt"
	"strings"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Column headers as they appear in a D2L classlist export.
const (
	ColumnEmail        = "Email"
	ColumnFirstName    = "First Name"
	ColumnLastName     = "Last Name"
	ColumnOrgDefinedID = "OrgDefinedId"
)

// =============================================================================
// FORMAT ENUM
// =============================================================================

// Format is one of the supported output formats.
type Format int

const (
	Email Format = iota
	Hostbin
	Names
)

type formatInfo struct {
	name   string
	fields []string
}

// table holds the name and required columns of each format.
// Field order is the order missing columns are reported in.
var table = map[Format]formatInfo{
	Email: {
		name:   "email",
		fields: []string{ColumnEmail},
	},
	Hostbin: {
		name:   "hostbin",
		fields: []string{ColumnLastName, ColumnFirstName, ColumnOrgDefinedID},
	},
	Names: {
		name:   "names",
		fields: []string{ColumnLastName, ColumnFirstName},
	},
}

// All lists the formats in declaration order.
func All() []Format {
	return []Format{Email, Hostbin, Names}
}

// AllNames lists the CLI names of every format, e.g. for flag completion.
func AllNames() []string {
	names := make([]string, 0, len(table))
	for _, f := range All() {
		names = append(names, f.Name())
	}
	return names
}

// Name returns the stable name used as the --format choice.
func (f Format) Name() string {
	if info, ok := table[f]; ok {
		return info.name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return f.Name()
}

// Fields returns a copy of the required column names, in order.
func (f Format) Fields() []string {
	info, ok := table[f]
	if !ok {
		return nil
	}
	fields := make([]string, len(info.fields))
	copy(fields, info.fields)
	return fields
}

// Parse looks a format up by its exact CLI name.
func Parse(name string) (Format, error) {
	for _, f := range All() {
		if name == f.Name() {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q (must be one of: %s)", name, strings.Join(AllNames(), ", "))
}

// =============================================================================
// FORMAT RESOLUTION
// =============================================================================

// Selection is the raw state of the format-selecting CLI flags.
type Selection struct {
	Email   bool
	Hostbin bool
	Names   bool

	// Format is the value of --format, empty when not given.
	Format string
}

// Resolve picks the output format from the flag selection.
//
// PRECEDENCE:
//  1. --email or --format email     -> Email
//  2. --hostbin or --format hostbin -> Hostbin
//  3. anything else                 -> Names
//
// The CLI makes the flags mutually exclusive and requires one of them, so in
// practice exactly one path is taken. Names is also the fallback when nothing
// is selected.
func Resolve(sel Selection) Format {
	switch {
	case sel.Email || sel.Format == Email.Name():
		return Email
	case sel.Hostbin || sel.Format == Hostbin.Name():
		return Hostbin
	default:
		return Names
	}
}
