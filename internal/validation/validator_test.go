package validation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ginjaninja78/parse-d2l/internal/types"
)

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name        string
		header      []string
		required    []string
		wantMissing []string
	}{
		{
			name:     "all present",
			header:   []string{"Email", "First Name", "Last Name"},
			required: []string{"Email"},
		},
		{
			name:     "superset in any order",
			header:   []string{"OrgDefinedId", "Email", "First Name", "Last Name"},
			required: []string{"Last Name", "First Name", "OrgDefinedId"},
		},
		{
			name:        "one missing",
			header:      []string{"First Name", "Last Name"},
			required:    []string{"Last Name", "First Name", "OrgDefinedId"},
			wantMissing: []string{"OrgDefinedId"},
		},
		{
			name:        "missing keeps required order",
			header:      []string{"First Name"},
			required:    []string{"Last Name", "First Name", "OrgDefinedId"},
			wantMissing: []string{"Last Name", "OrgDefinedId"},
		},
		{
			name:        "empty header",
			header:      []string{},
			required:    []string{"Email"},
			wantMissing: []string{"Email"},
		},
		{
			name:        "match is case sensitive",
			header:      []string{"email"},
			required:    []string{"Email"},
			wantMissing: []string{"Email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumns(tt.header, tt.required)

			if tt.wantMissing == nil {
				if err != nil {
					t.Fatalf("ValidateColumns() error = %v, want nil", err)
				}
				return
			}

			var missingErr *MissingColumnsError
			if !errors.As(err, &missingErr) {
				t.Fatalf("ValidateColumns() error = %v, want *MissingColumnsError", err)
			}
			if diff := cmp.Diff(tt.wantMissing, missingErr.Missing); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMissingColumnsErrorMessage(t *testing.T) {
	err := &MissingColumnsError{Missing: []string{"Last Name", "OrgDefinedId"}}
	want := "missing fields in csv: ['Last Name', 'OrgDefinedId']"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidateRow(t *testing.T) {
	required := []string{"Last Name", "First Name", "OrgDefinedId"}

	t.Run("complete row", func(t *testing.T) {
		row := types.Row{"Last Name": "Lee", "First Name": "Ann", "OrgDefinedId": ""}
		if err := ValidateRow(row, 1, required); err != nil {
			t.Errorf("ValidateRow() error = %v, want nil", err)
		}
	})

	t.Run("short row", func(t *testing.T) {
		row := types.Row{"Last Name": "Lee", "First Name": "Ann"}
		err := ValidateRow(row, 7, required)

		var rowErr *RowError
		if !errors.As(err, &rowErr) {
			t.Fatalf("ValidateRow() error = %v, want *RowError", err)
		}
		if rowErr.Row != 7 || rowErr.Column != "OrgDefinedId" {
			t.Errorf("RowError = %+v, want row 7 column OrgDefinedId", rowErr)
		}
		if rowErr.Error() != `row 7 has no value for column "OrgDefinedId"` {
			t.Errorf("Error() = %q", rowErr.Error())
		}
	})
}

func TestFormatColumns(t *testing.T) {
	tests := []struct {
		columns []string
		want    string
	}{
		{columns: nil, want: "[]"},
		{columns: []string{"Email"}, want: "['Email']"},
		{columns: []string{"Last Name", "First Name"}, want: "['Last Name', 'First Name']"},
	}

	for _, tt := range tests {
		if got := FormatColumns(tt.columns); got != tt.want {
			t.Errorf("FormatColumns(%v) = %q, want %q", tt.columns, got, tt.want)
		}
	}
}
