package format

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want Format
	}{
		{name: "email flag", sel: Selection{Email: true}, want: Email},
		{name: "hostbin flag", sel: Selection{Hostbin: true}, want: Hostbin},
		{name: "names flag", sel: Selection{Names: true}, want: Names},
		{name: "format email", sel: Selection{Format: "email"}, want: Email},
		{name: "format hostbin", sel: Selection{Format: "hostbin"}, want: Hostbin},
		{name: "format names", sel: Selection{Format: "names"}, want: Names},
		{name: "nothing selected falls back to names", sel: Selection{}, want: Names},
		{name: "email wins over hostbin", sel: Selection{Email: true, Hostbin: true}, want: Email},
		{name: "email flag wins over format hostbin", sel: Selection{Email: true, Format: "hostbin"}, want: Email},
		{name: "hostbin flag wins over names flag", sel: Selection{Hostbin: true, Names: true}, want: Hostbin},
		{name: "format email wins over hostbin flag", sel: Selection{Hostbin: true, Format: "email"}, want: Email},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.sel); got != tt.want {
				t.Errorf("Resolve(%+v) = %v, want %v", tt.sel, got, tt.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		format Format
		want   []string
	}{
		{format: Email, want: []string{"Email"}},
		{format: Hostbin, want: []string{"Last Name", "First Name", "OrgDefinedId"}},
		{format: Names, want: []string{"Last Name", "First Name"}},
	}

	for _, tt := range tests {
		t.Run(tt.format.Name(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.format.Fields()); diff != "" {
				t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	fields := Hostbin.Fields()
	fields[0] = "changed"

	if Hostbin.Fields()[0] != ColumnLastName {
		t.Error("Fields() should not expose the internal table")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "email", want: Email},
		{input: "hostbin", want: Hostbin},
		{input: "names", want: Names},
		{input: "NAMES", wantErr: true},
		{input: "Email", wantErr: true},
		{input: "csv", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAllNames(t *testing.T) {
	want := []string{"email", "hostbin", "names"}
	if diff := cmp.Diff(want, AllNames()); diff != "" {
		t.Errorf("AllNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestNameUnknown(t *testing.T) {
	if got := Format(42).Name(); got != "format(42)" {
		t.Errorf("Name() = %q, want %q", got, "format(42)")
	}
	if Format(42).Fields() != nil {
		t.Error("Fields() of unknown format should be nil")
	}
}
