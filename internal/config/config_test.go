package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.CSV.Delimiter != "," {
		t.Errorf("CSV.Delimiter = %q, want %q", cfg.CSV.Delimiter, ",")
	}
	if !cfg.CSV.Lazy() {
		t.Error("CSV.Lazy() should default to true")
	}
	if cfg.Batch.OutputNameFormat != "{original}_{format}.txt" {
		t.Errorf("Batch.OutputNameFormat = %q", cfg.Batch.OutputNameFormat)
	}
	if cfg.Batch.MaxConcurrency != 4 {
		t.Errorf("Batch.MaxConcurrency = %d, want 4", cfg.Batch.MaxConcurrency)
	}
	if !cfg.Batch.KeepGoing() {
		t.Error("Batch.KeepGoing() should default to true")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() config should validate, got %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
csv:
  delimiter: ";"
  lazy_quotes: false
xlsx:
  sheet: Classlist
batch:
  input_dir: exports
  output_dir: lists
  archive_on_success: true
  archive_date_subdirs: true
  output_name_format: "{original}-{uuid}.txt"
  max_concurrency: 2
  continue_on_error: false
log_level: debug
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.CSV.Comma() != ';' {
		t.Errorf("CSV.Comma() = %q, want ';'", cfg.CSV.Comma())
	}
	if cfg.CSV.Lazy() {
		t.Error("CSV.Lazy() = true, want false")
	}
	if cfg.XLSX.Sheet != "Classlist" {
		t.Errorf("XLSX.Sheet = %q, want Classlist", cfg.XLSX.Sheet)
	}
	if cfg.Batch.KeepGoing() {
		t.Error("Batch.KeepGoing() = true, want false")
	}

	wantBatch := BatchSettings{
		InputDir:           "exports",
		OutputDir:          "lists",
		InputArchiveDir:    "./input_archive",
		ArchiveOnSuccess:   true,
		ArchiveDateSubdirs: true,
		OutputNameFormat:   "{original}-{uuid}.txt",
		MaxConcurrency:     2,
		ContinueOnError:    cfg.Batch.ContinueOnError,
	}
	if diff := cmp.Diff(wantBatch, cfg.Batch); diff != "" {
		t.Errorf("Batch mismatch (-want +got):\n%s", diff)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "bad yaml", data: "csv: [", wantErr: "failed to parse config file"},
		{name: "long delimiter", data: "csv:\n  delimiter: \"ab\"", wantErr: "single character"},
		{name: "quote delimiter", data: "csv:\n  delimiter: '\"'", wantErr: "cannot be"},
		{name: "negative concurrency", data: "batch:\n  max_concurrency: -1", wantErr: "max_concurrency"},
		{name: "unknown log level", data: "log_level: trace", wantErr: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing default path returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "absent.yaml"), false)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.CSV.Delimiter != "," {
			t.Errorf("CSV.Delimiter = %q, want default", cfg.CSV.Delimiter)
		}
		if cfg.Source != "" {
			t.Errorf("Source = %q, want empty for defaults", cfg.Source)
		}
	})

	t.Run("missing explicit path is an error", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "absent.yaml"), true); err == nil {
			t.Error("Load() expected error for missing explicit config")
		}
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "parse-d2l.yaml")
		if err := os.WriteFile(path, []byte("xlsx:\n  sheet: Grades\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path, true)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.XLSX.Sheet != "Grades" {
			t.Errorf("XLSX.Sheet = %q, want Grades", cfg.XLSX.Sheet)
		}
		if cfg.Source != path {
			t.Errorf("Source = %q, want %q", cfg.Source, path)
		}
	})
}
