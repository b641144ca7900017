// =============================================================================
// parse-d2l - Configuration Module
// =============================================================================
//
// This module loads the optional parse-d2l.yaml configuration file. The file
// controls how inputs are read and how the batch command lays out its files.
// Every setting has a default, so the tool runs without any config file.
//
// EXAMPLE:
//   csv:
//     delimiter: ","
//     lazy_quotes: true
//   xlsx:
//     sheet: "Classlist"
//   batch:
//     input_dir: ./input
//     output_dir: ./output
//     output_name_format: "{original}_{format}.txt"
//   log_level: debug
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "parse-d2l.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// CSV contains settings for reading CSV inputs.
	CSV CSVSettings `yaml:"csv"`

	// XLSX contains settings for reading spreadsheet inputs.
	XLSX XLSXSettings `yaml:"xlsx"`

	// Batch contains settings for the batch command.
	Batch BatchSettings `yaml:"batch"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Source is the file the configuration was read from, empty when the
	// defaults were used.
	Source string `yaml:"-"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the single character separating fields.
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// LazyQuotes allows a quote to appear in an unquoted field and a
	// non-doubled quote to appear in a quoted field.
	// Default: true
	LazyQuotes *bool `yaml:"lazy_quotes"`
}

// XLSXSettings contains settings for reading .xlsx inputs.
type XLSXSettings struct {
	// Sheet is the worksheet holding the classlist.
	// Default: "" (the first sheet of the workbook)
	Sheet string `yaml:"sheet"`
}

// BatchSettings contains settings for converting a directory of exports.
type BatchSettings struct {
	// InputDir is scanned for *.csv and *.xlsx files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives one output file per input.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives inputs after a successful conversion when
	// ArchiveOnSuccess is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveOnSuccess moves converted inputs to InputArchiveDir.
	// Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success"`

	// ArchiveDateSubdirs files archived inputs under YYYY/MM/DD
	// subdirectories of InputArchiveDir.
	// Default: false
	ArchiveDateSubdirs bool `yaml:"archive_date_subdirs"`

	// OutputNameFormat names each output file.
	// Placeholders:
	//   {original}  - input file name without extension
	//   {format}    - output format name
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - current date (YYYYMMDD)
	// Default: "{original}_{format}.txt"
	OutputNameFormat string `yaml:"output_name_format"`

	// MaxConcurrency is the maximum number of files converted at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps converting other files after one fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from path.
//
// PARAMETERS:
//   - path: The config file path. Empty means DefaultPath.
//   - explicit: Whether the user named the path. A missing file is an error
//     only when the path was explicit; otherwise defaults are returned.
//
// RETURNS:
//   - The loaded configuration with defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string, explicit bool) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ","
	}
	if cfg.CSV.LazyQuotes == nil {
		cfg.CSV.LazyQuotes = boolPtr(true)
	}

	if cfg.Batch.InputDir == "" {
		cfg.Batch.InputDir = "./input"
	}
	if cfg.Batch.OutputDir == "" {
		cfg.Batch.OutputDir = "./output"
	}
	if cfg.Batch.InputArchiveDir == "" {
		cfg.Batch.InputArchiveDir = "./input_archive"
	}
	if cfg.Batch.OutputNameFormat == "" {
		cfg.Batch.OutputNameFormat = "{original}_{format}.txt"
	}
	if cfg.Batch.MaxConcurrency == 0 {
		cfg.Batch.MaxConcurrency = 4
	}
	if cfg.Batch.ContinueOnError == nil {
		cfg.Batch.ContinueOnError = boolPtr(true)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks settings that have no sensible fallback.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter); r == '"' || r == '\r' || r == '\n' {
		return fmt.Errorf("csv.delimiter cannot be %q", c.CSV.Delimiter)
	}
	if c.Batch.MaxConcurrency < 0 {
		return fmt.Errorf("batch.max_concurrency must be positive, got %d", c.Batch.MaxConcurrency)
	}
	switch c.LogLevel {
	case "debug", "info":
	default:
		return fmt.Errorf("log_level must be \"debug\" or \"info\", got %q", c.LogLevel)
	}
	return nil
}

// Comma returns the delimiter as a rune for csv.Reader.
func (s CSVSettings) Comma() rune {
	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	return r
}

// Lazy reports whether lazy quoting is enabled.
func (s CSVSettings) Lazy() bool {
	return s.LazyQuotes == nil || *s.LazyQuotes
}

// KeepGoing reports whether batch conversion continues after a failure.
func (b BatchSettings) KeepGoing() bool {
	return b.ContinueOnError == nil || *b.ContinueOnError
}

func boolPtr(v bool) *bool {
	return &v
}
