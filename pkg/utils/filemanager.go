// =============================================================================
// parse-d2l - File Manager Utility
// =============================================================================
//
// This module provides the file handling used by batch conversion:
//   - Input discovery (classlist exports in the input directory)
//   - Input archival (moving converted exports out of the way)
//   - Output file naming
//   - The end-of-run summary
//
// ARCHIVAL STRATEGY:
//   - Inputs are moved to the input archive after a successful conversion
//   - Failed inputs remain in their original location
//   - A name clash in the archive is overwritten
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InputExtensions are the file extensions picked up by DiscoverInputFiles.
var InputExtensions = []string{".csv", ".xlsx"}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for batch conversion.
type FileManager struct {
	// InputDir is the directory scanned for exports.
	InputDir string

	// OutputDir is the directory where output files are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2024/01/15/classlist.csv
	UseTimestampSubdirs bool

	// ArchiveOnSuccess determines whether inputs are archived after a
	// successful conversion.
	ArchiveOnSuccess bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory, and the archive directory
// when archiving is enabled.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.OutputDir}
	if fm.ArchiveOnSuccess {
		dirs = append(dirs, fm.InputArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the files directly inside the input directory
// whose extension is one of InputExtensions, compared case-insensitively.
//
// RETURNS:
//   - The matching paths, sorted.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var result []string
	for _, entry := range entries {
		if entry.IsDir() || !hasInputExtension(entry.Name()) {
			continue
		}
		result = append(result, filepath.Join(fm.InputDir, entry.Name()))
	}

	sort.Strings(result)
	return result, nil
}

func hasInputExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range InputExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory.
//
// RETURNS:
//   - The path to the archived file, or filePath unchanged when archiving
//     is disabled.
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.getArchivePath(filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Cross-device moves fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		return filepath.Join(
			fm.InputArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(fm.InputArchiveDir, fileName)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// OutputPath returns the output path for an input, named by nameFormat.
func (fm *FileManager) OutputPath(inputPath, nameFormat, formatName string) string {
	original := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := GenerateOutputFileName(nameFormat, map[string]string{
		"original": original,
		"format":   formatName,
	})
	return filepath.Join(fm.OutputDir, name)
}

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     {original}  - Original file name (without extension)
//     {format}    - Output format name
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name, with a .txt extension added if missing.
//
// EXAMPLE:
//
//	format: "{original}_{format}_{date}"
//	params: {"original": "classlist", "format": "hostbin"}
//	output: "classlist_hostbin_20240115.txt"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	type replacement struct {
		placeholder string
		value       string
	}

	// Built-in placeholders first, then params in key order, {original}
	// last so text inside the input name is never expanded.
	replacements := []replacement{
		{"{timestamp}", now.Format("20060102_150405")},
		{"{date}", now.Format("20060102")},
		{"{time}", now.Format("150405")},
	}
	if strings.Contains(format, "{uuid}") {
		replacements = append(replacements, replacement{"{uuid}", uuid.New().String()})
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		if key != "original" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		replacements = append(replacements, replacement{"{" + key + "}", params[key]})
	}
	if original, ok := params["original"]; ok {
		replacements = append(replacements, replacement{"{original}", original})
	}

	result := format
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.placeholder, r.value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".txt") {
		result += ".txt"
	}

	return result
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a batch run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	SkippedFiles    int
	TotalRows       int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo contains information about a converted file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	ArchivePath string
	Rows        int
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummary writes a human-readable summary of a batch run to w.
func WriteSummary(w io.Writer, summary ProcessingSummary) error {
	var b strings.Builder

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(&b, "Statistics:\n"+
		"  Total Files:  %d\n"+
		"  Successful:   %d\n"+
		"  Failed:       %d\n",
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.FailedFiles)
	if summary.SkippedFiles > 0 {
		fmt.Fprintf(&b, "  Skipped:      %d\n", summary.SkippedFiles)
	}
	fmt.Fprintf(&b, "  Total Rows:   %d\n"+
		"  Duration:     %s\n",
		summary.TotalRows,
		duration.String())

	if len(summary.ProcessedFiles) > 0 {
		b.WriteString("\nSuccessful Files:\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(&b, "  %s -> %s (%d rows)\n", pf.InputFile, pf.OutputFile, pf.Rows)
			if pf.ArchivePath != "" {
				fmt.Fprintf(&b, "    archived to %s\n", pf.ArchivePath)
			}
		}
	}

	if len(summary.FailedFilesList) > 0 {
		b.WriteString("\nFailed Files:\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(&b, "  %s: %s\n", ff.InputFile, ff.ErrorMessage)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
