// =============================================================================
// parse-d2l - Batch Command
// =============================================================================
//
// This file defines the 'batch' command, which converts every classlist
// export in the input directory with one output format.
//
// COMMAND USAGE:
//   parse-d2l batch (-e | -n | -b | --format <format>) [flags]
//
// FLAGS:
//   --input-dir   : Directory scanned for *.csv and *.xlsx (batch.input_dir)
//   --output-dir  : Directory receiving the outputs (batch.output_dir)
//   --archive     : Move converted inputs to batch.input_archive_dir
//                   (under YYYY/MM/DD when batch.archive_date_subdirs is set)
//
// PROCESSING PIPELINE:
//   1. Discover exports in the input directory
//   2. Convert up to batch.max_concurrency files at once
//   3. Archive converted inputs (when enabled)
//   4. Print a summary to stderr
//
// Each file is converted independently. A failed file keeps its input in
// place and makes the command exit with status 1.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/parse-d2l/internal/config"
	"github.com/ginjaninja78/parse-d2l/internal/converter"
	"github.com/ginjaninja78/parse-d2l/internal/format"
	"github.com/ginjaninja78/parse-d2l/internal/log"
	"github.com/ginjaninja78/parse-d2l/pkg/utils"
)

// =============================================================================
// BATCH COMMAND DEFINITION
// =============================================================================

func newBatchCmd(g *globals) *cobra.Command {
	var (
		inputDir  string
		outputDir string
		archive   bool
		ff        formatFlags
	)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert every export in the input directory",
		Long: `The batch command scans the input directory for *.csv and *.xlsx classlist
exports and converts each of them with the selected format into the output
directory. Output files are named by batch.output_name_format.

On success the input is moved to the input archive when archiving is
enabled. On error the input stays in place, conversion of the other files
continues (unless batch.continue_on_error is false) and the command exits
with status 1.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			batch := g.cfg.Batch
			if cmd.Flags().Changed("input-dir") {
				batch.InputDir = inputDir
			}
			if cmd.Flags().Changed("output-dir") {
				batch.OutputDir = outputDir
			}
			if cmd.Flags().Changed("archive") {
				batch.ArchiveOnSuccess = archive
			}

			cfg := *g.cfg
			cfg.Batch = batch

			summary, err := runBatch(&cfg, ff.resolve())
			if err != nil {
				return err
			}

			if err := utils.WriteSummary(cmd.ErrOrStderr(), summary); err != nil {
				return err
			}

			if summary.FailedFiles > 0 || summary.SkippedFiles > 0 {
				return fmt.Errorf("%d of %d file(s) were not converted",
					summary.FailedFiles+summary.SkippedFiles, summary.TotalFiles)
			}
			return nil
		},
	}

	batchCmd.Flags().StringVar(&inputDir, "input-dir", "", "directory scanned for exports (overrides batch.input_dir)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory receiving outputs (overrides batch.output_dir)")
	batchCmd.Flags().BoolVar(&archive, "archive", false, "move converted inputs to batch.input_archive_dir")
	ff.register(batchCmd)

	return batchCmd
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runBatch converts every discovered export and collects a summary. The
// returned error is only set when the run could not start.
func runBatch(cfg *config.Config, f format.Format) (utils.ProcessingSummary, error) {
	summary := utils.ProcessingSummary{StartTime: time.Now()}

	fm := utils.NewFileManager(cfg.Batch.InputDir, cfg.Batch.OutputDir, cfg.Batch.InputArchiveDir)
	fm.ArchiveOnSuccess = cfg.Batch.ArchiveOnSuccess
	fm.UseTimestampSubdirs = cfg.Batch.ArchiveDateSubdirs

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	inputFiles, err := fm.DiscoverInputFiles()
	if err != nil {
		return summary, err
	}
	summary.TotalFiles = len(inputFiles)

	if len(inputFiles) == 0 {
		log.Warn("No .csv or .xlsx files found in %s", fm.InputDir)
		summary.EndTime = time.Now()
		return summary, nil
	}

	if err := fm.EnsureDirectories(); err != nil {
		return summary, err
	}

	log.Info("Converting %d file(s) from %s as %s", len(inputFiles), fm.InputDir, f)

	// =========================================================================
	// STEP 2: CONVERT FILES CONCURRENTLY
	// =========================================================================
	// A semaphore bounds the number of conversions in flight.

	var (
		wg      sync.WaitGroup
		failed  atomic.Bool
		results = make(chan converter.Result, len(inputFiles))
		sem     = make(chan struct{}, cfg.Batch.MaxConcurrency)
		claimed = make(map[string]string, len(inputFiles))
	)

	launched := 0
	for _, inputPath := range inputFiles {
		sem <- struct{}{}
		if failed.Load() && !cfg.Batch.KeepGoing() {
			<-sem
			break
		}
		launched++

		outputPath := fm.OutputPath(inputPath, cfg.Batch.OutputNameFormat, f.Name())
		if other, ok := claimed[outputPath]; ok {
			<-sem
			failed.Store(true)
			results <- converter.Result{
				InputPath: inputPath,
				Format:    f,
				Error:     fmt.Errorf("output %s is already written by %s", outputPath, filepath.Base(other)),
			}
			continue
		}
		claimed[outputPath] = inputPath

		wg.Add(1)
		go func(inputPath, outputPath string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := converter.New(converter.Options{
				InputPath:  inputPath,
				OutputPath: outputPath,
				Format:     f,
			}, cfg).Run()
			if !result.Success {
				failed.Store(true)
			}
			results <- result
		}(inputPath, outputPath)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 3: COLLECT RESULTS AND ARCHIVE
	// =========================================================================

	for result := range results {
		name := filepath.Base(result.InputPath)
		if !result.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    name,
				ErrorMessage: result.Error.Error(),
			})
			log.ErrorH2("%s: %v", name, result.Error)
			continue
		}

		var archivePath string
		if fm.ArchiveOnSuccess {
			archivePath, err = fm.ArchiveInputFile(result.InputPath)
			if err != nil {
				log.Warn("Converted %s but could not archive it: %v", name, err)
				archivePath = ""
			}
		}

		summary.SuccessfulFiles++
		summary.TotalRows += result.Rows
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   name,
			OutputFile:  result.OutputPath,
			ArchivePath: archivePath,
			Rows:        result.Rows,
			ProcessTime: result.Duration,
		})
		log.InfoH2("%s -> %s", name, result.OutputPath)
	}

	summary.SkippedFiles = len(inputFiles) - launched
	summary.EndTime = time.Now()

	sort.Slice(summary.ProcessedFiles, func(i, j int) bool {
		return summary.ProcessedFiles[i].InputFile < summary.ProcessedFiles[j].InputFile
	})
	sort.Slice(summary.FailedFilesList, func(i, j int) bool {
		return summary.FailedFilesList[i].InputFile < summary.FailedFilesList[j].InputFile
	})

	return summary, nil
}
