// =============================================================================
// JSON to CSV Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts every JSON file in
// the configured input directory.
//
// COMMAND USAGE:
//   jsontocsv process [flags]
//
// FLAGS:
//   --dry-run     : Run every step except writing output files
//   --pattern     : Glob for input files (default "*.json")
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover JSON files in the input directory
//   3. Convert each file (concurrently, up to max_concurrency)
//   4. Archive converted inputs (when archive_on_success is set)
//   5. Write a summary file and report totals
//
// Each file follows the same rules as the root command. A failure in one
// file does not stop the others.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/converter"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/logger"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/pkg/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// processOptions holds the flags of the process command.
type processOptions struct {
	dryRun  bool
	pattern string
}

// newProcessCmd builds the 'process' command.
func newProcessCmd(global *globalOptions) *cobra.Command {
	opts := &processOptions{}

	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Convert every JSON file in the input directory",
		Long: `The process command scans the input directory for JSON files and converts
each one into the output directory, using the same rules as the root command.

On successful conversion:
  - The CSV (or XLSX) is placed in the output directory
  - The JSON is moved to the input archive, if archive_on_success is set

On error:
  - The JSON remains in the input directory
  - Processing continues for other files

A summary file is written to the output directory at the end of the run.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runProcess(cfg, newLogger(cmd, cfg), opts)
		},
	}

	processCmd.Flags().BoolVar(
		&opts.dryRun,
		"dry-run",
		false,
		"Run every step except writing output files",
	)
	processCmd.Flags().StringVar(
		&opts.pattern,
		"pattern",
		"*.json",
		"Glob pattern for input files inside input_dir",
	)

	return processCmd
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess converts every matching file and reports totals.
func runProcess(cfg *config.MainConfig, log logger.Logger, opts *processOptions) error {
	summary := utils.ProcessingSummary{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	log = log.With("run", summary.RunID)

	// =========================================================================
	// STEP 1: PREPARE DIRECTORIES
	// =========================================================================

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.ArchiveOnSuccess && !opts.dryRun)
	fm.UseTimestampSubdirs = cfg.ArchiveTimestampSubdirs

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	inputFiles, err := fm.DiscoverInputFiles(opts.pattern)
	if err != nil {
		return err
	}

	if len(inputFiles) == 0 {
		log.Info("No JSON files found in the input directory", "input_dir", cfg.InputDir, "pattern", opts.pattern)
		return nil
	}

	log.Info("Found files to process", "count", len(inputFiles))

	// =========================================================================
	// STEP 3: CONVERT FILES CONCURRENTLY
	// =========================================================================

	results := make([]converter.Result, len(inputFiles))

	var g errgroup.Group
	g.SetLimit(cfg.MaxConcurrency)

	for i, file := range inputFiles {
		i, file := i, file
		g.Go(func() error {
			name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			outputPath := filepath.Join(fm.OutputDir, utils.GenerateOutputFileName(cfg.OutputNameFormat, map[string]string{
				"name": name,
			}))

			results[i] = converter.New(file, outputPath,
				converter.WithLogger(log.With("file", filepath.Base(file))),
				converter.WithDateFields(cfg.DateFields),
				converter.WithDryRun(opts.dryRun),
			).Run()
			return nil
		})
	}

	// Workers never return errors; failures live in results.
	_ = g.Wait()

	// =========================================================================
	// STEP 4: ARCHIVE AND COLLECT RESULTS
	// =========================================================================

	summary.TotalFiles = len(inputFiles)

	for _, result := range results {
		if !result.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: result.Error.Error(),
				ErrorType:    string(types.KindOf(result.Error)),
			})
			continue
		}

		archivePath, err := fm.ArchiveInputFile(result.FilePath)
		if err != nil {
			log.Warn("Failed to archive input file", "file", result.FilePath, "error", err)
			archivePath = result.FilePath
		}

		summary.SuccessfulFiles++
		summary.TotalRecords += result.Stats.Records
		summary.DateWarnings += result.Stats.DateWarnings
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   result.FilePath,
			OutputFile:  result.OutputFile,
			ArchivePath: archivePath,
			Records:     result.Stats.Records,
			Warnings:    len(result.Warnings),
			ProcessTime: result.Stats.ProcessingTime,
		})
	}

	// =========================================================================
	// STEP 5: SUMMARY
	// =========================================================================

	summary.EndTime = time.Now()

	log.Info("Processing complete",
		"total", summary.TotalFiles,
		"successful", summary.SuccessfulFiles,
		"failed", summary.FailedFiles,
		"records", summary.TotalRecords,
		"elapsed", summary.EndTime.Sub(summary.StartTime),
	)

	if !opts.dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, fm.OutputDir)
		if err != nil {
			log.Warn("Failed to write summary file", "error", err)
		} else {
			log.Info("Summary written", "path", summaryPath)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d files failed to convert", summary.FailedFiles, summary.TotalFiles)
	}

	return nil
}
