// =============================================================================
// JSON to CSV Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter, including:
//   - File discovery for batch processing
//   - File archival (moving converted inputs)
//   - Atomic output writes
//   - Output file naming
//   - Processing summary generation
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the input archive after a successful conversion
//   - Failed files remain in their original location
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for batch conversion.
type FileManager struct {
	// InputDir is the directory where input files are placed.
	InputDir string

	// OutputDir is the directory where output files are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2024/01/15/file.json
	UseTimestampSubdirs bool

	// ArchiveOnSuccess determines whether to archive files after successful processing.
	ArchiveOnSuccess bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string, archiveOnSuccess bool) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		ArchiveOnSuccess: archiveOnSuccess,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for files matching the pattern.
//
// PARAMETERS:
//   - pattern: A glob pattern to match files (e.g., "*.json").
//     If empty, defaults to "*.json".
//
// RETURNS:
//   - A sorted slice of file paths. Directories are skipped.
//   - An error if the pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.json"
	}

	files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var result []string
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory.
//
// RETURNS:
//   - The path to the archived file (the original path when archiving is off).
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.getArchivePath(fm.InputArchiveDir, filePath)

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
func (fm *FileManager) getArchivePath(archiveDir, filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		return filepath.Join(
			archiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(archiveDir, fileName)
}

// =============================================================================
// OUTPUT FILES
// =============================================================================

// GenerateOutputFileName expands an output name format.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     plus one {key} per entry in params
//   - params: A map of placeholder values, e.g. {"name": "gujarati_months"}.
//
// A result without a .csv or .xlsx extension gets ".csv" appended.
//
// EXAMPLE:
//
//	format: "{name}_{date}.csv"
//	params: {"name": "events"}
//	output: "events_20240115.csv"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	switch strings.ToLower(filepath.Ext(result)) {
	case ".csv", ".xlsx":
	default:
		result += ".csv"
	}

	return result
}

// DefaultOutputPath derives "<dir>/<input base name without extension>.csv".
// Leading dots do not start an extension, so ".hidden" becomes ".hidden.csv".
func DefaultOutputPath(dir, inputPath string) string {
	base := filepath.Base(inputPath)
	name := base
	if ext := filepath.Ext(base); strings.Contains(strings.TrimLeft(base, "."), ".") {
		name = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(dir, name+".csv")
}

// WriteFileAtomic writes path through a temporary file in the same directory
// and renames it into place once write has succeeded. On any failure the
// temporary file is removed and path is left as it was.
//
// TARGET HANDLING:
//   - A symlink is followed and the file it points to is replaced
//   - An existing regular file keeps its permission bits
//   - A device, FIFO or other non-regular file is opened and written in place
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	target, err := resolveTarget(path)
	if err != nil {
		return fmt.Errorf("failed to resolve output file: %w", err)
	}

	mode := os.FileMode(0644)
	if info, statErr := os.Stat(target); statErr == nil {
		if !info.Mode().IsRegular() {
			return writeInPlace(target, write)
		}
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(target)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(target), uuid.New().String()))

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	buffered := bufio.NewWriter(file)
	if err = write(buffered); err != nil {
		return err
	}
	if err = buffered.Flush(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	if err = file.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err = os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}

// resolveTarget follows symlinks in path. A path that does not exist yet
// resolves to itself; a dangling symlink resolves to where it points.
func resolveTarget(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	link, linkErr := os.Readlink(path)
	if linkErr != nil {
		// Not a symlink, the file simply does not exist yet.
		return path, nil
	}
	if !filepath.IsAbs(link) {
		link = filepath.Join(filepath.Dir(path), link)
	}
	return link, nil
}

// writeInPlace writes straight into a non-regular file such as /dev/stdout.
func writeInPlace(path string, write func(w io.Writer) error) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}

	buffered := bufio.NewWriter(file)
	if err := write(buffered); err != nil {
		file.Close()
		return err
	}
	if err := buffered.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	RunID           string
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalRecords    int
	DateWarnings    int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo contains information about a successfully processed file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	ArchivePath string
	Records     int
	Warnings    int
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
	ErrorType    string
}

// WriteSummaryLog writes a processing summary to a text file in outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	summaryFileName := fmt.Sprintf("processing_summary_%s.txt", summary.StartTime.Format("20060102_150405"))
	summaryPath := filepath.Join(outputDir, summaryFileName)

	err := WriteFileAtomic(summaryPath, func(w io.Writer) error {
		duration := summary.EndTime.Sub(summary.StartTime)
		fmt.Fprintf(w, "JSON to CSV Converter - Processing Summary\n"+
			"================================================================================\n\n"+
			"Run Information:\n"+
			"  Run ID:         %s\n"+
			"  Start Time:     %s\n"+
			"  End Time:       %s\n"+
			"  Duration:       %s\n\n"+
			"Statistics:\n"+
			"  Total Files:    %d\n"+
			"  Successful:     %d\n"+
			"  Failed:         %d\n"+
			"  Total Records:  %d\n"+
			"  Date Warnings:  %d\n\n",
			summary.RunID,
			summary.StartTime.Format("2006-01-02 15:04:05"),
			summary.EndTime.Format("2006-01-02 15:04:05"),
			duration.String(),
			summary.TotalFiles,
			summary.SuccessfulFiles,
			summary.FailedFiles,
			summary.TotalRecords,
			summary.DateWarnings)

		if len(summary.ProcessedFiles) > 0 {
			fmt.Fprint(w, "Successful Files:\n")
			fmt.Fprint(w, "--------------------------------------------------------------------------------\n")
			for _, pf := range summary.ProcessedFiles {
				fmt.Fprintf(w, "  Input:        %s\n", pf.InputFile)
				fmt.Fprintf(w, "  Output:       %s\n", pf.OutputFile)
				if pf.ArchivePath != "" && pf.ArchivePath != pf.InputFile {
					fmt.Fprintf(w, "  Archived To:  %s\n", pf.ArchivePath)
				}
				fmt.Fprintf(w, "  Records:      %d\n", pf.Records)
				fmt.Fprintf(w, "  Warnings:     %d\n", pf.Warnings)
				fmt.Fprintf(w, "  Process Time: %s\n\n", pf.ProcessTime.String())
			}
		}

		if len(summary.FailedFilesList) > 0 {
			fmt.Fprint(w, "Failed Files:\n")
			fmt.Fprint(w, "--------------------------------------------------------------------------------\n")
			for _, ff := range summary.FailedFilesList {
				fmt.Fprintf(w, "  File:  %s\n", ff.InputFile)
				fmt.Fprintf(w, "  Type:  %s\n", ff.ErrorType)
				fmt.Fprintf(w, "  Error: %s\n\n", ff.ErrorMessage)
			}
		}

		_, err := fmt.Fprint(w, "================================================================================\n"+
			"End of Summary\n")
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}

	return summaryPath, nil
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
