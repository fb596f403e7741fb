// =============================================================================
// JSON to CSV Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It runs the pipeline for a
// single input file, from JSON loading to CSV output.
//
// CONVERSION PIPELINE:
//   1. Load and decode the JSON file
//   2. Normalize date fields (bad dates are warnings, not failures)
//   3. Validate that the document is a list of objects
//   4. Write a zero-byte file for an empty list
//   5. Derive the header from the first record
//   6. Write the output file
//   7. Report success
//
// Steps 1 and 3 abort before the output path is touched.
//
// =============================================================================

package converter

import (
	"time"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/csvwriter"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/jsonparser"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/logger"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/validation"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/xlsxwriter"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the path to the input file.
	FilePath string

	// OutputFile is the path that was written. Empty if the run aborted.
	OutputFile string

	// Success indicates whether the conversion completed.
	// A run with warnings is still successful.
	Success bool

	// Error is the abort reason, always a *types.ConversionError.
	Error error

	// Warnings holds the non-fatal diagnostics in the order they occurred.
	Warnings []types.Warning

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about one conversion.
type ProcessingStats struct {
	// Records is the number of rows written (excluding the header).
	Records int

	// Columns is the number of header columns.
	Columns int

	// DatesConverted is the number of date values rewritten.
	DatesConverted int

	// DateWarnings is the number of date values left unchanged.
	DateWarnings int

	// ProcessingTime is the time taken to convert the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts one JSON file into one CSV (or XLSX) file.
type Converter struct {
	inputPath  string
	outputPath string
	dates      *DateNormalizer
	logger     logger.Logger
	dryRun     bool
}

// Option customizes a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(c *Converter) {
		c.logger = log
	}
}

// WithDateFields overrides the date field names.
func WithDateFields(fields []string) Option {
	return func(c *Converter) {
		c.dates = NewDateNormalizer(fields)
	}
}

// WithDryRun runs every step except writing the output file.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) {
		c.dryRun = dryRun
	}
}

// New creates a new Converter instance.
func New(inputPath, outputPath string, opts ...Option) *Converter {
	c := &Converter{
		inputPath:  inputPath,
		outputPath: outputPath,
		dates:      NewDateNormalizer(nil),
		logger:     logger.NewLogger(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs the pipeline and returns the abort error, if any.
// All diagnostics go to the converter's logger.
func Convert(inputPath, outputPath string, opts ...Option) error {
	return New(inputPath, outputPath, opts...).Run().Error
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{FilePath: c.inputPath}
	log := c.logger

	fail := func(err error) Result {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		log.Error(err.Error(), "kind", types.KindOf(err), "input", c.inputPath)
		return result
	}

	// =========================================================================
	// STEP 1: LOAD
	// =========================================================================

	log.Debug("Loading JSON", "input", c.inputPath)

	root, err := jsonparser.Load(c.inputPath)
	if err != nil {
		return fail(err)
	}

	doc := jsonparser.Records(root)

	// =========================================================================
	// STEP 2: DATE NORMALIZATION
	// =========================================================================

	converted, warnings := c.dates.NormalizeDocument(doc)
	for _, w := range warnings {
		log.Warn(w.String(), "record", w.Record, "field", w.Field, "value", w.Value)
	}
	result.Warnings = append(result.Warnings, warnings...)
	result.Stats.DatesConverted = converted
	result.Stats.DateWarnings = len(warnings)

	log.Debug("Normalized dates", "fields", c.dates.Fields(), "converted", converted, "warnings", len(warnings))

	// =========================================================================
	// STEP 3: SHAPE VALIDATION
	// =========================================================================

	if err := validation.ValidateShape(c.inputPath, root); err != nil {
		return fail(err)
	}

	// =========================================================================
	// STEP 4: EMPTY DOCUMENT
	// =========================================================================

	if doc.IsEmpty() {
		warning := types.Warning{Kind: types.WarningEmptyDocument, Record: -1}
		log.Warn(warning.String(), "input", c.inputPath, "output", c.outputPath)
		result.Warnings = append(result.Warnings, warning)

		if c.dryRun {
			log.Info("Dry run, output not written", "output", c.outputPath)
		} else {
			if err := c.writeEmpty(); err != nil {
				return fail(types.NewError(types.KindUnexpected, c.outputPath, err))
			}
			result.OutputFile = c.outputPath
		}

		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 5-6: HEADER AND WRITE
	// =========================================================================

	result.Stats.Columns = len(doc.Headers())
	log.Debug("Writing output", "output", c.outputPath, "columns", doc.Headers())

	if c.dryRun {
		log.Info("Dry run, output not written", "output", c.outputPath, "records", doc.Len())
		result.Stats.Records = doc.Len()
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	if err := c.write(doc); err != nil {
		return fail(types.NewError(types.KindUnexpected, c.outputPath, err))
	}

	// =========================================================================
	// STEP 7: COMPLETE
	// =========================================================================

	result.OutputFile = c.outputPath
	result.Success = true
	result.Stats.Records = doc.Len()
	result.Stats.ProcessingTime = time.Since(startTime)

	log.Info("Successfully converted",
		"input", c.inputPath,
		"output", c.outputPath,
		"records", result.Stats.Records,
	)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// write picks the output encoding from the output path extension.
func (c *Converter) write(doc *types.Document) error {
	if xlsxwriter.IsXLSXPath(c.outputPath) {
		return xlsxwriter.WriteFile(c.outputPath, doc)
	}
	return csvwriter.WriteFile(c.outputPath, doc)
}

func (c *Converter) writeEmpty() error {
	if xlsxwriter.IsXLSXPath(c.outputPath) {
		return xlsxwriter.WriteFile(c.outputPath, &types.Document{})
	}
	return csvwriter.WriteEmpty(c.outputPath)
}
