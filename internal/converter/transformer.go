// =============================================================================
// JSON to CSV Converter - Date Normalization
// =============================================================================
//
// This module rewrites the date fields of each record from the numeric
// day-month-year form produced by the upstream scrapers into the form the
// spreadsheet consumers expect.
//
// FORMATS:
//   - Source: "05-03-2024" (DD-MM-YYYY, numeric)
//   - Target: "05-mar-2024" (DD-mon-YYYY, lowercase English month)
//
// A value that does not match the source format is left unchanged and
// reported as a warning. The run continues.
//
// =============================================================================

package converter

import (
	"strings"
	"time"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
)

const (
	// SourceDateLayout accepts one- or two-digit day and month and a
	// four-digit year.
	SourceDateLayout = "2-1-2006"

	// TargetDateLayout is lowercased after formatting.
	TargetDateLayout = "02-Jan-2006"
)

// =============================================================================
// DATE NORMALIZER
// =============================================================================

// DateNormalizer rewrites date fields in place.
type DateNormalizer struct {
	fields []string
}

// NewDateNormalizer creates a DateNormalizer for the given field names.
// An empty list falls back to config.DefaultDateFields.
func NewDateNormalizer(fields []string) *DateNormalizer {
	if len(fields) == 0 {
		fields = config.DefaultDateFields
	}
	return &DateNormalizer{
		fields: append([]string(nil), fields...),
	}
}

// Fields returns the configured date field names.
func (n *DateNormalizer) Fields() []string {
	return append([]string(nil), n.fields...)
}

// NormalizeRecord rewrites every date field of record that holds a string.
//
// PARAMETERS:
//   - index: The 0-based position of the record, used in warnings.
//   - record: The record to rewrite in place.
//
// RETURNS:
//   - The number of values rewritten.
//   - One warning per string value that did not match the source format.
//
// Absent fields and non-string values are skipped silently.
func (n *DateNormalizer) NormalizeRecord(index int, record *types.Record) (int, []types.Warning) {
	converted := 0
	var warnings []types.Warning

	for _, field := range n.fields {
		value, ok := record.Get(field)
		if !ok || !value.IsString() {
			continue
		}

		formatted, err := FormatDate(value.Text)
		if err != nil {
			warnings = append(warnings, types.Warning{
				Kind:   types.WarningDateFormat,
				Record: index,
				Field:  field,
				Value:  value.Text,
			})
			continue
		}

		record.Set(field, types.StringValue(formatted))
		converted++
	}

	return converted, warnings
}

// NormalizeDocument runs NormalizeRecord over every record in order.
func (n *DateNormalizer) NormalizeDocument(doc *types.Document) (int, []types.Warning) {
	converted := 0
	var warnings []types.Warning

	for i, record := range doc.Records {
		c, w := n.NormalizeRecord(i, record)
		converted += c
		warnings = append(warnings, w...)
	}

	return converted, warnings
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// FormatDate converts "05-03-2024" into "05-mar-2024".
func FormatDate(value string) (string, error) {
	t, err := time.Parse(SourceDateLayout, value)
	if err != nil {
		return "", err
	}
	return strings.ToLower(t.Format(TargetDateLayout)), nil
}
