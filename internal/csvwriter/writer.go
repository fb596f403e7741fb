// =============================================================================
// JSON to CSV Converter - CSV Writer Module
// =============================================================================
//
// This module writes a Document as CSV.
//
// OUTPUT STRUCTURE:
//   - One header row: the field names of the first record, in order
//   - One row per record, in document order
//
// COLUMN RULES:
//   - A record missing a header field gets an empty cell
//   - Fields not in the header are dropped without notice
//   - Values use their cell text (null is empty)
//
// Rows end in CRLF; quoting is left to encoding/csv.
//
// =============================================================================

package csvwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/pkg/utils"
)

// Write emits the header row and one row per record to w.
// An empty document writes nothing at all.
func Write(w io.Writer, doc *types.Document) error {
	if doc.IsEmpty() {
		return nil
	}

	headers := doc.Headers()

	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	row := make([]string, len(headers))
	for i, record := range doc.Records {
		fillRow(row, headers, record)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

// WriteFile writes doc to path. The file is replaced atomically, so a failed
// write leaves any previous file untouched.
func WriteFile(path string, doc *types.Document) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Write(w, doc)
	})
}

// WriteEmpty creates (or truncates) path as a zero-byte file.
func WriteEmpty(path string) error {
	return utils.WriteFileAtomic(path, func(io.Writer) error { return nil })
}

// fillRow projects record onto headers, reusing row.
func fillRow(row, headers []string, record *types.Record) {
	for i, header := range headers {
		if value, ok := record.Get(header); ok {
			row[i] = value.String()
		} else {
			row[i] = ""
		}
	}
}
