// =============================================================================
// JSON to CSV Converter - XLSX Writer Module
// =============================================================================
//
// When the output path ends in ".xlsx" the converted table is written as a
// spreadsheet instead of a CSV. The layout is the same: one header row taken
// from the first record, then one row per record.
//
// CELL TYPES:
//   - JSON numbers become numeric cells when they fit a float64
//   - JSON booleans become boolean cells
//   - null and missing fields leave the cell blank
//   - everything else is written as text
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet in the output workbook.
const SheetName = "Data"

// IsXLSXPath reports whether path should be written as a spreadsheet.
func IsXLSXPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// Write encodes doc as an XLSX workbook to w. An empty document yields a
// workbook with one empty sheet.
func Write(w io.Writer, doc *types.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if !doc.IsEmpty() {
		headers := doc.Headers()

		headerRow := make([]interface{}, len(headers))
		for i, h := range headers {
			headerRow[i] = h
		}
		if err := setRow(f, 1, headerRow); err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}

		for i, record := range doc.Records {
			row := make([]interface{}, len(headers))
			for j, header := range headers {
				if value, ok := record.Get(header); ok {
					row[j] = cellValue(value)
				}
			}
			if err := setRow(f, i+2, row); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

// WriteFile writes doc to path atomically.
func WriteFile(path string, doc *types.Document) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Write(w, doc)
	})
}

// setRow writes values starting at column A of the given 1-based row.
func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SheetName, cell, &values)
}

// cellValue maps a Value to the Go type excelize should store.
func cellValue(value types.Value) interface{} {
	switch value.Kind {
	case types.KindNull:
		return nil
	case types.KindNumber:
		if n, err := strconv.ParseFloat(value.Text, 64); err == nil {
			return n
		}
		return value.Text
	case types.KindBool:
		return value.Text == "true"
	default:
		return value.Text
	}
}
