// =============================================================================
// JSON to CSV Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   jsontocsv <input_file> [-o output]  - Convert one JSON file to CSV
//   jsontocsv process                   - Convert every JSON file in input_dir
//   jsontocsv version                   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core conversion logic (not for external import)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/JSON-to-CSV-conversion/cmd"
)

func main() {
	cmd.Execute()
}
