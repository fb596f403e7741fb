// =============================================================================
// JSON to CSV Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with one
// positional argument, the root command converts that JSON file to CSV.
//
// COBRA CLI STRUCTURE:
//   rootCmd (jsontocsv <input_file> [-o output])
//   ├── processCmd (jsontocsv process)
//   └── versionCmd (jsontocsv version)
//
// EXIT CODES:
//   0 - success, including runs with warnings
//   1 - unexpected error or usage error
//   2 - input file not found
//   3 - input is not valid JSON
//   4 - input is not a list of objects
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/converter"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/logger"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	// cfgFile is the path to the configuration file. It is only required
	// when --config was given explicitly.
	cfgFile string

	verbose  bool
	logLevel string
	logJSON  bool
}

// loadConfig reads the configuration file and applies flag overrides.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.MainConfig, error) {
	required := cmd.Flags().Changed("config")
	cfg, err := config.LoadMainConfig(o.cfgFile, required)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON = o.logJSON
	}
	if o.verbose {
		cfg.LogLevel = string(logger.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger builds the diagnostics logger for a command.
func newLogger(cmd *cobra.Command, cfg *config.MainConfig) logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		Output:     cmd.OutOrStdout(),
		JSON:       cfg.LogJSON,
		TimeFormat: "15:04:05",
	})
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var outputFile string

	rootCmd := &cobra.Command{
		Use:   "jsontocsv <input_file>",
		Short: "Convert a JSON file to a CSV file",
		Long: `jsontocsv converts a JSON document containing a list of flat objects into a
CSV file. The header row is taken from the keys of the first object, in order.

The fields "starting_date" and "ending_date" are rewritten from DD-MM-YYYY to
DD-mon-YYYY (for example 05-03-2024 becomes 05-mar-2024). Values that do not
match are kept as they are and reported as warnings.

Example Usage:
  jsontocsv json-data/gujarati_months_2024-2025.json
  jsontocsv events.json -o out/events.csv
  jsontocsv events.json -o out/events.xlsx     # write a spreadsheet instead
  jsontocsv process --config ./config.yaml     # convert a whole directory`,

		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			inputFile := args[0]
			if outputFile == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return types.NewError(types.KindUnexpected, inputFile, err)
				}
				outputFile = utils.DefaultOutputPath(cwd, inputFile)
			}

			return converter.Convert(inputFile, outputFile,
				converter.WithLogger(newLogger(cmd, cfg)),
				converter.WithDateFields(cfg.DateFields),
			)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (optional unless given explicitly)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
	rootCmd.PersistentFlags().StringVar(
		&opts.logLevel,
		"log-level",
		"info",
		"Log level (debug, info, warn, error)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&opts.logJSON,
		"log-json",
		false,
		"Write diagnostics as JSON lines",
	)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	rootCmd.Flags().StringVarP(
		&outputFile,
		"output",
		"o",
		"",
		"Path for the output CSV file. Defaults to <current directory>/<input name>.csv",
	)

	rootCmd.AddCommand(newProcessCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI and exits with the code matching the outcome.
// This is called by main.main().
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:]))
}

// run executes cmd with args and returns the process exit code. Conversion
// failures have already been logged by the converter; other errors (usage,
// configuration) are printed here.
func run(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return types.ExitOK
	}

	var convErr *types.ConversionError
	if !errors.As(err, &convErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return types.ExitCodeOf(err)
}
