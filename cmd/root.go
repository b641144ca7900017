// =============================================================================
// parse-d2l - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// converts a single classlist export; the other commands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (parse-d2l <path>)
//   ├── convertCmd (parse-d2l convert <path>, same as the root)
//   ├── batchCmd (parse-d2l batch)
//   └── versionCmd (parse-d2l version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file before any command runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/parse-d2l/internal/config"
	"github.com/ginjaninja78/parse-d2l/internal/log"
	"github.com/ginjaninja78/parse-d2l/internal/validation"
)

// globals holds the persistent flags and the configuration they produce.
type globals struct {
	// cfgFile is the path to the configuration file.
	cfgFile string

	// verbose enables debug logging.
	verbose bool

	// cfg is loaded in PersistentPreRunE.
	cfg *config.Config
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "parse-d2l <path> (-e | -n | -b | --format <format>) [-o <output>]",
		Short: "Convert a D2L classlist export into email, name or hostbin lists",
		Long: `parse-d2l reads a classlist exported from D2L (CSV, or XLSX) and writes
one line per student in one of three formats:

  email    Email
  names    First Last
  hostbin  First Last,OrgDefinedId

Output goes to stdout unless --output is given. An input file named like a
subcommand (batch, convert, version) is converted with "parse-d2l convert".

Example Usage:
  parse-d2l classlist.csv -e                 # Print one email per line
  parse-d2l classlist.csv -b -o hostbin.txt  # Write the hostbin list to a file
  parse-d2l convert version -n               # Convert a file named "version"
  parse-d2l batch --names                    # Convert every export in the input directory`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},

		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(
		&g.cfgFile,
		"config",
		config.DefaultPath,
		"path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&g.verbose,
		"verbose",
		"v",
		false,
		"enable debug logging on stderr",
	)

	setupConvert(rootCmd, g)

	rootCmd.AddCommand(newConvertCmd(g))
	rootCmd.AddCommand(newBatchCmd(g))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// load reads the configuration and sets up logging.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	g.cfg = cfg

	log.SetDebugMode(g.verbose || cfg.LogLevel == "debug")
	if cfg.Source != "" {
		log.Info("Using config file %s", cfg.Source)
	}
	log.Debug("Configuration loaded (csv delimiter %q, xlsx sheet %q)", cfg.CSV.Delimiter, cfg.XLSX.Sheet)

	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// exit is swapped out in tests.
var exit = os.Exit

// Execute runs the CLI. This is called by main.main(). Any error is printed
// to stderr and the process exits with status 1.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
	}
}

// reportError prints a command error and exits with status 1. Missing
// columns get the bare "Missing fields in csv" line; every other error goes
// through log.Fatal.
func reportError(w io.Writer, err error) {
	var missingErr *validation.MissingColumnsError
	if errors.As(err, &missingErr) {
		fmt.Fprintf(w, "Missing fields in csv: %s\n", validation.FormatColumns(missingErr.Missing))
		exit(1)
		return
	}
	log.Fatal(err)
}
