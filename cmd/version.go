// =============================================================================
// parse-d2l - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and build information.
//
// COMMAND USAGE:
//   parse-d2l version
//
// OUTPUT:
//   parse-d2l
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// These variables are set at build time using ldflags:
//   go build -ldflags "-X 'github.com/ginjaninja78/parse-d2l/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "dev"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the application version",
		Long:  `Display the application version, build date, and Go runtime version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "parse-d2l")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		},
	}
}
