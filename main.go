// =============================================================================
// parse-d2l - Main Entry Point
// =============================================================================
//
// parse-d2l turns a D2L classlist export into a plain list of emails, names or
// hostbin account lines.
//
// USAGE:
//   parse-d2l <path> -e|-n|-b [-o out]  - Convert one export
//   parse-d2l batch -e|-n|-b            - Convert every export in a directory
//   parse-d2l version                   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Conversion pipeline, readers, config and logging
//   - pkg/       : File handling for batch runs
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/parse-d2l/cmd"
)

func main() {
	cmd.Execute()
}
