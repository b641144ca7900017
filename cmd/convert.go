package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/parse-d2l/internal/converter"
)

// newConvertCmd returns the explicit form of the root command. It converts
// inputs whose name collides with a subcommand.
func newConvertCmd(g *globals) *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert <path> (-e | -n | -b | --format <format>) [-o <output>]",
		Short: "Convert one export (same as the root command)",
	}
	setupConvert(convertCmd, g)
	return convertCmd
}

// setupConvert makes cmd convert the export named by its single argument.
func setupConvert(cmd *cobra.Command, g *globals) {
	var (
		output string
		ff     formatFlags
	)

	cmd.Args = cobra.MatchAll(cobra.ExactArgs(1), readableFile)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		// Argument and flag errors print usage; conversion errors do not.
		cmd.SilenceUsage = true

		conv := converter.New(converter.Options{
			InputPath:  args[0],
			OutputPath: output,
			Format:     ff.resolve(),
		}, g.cfg)
		conv.SetStdout(cmd.OutOrStdout())

		return conv.Run().Error
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	ff.register(cmd)
}

// readableFile checks that the input path can be opened for reading.
func readableFile(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot read input: %s is a directory", args[0])
	}
	return nil
}
