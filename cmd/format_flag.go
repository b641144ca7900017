package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ginjaninja78/parse-d2l/internal/format"
)

// formatValue is the --format flag. It only accepts the format names.
type formatValue struct {
	name string
}

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) Set(val string) error {
	parsed, err := format.Parse(val)
	if err != nil {
		return err
	}
	f.name = parsed.Name()
	return nil
}

func (f *formatValue) String() string {
	return f.name
}

func (f *formatValue) Type() string {
	return "format"
}

// formatFlags holds the format-selecting flags shared by the root and batch
// commands.
type formatFlags struct {
	email   bool
	names   bool
	hostbin bool
	format  formatValue
}

// register adds -e, -n, -b and --format to cmd, makes them mutually
// exclusive and requires one of them.
func (ff *formatFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&ff.email, "email", "e", false, "output one email per line")
	flags.BoolVarP(&ff.names, "names", "n", false, "output one \"First Last\" per line")
	flags.BoolVarP(&ff.hostbin, "hostbin", "b", false, "output one \"First Last,OrgDefinedId\" per line")
	flags.Var(&ff.format, "format", "output format, one of: email, hostbin, names")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return format.AllNames(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.MarkFlagsMutuallyExclusive("email", "names", "hostbin", "format")
	cmd.MarkFlagsOneRequired("email", "names", "hostbin", "format")
}

// resolve returns the selected output format.
func (ff *formatFlags) resolve() format.Format {
	return format.Resolve(format.Selection{
		Email:   ff.email,
		Hostbin: ff.hostbin,
		Names:   ff.names,
		Format:  ff.format.String(),
	})
}
