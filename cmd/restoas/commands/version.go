package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/restoas"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// No configuration is needed to report the build.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			Writef(cmd.OutOrStdout(), "restoas %s\n%s\n", restoas.Version(), restoas.BuildInfo())
			return nil
		},
	}
}
