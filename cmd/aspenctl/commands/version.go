package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/aspen/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, version.Get())
			_, err := fmt.Fprintln(out, version.UserAgent())
			return err
		},
	}
}
