package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/aspen/aspen"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Ask the service to issue a single-use token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := userClient(ctx)
			if err != nil {
				return err
			}
			user := client.CurrentUser()
			resp, err := run(ctx,
				func() (*aspen.Response, error) { return user.RequestSingleUseToken(ctx) },
				func() *aspen.Future[*aspen.Response] { return user.RequestSingleUseTokenAsync(ctx) },
			)
			if err != nil {
				return err
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	addCredentialFlags(cmd)
	return cmd
}
