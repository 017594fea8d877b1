package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/aspen/aspen"
)

func activationCodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activation-code",
		Short: "Ask the service to send an SMS activation code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := userClient(ctx)
			if err != nil {
				return err
			}
			user := client.CurrentUser()
			resp, err := run(ctx,
				func() (*aspen.Response, error) { return user.RequestActivationCode(ctx) },
				func() *aspen.Future[*aspen.Response] { return user.RequestActivationCodeAsync(ctx) },
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
