package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/aspen/aspen"
)

func pinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage the transactional PIN",
	}
	cmd.AddCommand(pinSetCmd(), pinUpdateCmd())
	return cmd
}

func pinSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <pin> <activation-code>",
		Short: "Set the PIN using an SMS activation code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := userClient(ctx)
			if err != nil {
				return err
			}
			user := client.CurrentUser()
			resp, err := run(ctx,
				func() (*aspen.Response, error) { return user.SetPin(ctx, args[0], args[1]) },
				func() *aspen.Future[*aspen.Response] { return user.SetPinAsync(ctx, args[0], args[1]) },
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

func pinUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <current-pin> <new-pin>",
		Short: "Replace the current PIN",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := userClient(ctx)
			if err != nil {
				return err
			}
			user := client.CurrentUser()
			resp, err := run(ctx,
				func() (*aspen.Response, error) { return user.UpdatePin(ctx, args[0], args[1]) },
				func() *aspen.Future[*aspen.Response] { return user.UpdatePinAsync(ctx, args[0], args[1]) },
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
