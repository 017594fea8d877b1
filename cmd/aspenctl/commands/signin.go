package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/aspen/aspen"
	"github.com/kbukum/aspen/util"
)

func signInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and print the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			session := app.client.Session()

			var (
				user *aspen.Client
				err  error
			)
			if async {
				user, err = session.SignInAsync(ctx, docType, docNumber, password).Await(ctx)
			} else {
				user, err = session.SignIn(ctx, docType, docNumber, password)
			}
			if err != nil {
				return err
			}

			token := user.Context().SessionToken()
			app.log.Info("signed in", map[string]interface{}{
				"username": user.Context().Username(),
				"token":    util.MaskSecret(token, 4),
			})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	addCredentialFlags(cmd)
	_ = cmd.MarkFlagRequired("doc-type")
	_ = cmd.MarkFlagRequired("doc-number")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
