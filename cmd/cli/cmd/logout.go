package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	coreErrors "github.com/angelospk/opensubtitles-go/pkg/core/errors"
)

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the stored session token",
		Long: `Logs out from the OpenSubtitles REST API and forgets the stored session.
If the API refuses, the session is kept so the command can be retried.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.client.GetCurrentToken() == nil {
				return coreErrors.ErrNotLoggedIn
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logging out from OpenSubtitles...")
			if _, err := rt.client.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout failed: %w", explain(err))
			}
			if err := rt.store.Clear(); err != nil {
				return fmt.Errorf("logged out but failed to clear session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logout successful.")
			return nil
		},
	}
}
