package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelospk/opensubtitles-go"
	"github.com/angelospk/opensubtitles-go/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to OpenSubtitles and remember the session",
		Long: `Logs in with a username and password (flags, or opensubtitles.username and
opensubtitles.password from the config) and stores the returned token and base
URL, so later commands run authenticated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if username == "" {
				username = rt.cfg.OpenSubtitles.Username
			}
			if password == "" {
				password = rt.cfg.OpenSubtitles.Password
			}
			if username == "" || password == "" {
				return errors.New("username and password are required (--username/--password or config)")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logging in to OpenSubtitles...")
			resp, err := rt.client.Login(cmd.Context(), opensubtitles.LoginRequest{Username: username, Password: password})
			if err != nil {
				return fmt.Errorf("login failed: %w", explain(err))
			}

			if err := rt.store.Save(session.Session{
				Token:    resp.Token,
				BaseURL:  rt.client.GetCurrentBaseURL(),
				Username: username,
			}); err != nil {
				return fmt.Errorf("logged in but failed to save session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (Level: %s, VIP: %t, allowed downloads: %d)\n",
				username, resp.User.Level, resp.User.VIP, resp.User.AllowedDownloads)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "OpenSubtitles username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "OpenSubtitles password")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user and the remaining download quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			info, err := rt.client.GetUserInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", explain(err))
			}

			u := info.Data
			out := cmd.OutOrStdout()
			if u.Username != "" {
				fmt.Fprintf(out, "User: %s (ID: %d)\n", u.Username, u.UserID)
			} else {
				fmt.Fprintf(out, "User ID: %d\n", u.UserID)
			}
			fmt.Fprintf(out, "Level: %s, VIP: %t\n", u.Level, u.VIP)
			fmt.Fprintf(out, "Downloads: %d used, %d remaining of %d\n", u.DownloadsCount, u.RemainingDownloads, u.AllowedDownloads)
			fmt.Fprintf(out, "Server: %s\n", rt.client.GetCurrentBaseURL())
			return nil
		},
	}
}
