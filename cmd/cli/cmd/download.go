package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/angelospk/opensubtitles-go"
)

func newDownloadCmd(a *app) *cobra.Command {
	var (
		format string
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "download FILE_ID",
		Short: "Request a download link for a subtitle file and optionally save it",
		Long: `Requests a temporary download link for the given file id (see "search").
Each call counts against the daily download quota.

With --output the file is saved: to that path, or inside it when it is an
existing directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := strconv.Atoi(args[0])
			if err != nil || fileID <= 0 {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			req := opensubtitles.DownloadRequest{FileID: fileID}
			if format != "" {
				req.SubFormat = opensubtitles.String(format)
			}
			if force {
				req.ForceDownload = opensubtitles.Bool(true)
			}

			resp, err := rt.client.Download(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("download failed: %w", explain(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Link: %s\n", resp.Link)
			fmt.Fprintf(out, "File: %s\n", resp.FileName)
			fmt.Fprintf(out, "Remaining downloads: %d (resets in %s)\n", resp.Remaining, resp.ResetTime)

			if output == "" {
				return nil
			}
			dest := output
			if st, err := os.Stat(output); err == nil && st.IsDir() {
				dest = filepath.Join(output, resp.FileName)
			}
			n, err := rt.client.FetchFile(cmd.Context(), resp.Link, dest)
			if err != nil {
				return fmt.Errorf("failed to save subtitle: %w", err)
			}
			fmt.Fprintf(out, "Saved %d bytes to %s\n", n, dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Subtitle format to convert to (see /infos/formats), e.g. srt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Save the file to this path or directory")
	cmd.Flags().BoolVar(&force, "force", false, "Count the download even if it was already made")
	return cmd
}
