package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelospk/opensubtitles-go"
	"github.com/angelospk/opensubtitles-go/pkg/core/release"
)

func newDiscoverCmd(a *app) *cobra.Command {
	var lang, kind string

	cmd := &cobra.Command{
		Use:       "discover popular|latest|most-downloaded",
		Short:     "List popular features, or the latest and most downloaded subtitles",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"popular", "latest", "most-downloaded"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			params := opensubtitles.DiscoverParams{}
			if lang != "" {
				code := opensubtitles.LanguageCode(release.NormalizeLanguages(lang))
				params.Language = &code
			}
			if kind != "" {
				ft := opensubtitles.FeatureType(kind)
				params.Type = &ft
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "popular":
				resp, err := rt.client.DiscoverPopular(ctx, params)
				if err != nil {
					return fmt.Errorf("discover failed: %w", explain(err))
				}
				printFeatures(out, resp.Data)
			case "latest":
				resp, err := rt.client.DiscoverLatest(ctx, params)
				if err != nil {
					return fmt.Errorf("discover failed: %w", explain(err))
				}
				printSubtitles(out, resp.Data, resp.TotalCount, resp.Page, resp.TotalPages)
			case "most-downloaded":
				resp, err := rt.client.DiscoverMostDownloaded(ctx, params)
				if err != nil {
					return fmt.Errorf("discover failed: %w", explain(err))
				}
				printSubtitles(out, resp.Data, resp.TotalCount, resp.Page, resp.TotalPages)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language code, or \"all\"")
	cmd.Flags().StringVar(&kind, "type", "", "movie or tvshow")
	return cmd
}
