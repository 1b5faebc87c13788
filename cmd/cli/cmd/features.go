package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelospk/opensubtitles-go"
)

func newFeaturesCmd(a *app) *cobra.Command {
	var (
		query  string
		imdbID string
		kind   string
		year   int
	)

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Search movies and TV shows (features)",
		Example: `  osclient features --query "breaking bad" --type tvshow
  osclient features --imdbid tt0133093`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" && imdbID == "" {
				return errors.New("one of --query or --imdbid must be provided")
			}

			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			params := opensubtitles.SearchFeaturesParams{}
			if query != "" {
				params.Query = opensubtitles.String(strings.ToLower(query))
			}
			if imdbID != "" {
				params.IMDbID = opensubtitles.String(strings.TrimPrefix(strings.ToLower(imdbID), "tt"))
			}
			if kind != "" {
				params.Type = opensubtitles.String(kind)
			}
			if year > 0 {
				params.Year = opensubtitles.Int(year)
			}

			resp, err := rt.client.SearchFeatures(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("feature search failed: %w", explain(err))
			}
			printFeatures(cmd.OutOrStdout(), resp.Data)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Title to search for")
	cmd.Flags().StringVar(&imdbID, "imdbid", "", "IMDb ID (e.g., tt1234567)")
	cmd.Flags().StringVar(&kind, "type", "", "movie, tvshow or episode")
	cmd.Flags().IntVar(&year, "year", 0, "Release year")
	return cmd
}

func printFeatures(w io.Writer, features []opensubtitles.Feature) {
	if len(features) == 0 {
		fmt.Fprintln(w, "No features found.")
		return
	}
	for _, f := range features {
		base, err := f.Base()
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", f.ID, err)
			continue
		}
		fmt.Fprintf(w, "[%s] %s (%s) ID: %s", base.FeatureType, base.Title, base.Year, base.FeatureID)
		if base.IMDbID != nil {
			fmt.Fprintf(w, " IMDb: tt%07d", *base.IMDbID)
		}
		fmt.Fprintf(w, " Subtitles: %d\n", base.SubtitlesCount)
	}
}
