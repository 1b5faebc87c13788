package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/angelospk/opensubtitles-go"
	"github.com/angelospk/opensubtitles-go/pkg/core/release"
)

func newGuessitCmd(a *app) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "guessit FILENAME",
		Short: "Extract title, season, episode and release details from a file name",
		Long: `Asks the API's guessit utility what a release name means. With --local the
name is parsed offline instead, the way "search --file" does it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if local {
				printRelease(out, release.Parse(args[0]))
				return nil
			}

			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			resp, err := rt.client.Guessit(cmd.Context(), opensubtitles.GuessitParams{Filename: args[0]})
			if err != nil {
				return fmt.Errorf("guessit failed: %w", explain(err))
			}
			printGuess(out, resp)
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Parse the name offline without calling the API")
	return cmd
}

func printGuess(w io.Writer, g *opensubtitles.GuessitResponse) {
	str := func(label string, v *string) {
		if v != nil {
			fmt.Fprintf(w, "%s: %s\n", label, *v)
		}
	}
	num := func(label string, v *int) {
		if v != nil {
			fmt.Fprintf(w, "%s: %d\n", label, *v)
		}
	}
	str("Title", g.Title)
	num("Year", g.Year)
	num("Season", g.Season)
	num("Episode", g.Episode)
	str("Episode title", g.EpisodeTitle)
	str("Type", g.Type)
	str("Screen size", g.ScreenSize)
	str("Source", g.Source)
	str("Video codec", g.VideoCodec)
	str("Release group", g.ReleaseGroup)
	if g.Language != nil {
		fmt.Fprintf(w, "Language: %s\n", *g.Language)
	}
}

func printRelease(w io.Writer, info release.Info) {
	fmt.Fprintf(w, "Title: %s\n", info.Title)
	if info.Year > 0 {
		fmt.Fprintf(w, "Year: %d\n", info.Year)
	}
	if info.IsEpisode() {
		fmt.Fprintf(w, "Season: %d\nEpisode: %d\n", info.Season, info.Episode)
	}
	if info.Resolution != "" {
		fmt.Fprintf(w, "Screen size: %s\n", info.Resolution)
	}
	if info.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", info.Source)
	}
	if info.Group != "" {
		fmt.Fprintf(w, "Release group: %s\n", info.Group)
	}
	if info.Language != "" {
		fmt.Fprintf(w, "Language: %s\n", info.Language)
	}
}
