package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelospk/opensubtitles-go"
	"github.com/angelospk/opensubtitles-go/pkg/core/release"
	"github.com/angelospk/opensubtitles-go/pkg/processor"
)

type searchOptions struct {
	query    string
	imdbID   string
	tmdbID   int
	lang     string
	kind     string
	season   int
	episode  int
	parentID int
	year     int
	page     int
	file     string
}

func newSearchCmd(a *app) *cobra.Command {
	o := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for subtitles on OpenSubtitles",
		Long: `Searches for subtitles on OpenSubtitles.com based on various criteria.
Requires at least one of --query, --imdbid, --tmdbid, --parent-id or --file.

With --file the movie hash of the video is sent, and the title, year, season
and episode are taken from its name (or its embedded title tag). Explicit
flags win over what the file suggests.

Examples:
  osclient search --query "My Movie Title" --lang en
  osclient search --imdbid tt1234567 --lang en,el
  osclient search --parent-id 12345 --type episode --season 1 --episode 5 --lang fr
  osclient search --file ~/Videos/The.Matrix.1999.1080p.BluRay.x264.mkv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := o.params(cmd)
			if err != nil {
				return err
			}

			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if o.file != "" {
				if err := fromFile(rt, o.file, &params); err != nil {
					return err
				}
			}

			rt.log.WithField("params", params).Debug("Searching subtitles...")
			results, err := rt.client.SearchSubtitles(cmd.Context(), params)
			if err != nil {
				rt.log.WithError(err).Debug("Subtitle search failed")
				return fmt.Errorf("subtitle search failed: %w", explain(err))
			}

			printSubtitles(cmd.OutOrStdout(), results.Data, results.TotalCount, results.Page, results.TotalPages)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.query, "query", "q", "", "Search query (movie/show title)")
	f.StringVar(&o.kind, "type", "", "Type of feature to search (movie, episode, all)")
	f.StringVar(&o.imdbID, "imdbid", "", "IMDb ID (e.g., tt1234567)")
	f.IntVar(&o.tmdbID, "tmdbid", 0, "TMDB ID")
	f.StringVarP(&o.lang, "lang", "l", "", "Comma-separated list of languages (e.g., en,el or english,greek)")
	f.IntVarP(&o.season, "season", "s", 0, "Season number (for type=episode)")
	f.IntVarP(&o.episode, "episode", "e", 0, "Episode number (for type=episode)")
	f.IntVar(&o.parentID, "parent-id", 0, "Parent feature ID (search within a TV show)")
	f.IntVar(&o.year, "year", 0, "Release year")
	f.IntVar(&o.page, "page", 0, "Results page")
	f.StringVarP(&o.file, "file", "f", "", "Video file to identify by hash and name")
	return cmd
}

// params validates the flags and turns them into query parameters.
func (o *searchOptions) params(cmd *cobra.Command) (opensubtitles.SearchSubtitlesParams, error) {
	var params opensubtitles.SearchSubtitlesParams

	if o.query == "" && o.imdbID == "" && o.tmdbID == 0 && o.parentID == 0 && o.file == "" {
		return params, errors.New("at least one of --query, --imdbid, --tmdbid, --parent-id or --file must be provided")
	}
	switch o.kind {
	case "", "movie", "episode", "all":
	default:
		return params, fmt.Errorf("invalid --type: %s. Must be one of: movie, episode, all", o.kind)
	}

	if o.query != "" {
		params.Query = opensubtitles.String(strings.ToLower(o.query))
	}
	if o.imdbID != "" {
		id, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(o.imdbID), "tt"))
		if err != nil {
			return params, fmt.Errorf("invalid --imdbid %q: %w", o.imdbID, err)
		}
		params.IMDbID = opensubtitles.Int(id)
	}
	if o.tmdbID > 0 {
		params.TMDBID = opensubtitles.Int(o.tmdbID)
	}
	if o.parentID > 0 {
		params.ParentFeatureID = opensubtitles.Int(o.parentID)
	}
	if o.lang != "" {
		params.Languages = opensubtitles.String(release.NormalizeLanguages(o.lang))
	}
	if o.kind != "" {
		params.Type = opensubtitles.String(o.kind)
	}
	if cmd.Flags().Changed("season") {
		params.SeasonNumber = opensubtitles.Int(o.season)
	}
	if cmd.Flags().Changed("episode") {
		params.EpisodeNumber = opensubtitles.Int(o.episode)
	}
	if o.year > 0 {
		params.Year = opensubtitles.Int(o.year)
	}
	if o.page > 0 {
		params.Page = opensubtitles.Int(o.page)
	}
	return params, nil
}

// fromFile fills the parameters the flags left empty from the video file.
func fromFile(rt *runtime, path string, params *opensubtitles.SearchSubtitlesParams) error {
	video, err := processor.NewProcessor(rt.log, 1).IdentifyFile(path)
	if err != nil {
		return err
	}
	rt.log.WithField("file", path).WithField("title", video.Release.Title).Debug("Identified video file")
	mergeHints(params, video.SearchParams())
	return nil
}

// mergeHints copies the hints into the fields params leaves unset. The query
// is only taken when no ID already pins the feature.
func mergeHints(params *opensubtitles.SearchSubtitlesParams, hints opensubtitles.SearchSubtitlesParams) {
	if params.Moviehash == nil {
		params.Moviehash = hints.Moviehash
	}
	if params.Query == nil && params.IMDbID == nil && params.TMDBID == nil && params.ParentFeatureID == nil {
		params.Query = hints.Query
	}
	if params.Type == nil {
		params.Type = hints.Type
	}
	if params.SeasonNumber == nil {
		params.SeasonNumber = hints.SeasonNumber
	}
	if params.EpisodeNumber == nil {
		params.EpisodeNumber = hints.EpisodeNumber
	}
	if params.Year == nil {
		params.Year = hints.Year
	}
	if params.Languages == nil {
		params.Languages = hints.Languages
	}
}

func printSubtitles(w io.Writer, subs []opensubtitles.Subtitle, total, page, pages int) {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No subtitles found matching the criteria.")
		return
	}

	fmt.Fprintf(w, "Found %d subtitles (showing %d):\n", total, len(subs))
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, sub := range subs {
		attrs := sub.Attributes
		fmt.Fprintf(w, "ID: %s\n", sub.ID)
		if attrs.Release != "" {
			fmt.Fprintf(w, "  Release: %s\n", attrs.Release)
		}
		for _, file := range attrs.Files {
			fmt.Fprintf(w, "  File: %s (file id %d)\n", file.FileName, file.FileID)
		}
		fmt.Fprintf(w, "  Language: %s\n", attrs.Language)
		fmt.Fprintf(w, "  Downloads: %d, Ratings: %.1f, Votes: %d\n", attrs.DownloadCount, attrs.Ratings, attrs.Votes)
		if attrs.MoviehashMatch != nil && *attrs.MoviehashMatch {
			fmt.Fprintln(w, "  Hash match")
		}
		fmt.Fprintf(w, "  Feature: %s (ID: %d, Title: %s, Year: %d)\n",
			attrs.FeatureDetails.FeatureType,
			attrs.FeatureDetails.FeatureID,
			attrs.FeatureDetails.Title,
			attrs.FeatureDetails.Year,
		)
		fmt.Fprintln(w, "--------------------------------------------------")
	}

	if pages > 1 {
		fmt.Fprintf(w, "More results available (Page %d of %d)\n", page, pages)
	}
}
