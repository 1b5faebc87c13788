package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/angelospk/opensubtitles-go"
	"github.com/angelospk/opensubtitles-go/pkg/core/release"
	"github.com/angelospk/opensubtitles-go/pkg/processor"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		recursive bool
		all       bool
		lang      string
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "scan DIRECTORY",
		Short: "Find the best subtitle for every video in a directory",
		Long: `Scans a directory for video files, identifies each one by movie hash and
release name, and prints the best subtitle OpenSubtitles has for it.
Videos that already have a subtitle next to them are skipped unless --all is set.

Examples:
  osclient scan ~/Videos --lang en
  osclient scan ~/Series -r --all --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			p := processor.NewProcessor(rt.log, workers)
			videos, err := p.IdentifyDirectory(cmd.Context(), args[0], recursive)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(videos) == 0 {
				fmt.Fprintln(w, "No video files found.")
				return nil
			}

			failed := 0
			for _, v := range videos {
				name := filepath.Base(v.Path)
				switch {
				case v.Err != nil:
					fmt.Fprintf(w, "%s: %v\n", name, v.Err)
					failed++
					continue
				case v.Subtitle != "" && !all:
					fmt.Fprintf(w, "%s: has subtitle %s (skipped)\n", name, filepath.Base(v.Subtitle))
					continue
				}

				params := v.SearchParams()
				if lang != "" {
					params.Languages = opensubtitles.String(release.NormalizeLanguages(lang))
				}
				results, err := rt.client.SearchSubtitles(cmd.Context(), params)
				if err != nil {
					rt.log.WithError(err).WithField("file", name).Debug("Subtitle search failed")
					fmt.Fprintf(w, "%s: search failed: %v\n", name, explain(err))
					failed++
					continue
				}
				printBest(w, name, results.Data)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d videos could not be matched", failed, len(videos))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&recursive, "recursive", "r", false, "Scan subdirectories too")
	f.BoolVar(&all, "all", false, "Also search for videos that already have a subtitle")
	f.StringVarP(&lang, "lang", "l", "", "Comma-separated list of languages (e.g., en,el)")
	f.IntVarP(&workers, "workers", "w", processor.DefaultWorkers, "Files identified in parallel")
	return cmd
}

// bestSubtitle prefers a movie hash match, then the API's own ranking.
func bestSubtitle(subs []opensubtitles.Subtitle) *opensubtitles.Subtitle {
	for i := range subs {
		if m := subs[i].Attributes.MoviehashMatch; m != nil && *m {
			return &subs[i]
		}
	}
	if len(subs) > 0 {
		return &subs[0]
	}
	return nil
}

func printBest(w io.Writer, name string, subs []opensubtitles.Subtitle) {
	best := bestSubtitle(subs)
	if best == nil || len(best.Attributes.Files) == 0 {
		fmt.Fprintf(w, "%s: no subtitles found\n", name)
		return
	}

	attrs := best.Attributes
	fmt.Fprintf(w, "%s: [%s] %s (file id %d)", name, attrs.Language, attrs.Files[0].FileName, attrs.Files[0].FileID)
	if attrs.MoviehashMatch != nil && *attrs.MoviehashMatch {
		fmt.Fprint(w, " hash match")
	}
	fmt.Fprintln(w)
}
