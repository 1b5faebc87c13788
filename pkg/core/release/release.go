// Package release turns video file names into subtitle search hints.
package release

import (
	"path/filepath"
	"strings"

	ptn "github.com/razsteinmetz/go-ptn"
	"github.com/sirupsen/logrus"

	"github.com/angelospk/opensubtitles-go"
)

var log = logrus.WithField("component", "release")

// Info is what a release name says about the video.
type Info struct {
	FileName   string
	Title      string
	Year       int
	Season     int
	Episode    int
	Resolution string
	Source     string
	Group      string
	Language   string // OpenSubtitles code tagged onto the name, e.g. "en" in Movie.en.mkv
}

// Parse extracts release information from a file name or path.
// When the name cannot be parsed the title falls back to the base name with dots as spaces.
func Parse(filename string) Info {
	name := filepath.Base(filename)
	info := Info{FileName: name, Language: DetectLanguage(name)}

	parsed, err := ptn.Parse(name)
	if err != nil || parsed == nil || strings.TrimSpace(parsed.Title) == "" {
		if err != nil {
			log.WithError(err).Debugf("Failed to parse release name '%s'", name)
		}
		info.Title = fallbackTitle(name)
		return info
	}

	info.Title = strings.TrimSpace(parsed.Title)
	info.Year = parsed.Year
	info.Season = parsed.Season
	info.Episode = parsed.Episode
	info.Resolution = parsed.Resolution
	info.Source = parsed.Quality
	info.Group = parsed.Group
	return info
}

func fallbackTitle(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSpace(strings.ReplaceAll(base, ".", " "))
}

// IsEpisode reports whether the name carries a season or episode number.
func (i Info) IsEpisode() bool {
	return i.Season > 0 || i.Episode > 0
}

// SearchParams builds a subtitle query from the parsed name. The year is only
// sent for movies, since episode names usually carry the show's first-air year.
func (i Info) SearchParams() opensubtitles.SearchSubtitlesParams {
	params := opensubtitles.SearchSubtitlesParams{}
	if i.Title != "" {
		params.Query = opensubtitles.String(strings.ToLower(i.Title))
	}
	if i.IsEpisode() {
		params.Type = opensubtitles.String(string(opensubtitles.FeatureEpisode))
		if i.Season > 0 {
			params.SeasonNumber = opensubtitles.Int(i.Season)
		}
		if i.Episode > 0 {
			params.EpisodeNumber = opensubtitles.Int(i.Episode)
		}
		return params
	}
	params.Type = opensubtitles.String(string(opensubtitles.FeatureMovie))
	if i.Year > 0 {
		params.Year = opensubtitles.Int(i.Year)
	}
	return params
}
