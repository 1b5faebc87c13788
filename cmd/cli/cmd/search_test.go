package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/angelospk/opensubtitles-go"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestSearchCommand_Success_Query(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)

	expectedParams := opensubtitles.SearchSubtitlesParams{
		Query:     opensubtitles.String("my test movie"),
		Languages: opensubtitles.String("el,en"),
		Type:      opensubtitles.String("movie"),
	}
	mockClient.On("SearchSubtitles", mock.Anything, expectedParams).Return(
		&opensubtitles.SearchSubtitlesResponse{
			PaginatedResponse: opensubtitles.PaginatedResponse{TotalCount: 1, TotalPages: 1, Page: 1},
			Data: []opensubtitles.Subtitle{
				{
					ApiDataWrapper: opensubtitles.ApiDataWrapper{ID: "sub1", Type: "subtitle"},
					Attributes: opensubtitles.SubtitleAttributes{
						Language:      "en",
						DownloadCount: 100,
						Votes:         5,
						Ratings:       8.5,
						Release:       "My.Test.Movie.2023.1080p",
						FeatureDetails: opensubtitles.SubtitleFeatureDetails{
							FeatureType: "Movie",
							FeatureID:   123,
							Title:       "My Test Movie",
							Year:        2023,
						},
						Files: []opensubtitles.SubtitleFile{
							{FileID: 77, FileName: "My.Test.Movie.srt"},
						},
					},
				},
			},
		}, nil).Once()

	output, err := env.run("search", "--query", "My Test Movie", "--lang", "english,greek", "--type", "movie")

	require.NoError(t, err)
	assert.Contains(t, output, "Found 1 subtitles (showing 1):")
	assert.Contains(t, output, "ID: sub1")
	assert.Contains(t, output, "File: My.Test.Movie.srt (file id 77)")
	assert.Contains(t, output, "Language: en")
	assert.Contains(t, output, "Feature: Movie (ID: 123, Title: My Test Movie, Year: 2023)")
	assert.NotContains(t, output, "More results available")
	mockClient.AssertExpectations(t)
}

func TestSearchCommand_IMDbAndEpisode(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)

	expectedParams := opensubtitles.SearchSubtitlesParams{
		IMDbID:        opensubtitles.Int(1234567),
		Type:          opensubtitles.String("episode"),
		SeasonNumber:  opensubtitles.Int(2),
		EpisodeNumber: opensubtitles.Int(3),
		Page:          opensubtitles.Int(2),
	}
	mockClient.On("SearchSubtitles", mock.Anything, expectedParams).Return(
		&opensubtitles.SearchSubtitlesResponse{
			PaginatedResponse: opensubtitles.PaginatedResponse{TotalCount: 0, Page: 2},
		}, nil).Once()

	output, err := env.run("search", "--imdbid", "tt1234567", "--type", "episode", "-s", "2", "-e", "3", "--page", "2")

	require.NoError(t, err)
	assert.Contains(t, output, "No subtitles found matching the criteria.")
	mockClient.AssertExpectations(t)
}

func TestSearchCommand_Validation(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		err  string
	}{
		{"NoCriteria", []string{"search"}, "at least one of --query"},
		{"BadType", []string{"search", "-q", "x", "--type", "tvshow"}, "invalid --type: tvshow"},
		{"BadIMDb", []string{"search", "--imdbid", "ttabc"}, "invalid --imdbid"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := new(MockOSClient)
			env := newCLIEnv(t, mockClient)

			_, err := env.run(tc.args...)

			assert.ErrorContains(t, err, tc.err)
			mockClient.AssertNotCalled(t, "SearchSubtitles", mock.Anything, mock.Anything)
		})
	}
}

func TestSearchCommand_File(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)

	video := filepath.Join(t.TempDir(), "The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv")
	require.NoError(t, os.WriteFile(video, make([]byte, 128*1024), 0o600))

	matchesFile := mock.MatchedBy(func(p opensubtitles.SearchSubtitlesParams) bool {
		return p.Moviehash != nil && *p.Moviehash == "0000000000020000" &&
			p.Query != nil && *p.Query == "the matrix" &&
			p.Year != nil && *p.Year == 1999 &&
			p.Type != nil && *p.Type == "movie" &&
			p.Languages != nil && *p.Languages == "en"
	})
	mockClient.On("SearchSubtitles", mock.Anything, matchesFile).Return(&opensubtitles.SearchSubtitlesResponse{}, nil).Once()

	_, err := env.run("search", "--file", video, "--lang", "en")

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestSearchCommand_SmallFileSkipsHash(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)

	video := filepath.Join(t.TempDir(), "home.video.mp4")
	require.NoError(t, writeFile(video, "tiny"))

	matchesName := mock.MatchedBy(func(p opensubtitles.SearchSubtitlesParams) bool {
		return p.Moviehash == nil && p.Query != nil
	})
	mockClient.On("SearchSubtitles", mock.Anything, matchesName).Return(&opensubtitles.SearchSubtitlesResponse{}, nil).Once()

	_, err := env.run("search", "--file", video)

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestSearchCommand_MissingFile(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)

	_, err := env.run("search", "--file", filepath.Join(t.TempDir(), "missing.mkv"))

	assert.ErrorIs(t, err, os.ErrNotExist)
	mockClient.AssertNotCalled(t, "SearchSubtitles", mock.Anything, mock.Anything)
}
