package cmd_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/angelospk/opensubtitles-go"
)

func TestScanCommand(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Inception.2010.1080p.mkv"), make([]byte, 128*1024), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Heat.1995.mkv"), make([]byte, 128*1024), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Heat.1995.en.srt"), []byte("1"), 0o600))

	hashMatch := true
	inception := mock.MatchedBy(func(p opensubtitles.SearchSubtitlesParams) bool {
		return p.Moviehash != nil && p.Query != nil && *p.Query == "inception" &&
			p.Languages != nil && *p.Languages == "el,en"
	})
	mockClient.On("SearchSubtitles", mock.Anything, inception).Return(&opensubtitles.SearchSubtitlesResponse{
		Data: []opensubtitles.Subtitle{
			{Attributes: opensubtitles.SubtitleAttributes{Language: "en", Files: []opensubtitles.SubtitleFile{{FileID: 1, FileName: "first.srt"}}}},
			{Attributes: opensubtitles.SubtitleAttributes{Language: "el", MoviehashMatch: &hashMatch, Files: []opensubtitles.SubtitleFile{{FileID: 2, FileName: "exact.srt"}}}},
		},
	}, nil).Once()

	output, err := env.run("scan", dir, "--lang", "en,el")

	require.NoError(t, err)
	assert.Contains(t, output, "Inception.2010.1080p.mkv: [el] exact.srt (file id 2) hash match")
	assert.Contains(t, output, "Heat.1995.mkv: has subtitle Heat.1995.en.srt (skipped)")
	mockClient.AssertExpectations(t)
}

func TestScanCommand_AllReportsFailures(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Heat.1995.mkv"), make([]byte, 128*1024), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Heat.1995.srt"), []byte("1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Ronin.1998.mkv"), make([]byte, 128*1024), 0o600))

	heat := mock.MatchedBy(func(p opensubtitles.SearchSubtitlesParams) bool {
		return p.Query != nil && *p.Query == "heat"
	})
	ronin := mock.MatchedBy(func(p opensubtitles.SearchSubtitlesParams) bool {
		return p.Query != nil && *p.Query == "ronin"
	})
	mockClient.On("SearchSubtitles", mock.Anything, heat).Return(&opensubtitles.SearchSubtitlesResponse{}, nil).Once()
	mockClient.On("SearchSubtitles", mock.Anything, ronin).Return(nil, errors.New("boom")).Once()

	output, err := env.run("scan", dir, "--all")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 videos could not be matched")
	assert.Contains(t, output, "Heat.1995.mkv: no subtitles found")
	assert.Contains(t, output, "Ronin.1998.mkv: search failed: boom")
	mockClient.AssertExpectations(t)
}

func TestScanCommand_Empty(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)

	output, err := env.run("scan", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, output, "No video files found.")
	mockClient.AssertNotCalled(t, "SearchSubtitles", mock.Anything, mock.Anything)
}
