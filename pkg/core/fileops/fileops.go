// Package fileops inspects local video files for subtitle lookups: the
// OpenSubtitles movie hash and whatever tags the container carries.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// MediaTags holds the embedded tags of a media file that help identify it.
type MediaTags struct {
	Format   tag.Format
	FileType tag.FileType
	Title    string
	Album    string
	Artist   string
	Year     int
	Comment  string
}

// ReadTags reads the embedded tags of filePath. Files without readable tags
// return an error wrapping tag.ErrNoTagsFound.
func ReadTags(filePath string) (*MediaTags, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	m, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags from '%s' (%s): %w", filePath, filepath.Ext(filePath), err)
	}

	return &MediaTags{
		Format:   m.Format(),
		FileType: m.FileType(),
		Title:    m.Title(),
		Album:    m.Album(),
		Artist:   m.Artist(),
		Year:     m.Year(),
		Comment:  m.Comment(),
	}, nil
}
