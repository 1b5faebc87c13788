// Package processor finds video files on disk and identifies them for subtitle searches.
package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/angelospk/opensubtitles-go"
	coreErrors "github.com/angelospk/opensubtitles-go/pkg/core/errors"
	"github.com/angelospk/opensubtitles-go/pkg/core/fileops"
	"github.com/angelospk/opensubtitles-go/pkg/core/release"
)

// Known video and subtitle extensions
var videoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true,
	".m4v": true, ".mpg": true, ".mpeg": true, ".ts": true, ".webm": true,
}
var subtitleExtensions = map[string]bool{
	".srt": true, ".sub": true, ".ssa": true, ".ass": true, ".vtt": true,
}

// DefaultWorkers is the number of files identified in parallel when none is given.
const DefaultWorkers = 4

// Video is a video file and what could be learned about it locally.
type Video struct {
	Path    string
	Size    int64
	Hash    string // empty when the file is too small to hash
	Release release.Info
	// Subtitle is a subtitle next to the video with a matching name, if any.
	Subtitle string
	Err      error
}

// SearchParams merges the hash with the release hints.
func (v Video) SearchParams() opensubtitles.SearchSubtitlesParams {
	params := v.Release.SearchParams()
	if v.Hash != "" {
		params.Moviehash = opensubtitles.String(v.Hash)
	}
	if v.Release.Language != "" {
		params.Languages = opensubtitles.String(v.Release.Language)
	}
	return params
}

// Processor scans directories and identifies the videos it finds.
type Processor struct {
	logger  *log.Logger
	workers int
}

// NewProcessor creates a new Processor instance.
func NewProcessor(logger *log.Logger, workers int) *Processor {
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stderr)
		logger.SetLevel(log.InfoLevel)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Processor{
		logger:  logger,
		workers: workers,
	}
}

// ScanDirectoryResult holds the lists of video and subtitle files found.
type ScanDirectoryResult struct {
	VideoFiles    []string
	SubtitleFiles []string
}

// ScanDirectory scans a directory for video and subtitle files, descending
// into subdirectories only when recursive is set. Both lists are sorted.
func (p *Processor) ScanDirectory(ctx context.Context, rootPath string, recursive bool) (*ScanDirectoryResult, error) {
	result := &ScanDirectoryResult{}

	err := filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			p.logger.Warnf("Error accessing path %q: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != rootPath && !recursive {
				p.logger.Debugf("Skipping directory (not recursive): %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if videoExtensions[ext] {
			result.VideoFiles = append(result.VideoFiles, path)
		} else if subtitleExtensions[ext] {
			result.SubtitleFiles = append(result.SubtitleFiles, path)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Errorf("Error walking directory %q: %v", rootPath, err)
		return nil, err
	}

	sort.Strings(result.VideoFiles)
	sort.Strings(result.SubtitleFiles)
	p.logger.Infof("Scan complete. Found %d video files and %d subtitle files in %s (Recursive: %t)",
		len(result.VideoFiles), len(result.SubtitleFiles), rootPath, recursive)
	return result, nil
}

// IdentifyFile hashes a video and parses its name. An embedded title tag
// replaces the parsed title. Files too small to hash are identified by name only.
func (p *Processor) IdentifyFile(path string) (Video, error) {
	v := Video{Path: path}

	hash, size, err := fileops.CalculateOSDbHash(path)
	switch {
	case err == nil:
		v.Hash = hash
	case errors.Is(err, coreErrors.ErrFileTooSmall):
		p.logger.WithField("file", path).Warn("File is too small to hash, searching by name only")
	default:
		return v, err
	}
	v.Size = size

	v.Release = release.Parse(path)
	if tags, err := fileops.ReadTags(path); err == nil && strings.TrimSpace(tags.Title) != "" {
		v.Release.Title = strings.TrimSpace(tags.Title)
		if tags.Year > 0 && v.Release.Year == 0 {
			v.Release.Year = tags.Year
		}
	}
	return v, nil
}

// Identify runs IdentifyFile over the scanned videos on the worker pool.
// The result keeps the scan order; per-file failures are reported in Video.Err.
func (p *Processor) Identify(ctx context.Context, scan *ScanDirectoryResult) ([]Video, error) {
	videos := make([]Video, len(scan.VideoFiles))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := scan.VideoFiles[i]
				v, err := p.IdentifyFile(path)
				if err != nil {
					p.logger.Warnf("Failed to identify %s: %v", filepath.Base(path), err)
					v.Err = err
				}
				v.Subtitle = FindMatchingSubtitle(path, scan.SubtitleFiles)
				videos[i] = v
			}
		}()
	}

	var err error
feed:
	for i := range scan.VideoFiles {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return videos, nil
}

// IdentifyDirectory scans rootPath and identifies every video found.
func (p *Processor) IdentifyDirectory(ctx context.Context, rootPath string, recursive bool) ([]Video, error) {
	scan, err := p.ScanDirectory(ctx, rootPath, recursive)
	if err != nil {
		return nil, err
	}
	return p.Identify(ctx, scan)
}

// FindMatchingSubtitle returns the subtitle in the video's directory whose name
// is the video's name, optionally followed by a language tag (Movie.en.srt).
func FindMatchingSubtitle(videoPath string, subtitles []string) string {
	dir := filepath.Dir(videoPath)
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	for _, sub := range subtitles {
		if filepath.Dir(sub) != dir {
			continue
		}
		subStem := strings.TrimSuffix(filepath.Base(sub), filepath.Ext(sub))
		if strings.EqualFold(subStem, stem) {
			return sub
		}
		if i := strings.LastIndex(subStem, "."); i > 0 && strings.EqualFold(subStem[:i], stem) {
			return sub
		}
	}
	return ""
}
