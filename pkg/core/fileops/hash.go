package fileops

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	coreErrors "github.com/angelospk/opensubtitles-go/pkg/core/errors"
)

const (
	// osdbHashChunkSize is the size of the chunk read from the start and end of the file.
	osdbHashChunkSize = 65536 // 64 * 1024
)

// checksumBuffer sums the buffer as 64-bit little-endian words, wrapping on overflow.
func checksumBuffer(buf []byte) (sum uint64) {
	for i := 0; i+8 <= len(buf); i += 8 {
		sum += binary.LittleEndian.Uint64(buf[i : i+8])
	}
	return
}

// CalculateOSDbHash calculates the OpenSubtitles movie hash of a video file:
// the file size plus the word sums of its first and last 64 KiB, as 16 hex digits.
// The result is what SearchSubtitlesParams.Moviehash expects.
func CalculateOSDbHash(filePath string) (hash string, byteSize int64, err error) {
	file, err := os.Open(filePath)
	if err != nil {
		err = fmt.Errorf("failed to open file for hashing '%s': %w", filePath, err)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		err = fmt.Errorf("failed to stat file '%s': %w", filePath, err)
		return
	}

	byteSize = stat.Size()
	if byteSize < osdbHashChunkSize*2 {
		err = fmt.Errorf("'%s' (%d bytes): %w", filePath, byteSize, coreErrors.ErrFileTooSmall)
		return
	}

	head := make([]byte, osdbHashChunkSize)
	if _, err = io.ReadFull(file, head); err != nil {
		err = fmt.Errorf("failed to read start chunk from '%s': %w", filePath, err)
		return
	}

	tail := make([]byte, osdbHashChunkSize)
	if _, err = file.ReadAt(tail, byteSize-osdbHashChunkSize); err != nil {
		err = fmt.Errorf("failed to read end chunk from '%s': %w", filePath, err)
		return
	}

	sum := uint64(byteSize) + checksumBuffer(head) + checksumBuffer(tail)
	hash = fmt.Sprintf("%016x", sum)
	return
}
