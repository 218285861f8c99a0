package audio

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/handiism/album-splitter/internal/model"
)

// Slicer cuts tracks out of a source MP3 recording.
//
// Cutting copies a byte range of the source file verbatim, with the
// range endpoints snapped to frame boundaries by the FrameIndex. The
// audio is never re-encoded, so splitting is lossless and fast.
//
// A Slicer holds no open file handles. Each Cut opens the source
// independently, so cuts may run concurrently.
//
// Example:
//
//	index, err := audio.IndexFrames(ctx, f)
//	if err != nil {
//	    return err
//	}
//	slicer := audio.NewSlicer("recording.mp3", index)
//	for _, track := range album.Tracks {
//	    if _, err := slicer.Cut(ctx, track); err != nil {
//	        log.Printf("failed to cut %s: %v", track.Title, err)
//	    }
//	}
type Slicer struct {
	sourcePath string
	index      *FrameIndex
}

// NewSlicer creates a Slicer for the recording at sourcePath, using an
// index previously built from the same file.
func NewSlicer(sourcePath string, index *FrameIndex) *Slicer {
	return &Slicer{
		sourcePath: sourcePath,
		index:      index,
	}
}

// CutRange returns the byte range [start, end) of the source file that
// covers the track.
//
// The track's start second snaps to the first frame at or after it, and
// the end second to the first frame at or after that, so adjacent
// tracks share a single boundary. A track ending at EndOfRecording runs
// to the end of the audio data. An inverted range collapses to an empty
// one rather than failing.
func (s *Slicer) CutRange(track *model.Track) (start, end int64) {
	start = s.index.BoundaryOffset(track.Start)

	if track.End == model.EndOfRecording {
		end = s.index.End()
	} else {
		end = s.index.BoundaryOffset(track.End)
	}

	if end < start {
		end = start
	}
	return start, end
}

// Cut writes the track's slice of the source recording to track.Path
// and returns the number of bytes written.
//
// The destination directory must already exist. An empty range produces
// an empty file.
func (s *Slicer) Cut(ctx context.Context, track *model.Track) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start, end := s.CutRange(track)

	src, err := os.Open(s.sourcePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source recording: %w", err)
	}
	defer src.Close()

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to seek source recording: %w", err)
	}

	dst, err := os.Create(track.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to create track file: %w", err)
	}

	written, err := io.CopyN(dst, src, end-start)
	if err != nil {
		dst.Close()
		return written, fmt.Errorf("failed to write track file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return written, fmt.Errorf("failed to write track file: %w", err)
	}
	return written, nil
}
