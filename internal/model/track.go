package model

import (
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/album-splitter/internal/io"
)

// EndOfRecording marks a track that runs to the end of the source
// recording. Use it as the end boundary of the final track.
const EndOfRecording = -1

// Track is one labeled slice of the source recording.
//
// Start and End are offsets into the recording in whole seconds; the
// slice covers [Start, End). A Track knows where its audio lives in
// the source and where its output file goes, but holds no audio data
// itself.
//
//	cfg := &TrackConfig{FileNameFormat: "{tracknum} {title}.mp3"}
//	track := NewTrack(album, 1, "Song Title", 0, 195, cfg)
//	// track.Path == "/music/Artist/Album/01 Song Title.mp3"
type Track struct {
	// Album is the album this track belongs to.
	Album *Album

	// Number is the 1-based track number.
	Number int

	// Title is the track title.
	Title string

	// Start is the offset of the track's first second.
	Start int

	// End is the offset just past the track's last second, or
	// EndOfRecording for the final track.
	End int

	// Path is the output file path for the split track.
	Path string
}

// TrackConfig holds the file name template for split tracks.
type TrackConfig struct {
	// FileNameFormat is the output file name template, extension
	// included. It supports the {tracknum}, {title}, {artist} and
	// {album} placeholders, for example "{tracknum} {title}.mp3".
	FileNameFormat string
}

// NewTrack builds a Track covering [start, end) of album's recording
// and computes its output path from the template in cfg.
//
// Pass EndOfRecording as end for the final track.
func NewTrack(album *Album, number int, title string, start, end int, cfg *TrackConfig) *Track {
	track := &Track{
		Album:  album,
		Number: number,
		Title:  title,
		Start:  start,
		End:    end,
	}

	name := track.expand(cfg.FileNameFormat)
	ext := filepath.Ext(name)
	track.Path = joinLimited(album.Path, strings.TrimSuffix(name, ext), ext)

	return track
}

// Duration returns the track length in whole seconds.
//
// For a track ending at EndOfRecording the length is derived from the
// album's TotalSeconds; if that is unknown too, Duration returns 0.
// A track whose boundaries are inverted also reports 0.
func (t *Track) Duration() int {
	end := t.End
	if end == EndOfRecording {
		if t.Album == nil || t.Album.TotalSeconds < 0 {
			return 0
		}
		end = t.Album.TotalSeconds
	}

	if d := end - t.Start; d > 0 {
		return d
	}
	return 0
}

// expand replaces the track-level placeholders of a file name
// template. The track number is zero-padded to two digits; text
// values are sanitized before insertion.
func (t *Track) expand(format string) string {
	return strings.NewReplacer(
		"{tracknum}", fmt.Sprintf("%02d", t.Number),
		"{title}", ioutils.SanitizeFileName(t.Title),
		"{artist}", ioutils.SanitizeFileName(t.Album.Artist),
		"{album}", ioutils.SanitizeFileName(t.Album.Title),
	).Replace(format)
}
