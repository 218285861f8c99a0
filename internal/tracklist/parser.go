package tracklist

import (
	"strings"

	"github.com/handiism/album-splitter/internal/model"
)

// Meta is the uniform metadata bundle applied to every track parsed from
// a config. None of these values are derived from the config text itself.
type Meta struct {
	// Album is the album title stamped on every track.
	Album string

	// Artist is the optional album artist. Empty string means not set.
	Artist string

	// Composer is the optional composer. Empty string means not set.
	Composer string

	// CoverSource is the optional cover art location: a local file path
	// or an HTTP(S) URL. Empty string means no cover art.
	CoverSource string

	// DiscNumber is the optional disc number. Zero means not set.
	DiscNumber int

	// TotalDiscs is the optional disc count. Zero means not set.
	TotalDiscs int
}

// Parser turns a pasted timestamp listing into an album of fully resolved
// tracks.
//
// Each non-empty config line names one track and the offset at which it
// starts. Two line grammars are accepted, tried in priority order:
//
//	01 - Intro - 00:00     (numbered: the line carries its track number)
//	00:00 - Intro          (timestamp-first: the track number is the line's
//	                        1-based position among non-empty lines)
//
// A track's end is the start of the following track; the final track ends
// at the supplied total duration of the recording.
//
// Example usage:
//
//	parser := NewParser(pathConfig, trackConfig)
//
//	data, _ := os.ReadFile("tracklist.txt")
//	lines := strings.Split(string(data), "\n")
//
//	album, err := parser.ParseTracklist(lines, totalSeconds, tracklist.Meta{
//	    Album:  "Live Set",
//	    Artist: "The Artist",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, track := range album.Tracks {
//	    fmt.Printf("%d. %s [%d-%d]\n", track.Number, track.Title, track.Start, track.End)
//	}
type Parser struct {
	pathConfig  *model.PathConfig
	trackConfig *model.TrackConfig
}

// NewParser creates a new Parser with the given configuration.
//
// The pathConfig and trackConfig are used to compute file paths for the
// parsed album and its tracks. These configs determine where the split
// files will be saved and how they will be named.
func NewParser(pathCfg *model.PathConfig, trackCfg *model.TrackConfig) *Parser {
	return &Parser{
		pathConfig:  pathCfg,
		trackConfig: trackCfg,
	}
}

// pendingTrack is one classified line before boundary resolution: its end
// offset is unknown until the next line (or the total duration) supplies it.
type pendingTrack struct {
	number int
	title  string
	start  int
}

// ParseTracklist parses raw config lines into an album of tracks with
// resolved start/end offsets.
//
// Lines are processed strictly in order. Empty (or whitespace-only) lines
// are skipped but still counted for error reporting. The parse happens in
// two phases:
//
//  1. Every non-empty line is classified against the accepted grammars and
//     its timestamp converted to seconds.
//  2. Each track's end is taken from the start of the following track; the
//     last track ends at totalSeconds.
//
// totalSeconds is the length of the source recording in whole seconds.
// Pass a negative value when the length is unknown; the final track's End
// is then model.EndOfRecording and downstream consumers must treat it as
// "until the end of the recording".
//
// Timestamps are not required to be increasing across lines. Out-of-order
// or duplicate timestamps are accepted and produce zero-length or inverted
// ranges; downstream slicing exports those tracks as empty.
//
// A config with no non-empty lines yields an album with zero tracks, not
// an error.
//
// Returns a nil album together with:
//   - *LineError, when a line matches neither grammar
//   - *TimestampError, when a matched timestamp cannot be converted
func (p *Parser) ParseTracklist(lines []string, totalSeconds int, meta Meta) (*model.Album, error) {
	entries, err := collectEntries(lines)
	if err != nil {
		return nil, err
	}

	album := model.NewAlbum(meta.Artist, meta.Album, meta.CoverSource, totalSeconds, p.pathConfig)
	album.Composer = meta.Composer
	album.DiscNumber = meta.DiscNumber
	album.TotalDiscs = meta.TotalDiscs

	for i, entry := range entries {
		end := model.EndOfRecording
		if i+1 < len(entries) {
			end = entries[i+1].start
		} else if totalSeconds >= 0 {
			end = totalSeconds
		}

		track := model.NewTrack(album, entry.number, entry.title, entry.start, end, p.trackConfig)
		album.Tracks = append(album.Tracks, track)
	}

	return album, nil
}

// collectEntries classifies every non-empty line and converts its
// timestamp, preserving file order.
//
// Line numbers reported in errors are 1-based and count empty lines. The
// fallback track number for timestamp-first lines counts non-empty lines
// only.
func collectEntries(lines []string) ([]pendingTrack, error) {
	var entries []pendingTrack
	ordinal := 0

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		ext, ok := classifyLine(line)
		if !ok {
			return nil, &LineError{Line: i + 1, Text: line}
		}
		ordinal++

		number := ext.number
		if !ext.hasNumber {
			number = ordinal
		}

		start, err := Seconds(ext.timestamp)
		if err != nil {
			return nil, err
		}

		entries = append(entries, pendingTrack{
			number: number,
			title:  ext.title,
			start:  start,
		})
	}

	return entries, nil
}
