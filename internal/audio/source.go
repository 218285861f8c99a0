package audio

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// SourceInfo holds the metadata embedded in a source recording.
//
// It supplies defaults for values the user did not provide on the
// command line: the album title and artist fall back to the source
// file's own tags, and an embedded front cover can be reused as the
// cover art for the split tracks.
type SourceInfo struct {
	// Album is the album title from the source tags, if any.
	Album string

	// Artist is the artist name from the source tags, if any.
	Artist string

	// Title is the recording title from the source tags, if any.
	Title string

	// Year is the release year from the source tags. Zero means unknown.
	Year int

	// Picture holds the raw bytes of the embedded front cover, or nil.
	Picture []byte

	// PictureMIME is the MIME type of Picture, such as "image/jpeg".
	PictureMIME string
}

// ReadSourceInfo extracts embedded metadata from the recording at path.
//
// Recordings without tags, or with tags that cannot be parsed, yield a
// zero-valued SourceInfo rather than an error; the caller simply gets
// no defaults. An error is returned only when the file itself cannot
// be opened.
func ReadSourceInfo(path string) (*SourceInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source recording: %w", err)
	}
	defer f.Close()

	info := &SourceInfo{}

	m, err := tag.ReadFrom(f)
	if err != nil {
		return info, nil
	}

	info.Album = m.Album()
	info.Artist = m.Artist()
	info.Title = m.Title()
	info.Year = m.Year()

	if pic := m.Picture(); pic != nil {
		info.Picture = pic.Data
		info.PictureMIME = pic.MIMEType
	}

	return info, nil
}
