package audio

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bogem/id3v2"
	"github.com/handiism/album-splitter/internal/model"
)

// TagEditAction is the per-field tagging policy.
type TagEditAction int

const (
	// TagEmpty removes the field.
	TagEmpty TagEditAction = iota

	// TagModify writes the value derived from the album and track.
	TagModify

	// TagDoNotModify leaves any existing value unchanged.
	TagDoNotModify
)

// TagConfig selects an action for each supported ID3 field.
//
// Freshly cut tracks carry no tags at all: the cut range starts after
// the source recording's ID3v2 tag and ends before any trailing ID3v1
// tag. So in practice TagModify writes a field and TagDoNotModify
// leaves it absent.
type TagConfig struct {
	// ModifyTags is the master switch. When false no text fields
	// are touched, whatever the per-field actions say.
	ModifyTags bool

	Artist      TagEditAction // TPE1, lead artist
	AlbumArtist TagEditAction // TPE2, album artist
	Album       TagEditAction // TALB
	Composer    TagEditAction // TCOM
	TrackTitle  TagEditAction // TIT2
	TrackNumber TagEditAction // TRCK

	// DiscNumber controls TPOS, written as "disc" or "disc/total".
	DiscNumber TagEditAction

	// Year controls the release year, written to both TYER (read by
	// ID3v2.3 players) and TDRC (ID3v2.4).
	Year TagEditAction

	// Comments controls the COMM frames.
	Comments TagEditAction
}

// DefaultTagConfig writes every field that has a value and clears
// comments. Optional fields without a value, like an unset composer,
// stay absent rather than being written empty.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Album:       TagModify,
		Composer:    TagModify,
		Year:        TagModify,
		TrackNumber: TagModify,
		DiscNumber:  TagModify,
		TrackTitle:  TagModify,
		Comments:    TagEmpty,
	}
}

// Tagger stamps split track files with ID3v2 metadata: the album
// fields shared by every track, the track's own number and title, and
// optionally the cover art as an attached picture.
type Tagger struct {
	config *TagConfig
}

// NewTagger returns a Tagger applying config, or DefaultTagConfig
// when config is nil.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// textFrame pairs one ID3 text frame with its configured action and
// the value derived from the album and track.
type textFrame struct {
	id     string
	action TagEditAction
	value  string
}

// SaveTags writes the configured ID3 fields to the track's file and,
// when artwork bytes are given, embeds them as the front cover. The
// audio data itself is never modified.
func (t *Tagger) SaveTags(track *model.Track, album *model.Album, artwork []byte) error {
	tag, err := id3v2.Open(track.Path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open track for tagging: %w", err)
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.applyTextFrames(tag, track, album)
	}

	if artwork != nil {
		t.embedCover(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}
	return nil
}

// applyTextFrames walks the per-field actions. TagModify with an
// empty value is the skip case that keeps unset optional fields
// absent from the tag.
func (t *Tagger) applyTextFrames(tag *id3v2.Tag, track *model.Track, album *model.Album) {
	cfg := t.config
	year := yearValue(album)

	frames := []textFrame{
		{"TIT2", cfg.TrackTitle, track.Title},
		{"TRCK", cfg.TrackNumber, strconv.Itoa(track.Number)},
		{"TPE1", cfg.Artist, album.Artist},
		{"TPE2", cfg.AlbumArtist, album.Artist},
		{"TALB", cfg.Album, album.Title},
		{"TCOM", cfg.Composer, album.Composer},
		{"TPOS", cfg.DiscNumber, discPosition(album)},
		{"TYER", cfg.Year, year},
		{"TDRC", cfg.Year, year},
	}

	for _, f := range frames {
		switch f.action {
		case TagEmpty:
			tag.DeleteFrames(f.id)
		case TagModify:
			if f.value != "" {
				tag.AddTextFrame(f.id, id3v2.EncodingUTF8, f.value)
			}
		}
	}

	if cfg.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// embedCover replaces any attached pictures with artwork as the front
// cover. The MIME type is sniffed from the image bytes.
func (t *Tagger) embedCover(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    http.DetectContentType(artwork),
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}

// discPosition renders the TPOS value, or "" when no disc metadata is
// set.
func discPosition(album *model.Album) string {
	if album.DiscNumber <= 0 && album.TotalDiscs <= 0 {
		return ""
	}
	pos := strconv.Itoa(album.DiscNumber)
	if album.TotalDiscs > 0 {
		pos += "/" + strconv.Itoa(album.TotalDiscs)
	}
	return pos
}

// yearValue renders the release year, or "" when unknown.
func yearValue(album *model.Album) string {
	if album.Year <= 0 {
		return ""
	}
	return strconv.Itoa(album.Year)
}
