package audio

import (
	"bytes"
	"os"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/album-splitter/internal/model"
)

// fakeJPEG carries a real JPEG signature so content sniffing works.
var fakeJPEG = append([]byte{0xFF, 0xD8, 0xFF}, []byte("fake jpeg data")...)

// writeCutTrack creates a tagless MP3 file the way the slicer would.
func writeCutTrack(t *testing.T, track *model.Track) {
	t.Helper()
	if err := os.WriteFile(track.Path, buildFrames(5), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func openTag(t *testing.T, path string) *id3v2.Tag {
	t.Helper()
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open() error = %v", err)
	}
	t.Cleanup(func() { tag.Close() })
	return tag
}

func TestTagger_SaveTags(t *testing.T) {
	album := testAlbum(t.TempDir(), 600)
	album.Artist = "The Artist"
	album.Title = "Live Set"
	album.Composer = "The Composer"
	album.DiscNumber = 1
	album.TotalDiscs = 2
	album.Year = 2021

	track := model.NewTrack(album, 3, "Song", 0, 10, testTrackConfig())
	writeCutTrack(t, track)

	tagger := NewTagger(DefaultTagConfig())
	if err := tagger.SaveTags(track, album, fakeJPEG); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	tag := openTag(t, track.Path)

	if tag.Artist() != "The Artist" {
		t.Errorf("Artist = %q, want %q", tag.Artist(), "The Artist")
	}
	if tag.Album() != "Live Set" {
		t.Errorf("Album = %q, want %q", tag.Album(), "Live Set")
	}
	if tag.Title() != "Song" {
		t.Errorf("Title = %q, want %q", tag.Title(), "Song")
	}

	textFrames := map[string]string{
		"TRCK": "3",
		"TPOS": "1/2",
		"TCOM": "The Composer",
		"TYER": "2021",
		"TDRC": "2021",
		"TPE2": "The Artist",
	}
	for id, want := range textFrames {
		if got := tag.GetTextFrame(id).Text; got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}

	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(pictures) != 1 {
		t.Fatalf("len(pictures) = %d, want 1", len(pictures))
	}
	pic, ok := pictures[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatalf("picture frame has type %T", pictures[0])
	}
	if pic.MimeType != "image/jpeg" {
		t.Errorf("MimeType = %q, want %q", pic.MimeType, "image/jpeg")
	}
	if !bytes.Equal(pic.Picture, fakeJPEG) {
		t.Error("embedded picture differs from the provided artwork")
	}

	// Tagging must leave the audio itself untouched.
	data, err := os.ReadFile(track.Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.HasSuffix(data, buildFrames(5)) {
		t.Error("audio data was modified by tagging")
	}
}

func TestTagger_SaveTags_OptionalFieldsSkipped(t *testing.T) {
	album := testAlbum(t.TempDir(), 600)
	album.Artist = ""

	track := model.NewTrack(album, 1, "Untitled", 0, 10, testTrackConfig())
	writeCutTrack(t, track)

	tagger := NewTagger(DefaultTagConfig())
	if err := tagger.SaveTags(track, album, nil); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	tag := openTag(t, track.Path)

	if tag.Album() != "Album" {
		t.Errorf("Album = %q, want %q", tag.Album(), "Album")
	}
	if got := tag.GetTextFrame("TRCK").Text; got != "1" {
		t.Errorf("TRCK = %q, want %q", got, "1")
	}

	// Unset artist, composer, disc, and year must stay absent.
	for _, id := range []string{"TPE1", "TPE2", "TCOM", "TPOS", "TYER", "TDRC"} {
		if got := tag.GetTextFrame(id).Text; got != "" {
			t.Errorf("%s = %q, want it absent", id, got)
		}
	}

	if pictures := tag.GetFrames(tag.CommonID("Attached picture")); len(pictures) != 0 {
		t.Errorf("len(pictures) = %d, want 0", len(pictures))
	}
}

func TestTagger_SaveTags_ModifyTagsDisabled(t *testing.T) {
	album := testAlbum(t.TempDir(), 600)
	track := model.NewTrack(album, 1, "Quiet", 0, 10, testTrackConfig())
	writeCutTrack(t, track)

	tagger := NewTagger(&TagConfig{ModifyTags: false})
	if err := tagger.SaveTags(track, album, nil); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	tag := openTag(t, track.Path)
	if tag.Title() != "" || tag.Album() != "" {
		t.Errorf("tag = %q / %q, want no fields written", tag.Title(), tag.Album())
	}
}
