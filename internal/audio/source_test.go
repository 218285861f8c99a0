package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/album-splitter/internal/model"
)

func TestReadSourceInfo_TaggedRecording(t *testing.T) {
	// Produce a tagged file with the package's own tagger, then read it
	// back through the independent tag reader.
	album := testAlbum(t.TempDir(), 600)
	album.Artist = "Tape Artist"
	album.Title = "Tape Album"
	album.Year = 2019

	track := model.NewTrack(album, 1, "Full Recording", 0, model.EndOfRecording, testTrackConfig())
	writeCutTrack(t, track)

	tagger := NewTagger(DefaultTagConfig())
	if err := tagger.SaveTags(track, album, fakeJPEG); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	info, err := ReadSourceInfo(track.Path)
	if err != nil {
		t.Fatalf("ReadSourceInfo() error = %v", err)
	}

	if info.Album != "Tape Album" {
		t.Errorf("Album = %q, want %q", info.Album, "Tape Album")
	}
	if info.Artist != "Tape Artist" {
		t.Errorf("Artist = %q, want %q", info.Artist, "Tape Artist")
	}
	if info.Title != "Full Recording" {
		t.Errorf("Title = %q, want %q", info.Title, "Full Recording")
	}
	if info.Year != 2019 {
		t.Errorf("Year = %d, want 2019", info.Year)
	}
	if !bytes.Equal(info.Picture, fakeJPEG) {
		t.Error("Picture differs from the embedded artwork")
	}
	if info.PictureMIME != "image/jpeg" {
		t.Errorf("PictureMIME = %q, want %q", info.PictureMIME, "image/jpeg")
	}
}

func TestReadSourceInfo_UntaggedRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.mp3")
	if err := os.WriteFile(path, buildFrames(5), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	info, err := ReadSourceInfo(path)
	if err != nil {
		t.Fatalf("ReadSourceInfo() error = %v", err)
	}

	if info.Album != "" || info.Artist != "" || info.Title != "" || info.Year != 0 {
		t.Errorf("info = %+v, want zero values", info)
	}
	if info.Picture != nil {
		t.Error("Picture != nil, want none")
	}
}

func TestReadSourceInfo_MissingFile(t *testing.T) {
	if _, err := ReadSourceInfo(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Fatal("ReadSourceInfo() error = nil, want an error")
	}
}
