package audio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/album-splitter/internal/model"
)

func testAlbum(dir string, totalSeconds int) *model.Album {
	cfg := &model.PathConfig{
		OutputPath:             dir,
		CoverArtFileNameFormat: "cover",
		PlaylistFileNameFormat: "{album}",
		PlaylistFormat:         model.PlaylistFormatM3U,
	}
	return model.NewAlbum("Artist", "Album", "", totalSeconds, cfg)
}

func testTrackConfig() *model.TrackConfig {
	return &model.TrackConfig{FileNameFormat: "{tracknum} {title}.mp3"}
}

// writeRecording writes a synthetic recording into dir and indexes it.
func writeRecording(t *testing.T, dir string, data []byte) (string, *FrameIndex) {
	t.Helper()

	path := filepath.Join(dir, "recording.mp3")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	index, err := IndexFrames(context.Background(), f)
	if err != nil {
		t.Fatalf("IndexFrames() error = %v", err)
	}
	return path, index
}

func TestSlicer_CutsAreContiguous(t *testing.T) {
	dir := t.TempDir()

	// A tag up front proves the cuts cover only the audio range.
	data := append(buildID3v2(64), buildFrames(200)...)
	sourcePath, index := writeRecording(t, dir, data)
	slicer := NewSlicer(sourcePath, index)

	album := testAlbum(dir, index.TotalSeconds())
	cfg := testTrackConfig()
	tracks := []*model.Track{
		model.NewTrack(album, 1, "One", 0, 2, cfg),
		model.NewTrack(album, 2, "Two", 2, 4, cfg),
		model.NewTrack(album, 3, "Three", 4, model.EndOfRecording, cfg),
	}

	var combined []byte
	var written int64
	for _, track := range tracks {
		n, err := slicer.Cut(context.Background(), track)
		if err != nil {
			t.Fatalf("Cut(%q) error = %v", track.Title, err)
		}
		if n == 0 {
			t.Fatalf("Cut(%q) wrote 0 bytes", track.Title)
		}
		written += n

		cut, err := os.ReadFile(track.Path)
		if err != nil {
			t.Fatalf("ReadFile(%q) error = %v", track.Path, err)
		}
		if cut[0] != 0xFF {
			t.Errorf("track %q does not begin on a frame boundary", track.Title)
		}
		combined = append(combined, cut...)
	}

	audioRange := data[index.Start():index.End()]
	if written != int64(len(audioRange)) {
		t.Errorf("total bytes written = %d, want %d", written, len(audioRange))
	}
	if !bytes.Equal(combined, audioRange) {
		t.Error("concatenated cuts differ from the source audio range")
	}
}

func TestSlicer_CutRange_EndOfRecording(t *testing.T) {
	dir := t.TempDir()
	sourcePath, index := writeRecording(t, dir, buildFrames(100))
	slicer := NewSlicer(sourcePath, index)

	album := testAlbum(dir, index.TotalSeconds())
	track := model.NewTrack(album, 1, "Tail", 1, model.EndOfRecording, testTrackConfig())

	_, end := slicer.CutRange(track)
	if end != index.End() {
		t.Errorf("end = %d, want audio end %d", end, index.End())
	}
}

func TestSlicer_Cut_InvertedRangeIsEmpty(t *testing.T) {
	dir := t.TempDir()
	sourcePath, index := writeRecording(t, dir, buildFrames(200))
	slicer := NewSlicer(sourcePath, index)

	album := testAlbum(dir, index.TotalSeconds())
	track := model.NewTrack(album, 1, "Backwards", 3, 1, testTrackConfig())

	start, end := slicer.CutRange(track)
	if start != end {
		t.Fatalf("CutRange() = [%d, %d), want an empty range", start, end)
	}

	written, err := slicer.Cut(context.Background(), track)
	if err != nil {
		t.Fatalf("Cut() error = %v", err)
	}
	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}

	fi, err := os.Stat(track.Path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if fi.Size() != 0 {
		t.Errorf("file size = %d, want 0", fi.Size())
	}
}

func TestSlicer_Cut_Canceled(t *testing.T) {
	dir := t.TempDir()
	sourcePath, index := writeRecording(t, dir, buildFrames(50))
	slicer := NewSlicer(sourcePath, index)

	album := testAlbum(dir, index.TotalSeconds())
	track := model.NewTrack(album, 1, "One", 0, 1, testTrackConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := slicer.Cut(ctx, track); !errors.Is(err, context.Canceled) {
		t.Fatalf("Cut() error = %v, want context.Canceled", err)
	}
}
