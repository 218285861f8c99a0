package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.mp3", "normal-file.mp3"},
		{"file:with:colons.mp3", "filewithcolons.mp3"},
		{"file<with>brackets.mp3", "filewithbrackets.mp3"},
		{"file/with\\slashes.mp3", "filewithslashes.mp3"},
		{"file|with|pipes.mp3", "filewithpipes.mp3"},
		{"file?with*wildcards.mp3", "filewithwildcards.mp3"},
		{"file\"with\"quotes.mp3", "filewithquotes.mp3"},
		{"control\x01\x1fchars", "controlchars"},
		{"trailing dots...", "trailing dots"},
		{"trailing spaces   ", "trailing spaces"},
		{"inner   spaces stay", "inner   spaces stay"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playlist.m3u")
	content := []byte("#EXTM3U\n01 Intro.mp3\n")

	if err := WriteFile(context.Background(), path, content); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("file content = %q, want %q", got, content)
	}
}

func TestWriteFile_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playlist.m3u")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WriteFile(ctx, path, []byte("data")); err == nil {
		t.Fatal("WriteFile() with canceled context expected error, got none")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("WriteFile() with canceled context should not create the file")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "Artist", "Album")

	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("stat after EnsureDir: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir did not create a directory")
	}

	// Calling again on an existing directory must not fail
	if err := EnsureDir(nested); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}

func TestImageService_ResizeImage(t *testing.T) {
	svc := NewImageService()

	// 400x200 source image
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	resized, err := svc.ResizeImage(context.Background(), buf.Bytes(), 100)
	if err != nil {
		t.Fatalf("ResizeImage() error = %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("result format = %q, want %q", format, "jpeg")
	}
	if got := img.Bounds().Dx(); got != 100 {
		t.Errorf("width = %d, want 100", got)
	}
	if got := img.Bounds().Dy(); got != 50 {
		t.Errorf("height = %d, want 50", got)
	}
}

func TestImageService_ResizeImage_NoUpscale(t *testing.T) {
	svc := NewImageService()

	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	resized, err := svc.ResizeImage(context.Background(), buf.Bytes(), 100)
	if err != nil {
		t.Fatalf("ResizeImage() error = %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if got := img.Bounds().Dx(); got != 40 {
		t.Errorf("width = %d, want 40 (no upscaling)", got)
	}
}

func TestImageService_ConvertToJPEG(t *testing.T) {
	svc := NewImageService()

	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	converted, err := svc.ConvertToJPEG(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("ConvertToJPEG() error = %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(converted))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("result format = %q, want %q", format, "jpeg")
	}
}
