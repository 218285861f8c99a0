package audio

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// frameSize is the length in bytes of one 128 kbps, 44.1 kHz MPEG-1
// Layer III frame: 144 * 128000 / 44100, truncated.
const frameSize = 417

// buildFrames returns n consecutive silent MPEG-1 Layer III frames
// (128 kbps, 44.1 kHz). Each frame lasts about 26.12 ms, so playback
// time accrues at roughly 38 frames per second.
func buildFrames(n int) []byte {
	frame := make([]byte, frameSize)
	frame[0] = 0xFF // frame sync
	frame[1] = 0xFB // MPEG-1 Layer III, no CRC
	frame[2] = 0x90 // 128 kbps, 44.1 kHz, no padding

	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.Write(frame)
	}
	return buf.Bytes()
}

// buildID3v2 returns a minimal ID3v2.3 tag with the given payload size.
// The payload contains a false frame sync, the way embedded artwork
// often does, to prove that tag bytes are never decoded as audio.
func buildID3v2(payloadSize int) []byte {
	tag := make([]byte, 10+payloadSize)
	copy(tag, "ID3")
	tag[3] = 3 // v2.3.0
	tag[6] = byte(payloadSize >> 21 & 0x7f)
	tag[7] = byte(payloadSize >> 14 & 0x7f)
	tag[8] = byte(payloadSize >> 7 & 0x7f)
	tag[9] = byte(payloadSize & 0x7f)
	if payloadSize >= 14 {
		copy(tag[20:], []byte{0xFF, 0xFB, 0x90, 0x00})
	}
	return tag
}

func TestIndexFrames(t *testing.T) {
	data := buildFrames(100)

	index, err := IndexFrames(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("IndexFrames() error = %v", err)
	}

	if index.FrameCount() != 100 {
		t.Errorf("FrameCount() = %d, want 100", index.FrameCount())
	}
	if index.Start() != 0 {
		t.Errorf("Start() = %d, want 0", index.Start())
	}
	if index.End() != int64(len(data)) {
		t.Errorf("End() = %d, want %d", index.End(), len(data))
	}

	// 100 frames of 1152 samples at 44.1 kHz is a hair over 2.6 seconds.
	if d := index.TotalDuration(); d < 2600*time.Millisecond || d > 2625*time.Millisecond {
		t.Errorf("TotalDuration() = %v, want about 2.61s", d)
	}
	if s := index.TotalSeconds(); s != 2 {
		t.Errorf("TotalSeconds() = %d, want 2", s)
	}

	for i := 1; i < len(index.offsets); i++ {
		if index.offsets[i] != index.offsets[i-1]+frameSize {
			t.Fatalf("offsets[%d] = %d, want %d", i, index.offsets[i], index.offsets[i-1]+frameSize)
		}
	}
}

func TestIndexFrames_SkipsID3v2(t *testing.T) {
	tag := buildID3v2(64)
	data := append(tag, buildFrames(40)...)

	index, err := IndexFrames(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("IndexFrames() error = %v", err)
	}

	if index.Start() != int64(len(tag)) {
		t.Errorf("Start() = %d, want %d (first byte after the tag)", index.Start(), len(tag))
	}
	if index.FrameCount() != 40 {
		t.Errorf("FrameCount() = %d, want 40", index.FrameCount())
	}
	if index.End() != int64(len(data)) {
		t.Errorf("End() = %d, want %d", index.End(), len(data))
	}
}

func TestIndexFrames_ExcludesTrailingJunk(t *testing.T) {
	audioData := buildFrames(40)

	// An ID3v1 tag is 128 bytes starting with "TAG".
	junk := make([]byte, 128)
	copy(junk, "TAG")
	data := append(append([]byte{}, audioData...), junk...)

	index, err := IndexFrames(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("IndexFrames() error = %v", err)
	}

	if index.FrameCount() != 40 {
		t.Errorf("FrameCount() = %d, want 40", index.FrameCount())
	}
	if index.End() != int64(len(audioData)) {
		t.Errorf("End() = %d, want %d (junk excluded)", index.End(), len(audioData))
	}
}

func TestIndexFrames_NoFrames(t *testing.T) {
	_, err := IndexFrames(context.Background(), strings.NewReader("definitely not an mp3"))
	if !errors.Is(err, ErrNoFrames) {
		t.Fatalf("IndexFrames() error = %v, want ErrNoFrames", err)
	}
}

func TestIndexFrames_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := IndexFrames(ctx, bytes.NewReader(buildFrames(3)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("IndexFrames() error = %v, want context.Canceled", err)
	}
}

func TestBoundaryOffset(t *testing.T) {
	index, err := IndexFrames(context.Background(), bytes.NewReader(buildFrames(100)))
	if err != nil {
		t.Fatalf("IndexFrames() error = %v", err)
	}

	tests := []struct {
		name    string
		seconds int
		want    int64
	}{
		{"negative clamps to first frame", -5, 0},
		{"zero is the first frame", 0, 0},
		// 1s falls inside frame 38, so the boundary snaps forward to frame 39.
		{"snaps forward to the next frame", 1, 39 * frameSize},
		{"past the end clamps to the audio end", 10, 100 * frameSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := index.BoundaryOffset(tt.seconds); got != tt.want {
				t.Errorf("BoundaryOffset(%d) = %d, want %d", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestBoundaryOffset_Monotonic(t *testing.T) {
	index, err := IndexFrames(context.Background(), bytes.NewReader(buildFrames(200)))
	if err != nil {
		t.Fatalf("IndexFrames() error = %v", err)
	}

	prev := int64(-1)
	for s := 0; s <= 6; s++ {
		off := index.BoundaryOffset(s)
		if off < prev {
			t.Fatalf("BoundaryOffset(%d) = %d, smaller than the previous boundary %d", s, off, prev)
		}
		prev = off
	}
}
