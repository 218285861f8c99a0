package audio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tcolgate/mp3"
)

// ErrNoFrames is returned by IndexFrames when the stream contains no
// decodable MPEG audio frames.
var ErrNoFrames = errors.New("no mpeg audio frames found")

// FrameIndex maps playback time to byte offsets in an MP3 stream.
//
// MP3 files can only be cut at frame boundaries; cutting mid-frame
// produces an undecodable first frame and an audible glitch. FrameIndex
// records where every frame starts, both as a byte offset and as the
// playback time accumulated up to that frame, so that a cut point given
// in seconds can be snapped to the nearest following frame.
//
// Build an index once per source recording with IndexFrames, then query
// it with BoundaryOffset for each cut point.
//
// Example:
//
//	f, _ := os.Open("recording.mp3")
//	index, err := audio.IndexFrames(ctx, f)
//	if err != nil {
//	    return err
//	}
//	start := index.BoundaryOffset(195) // byte offset of 3:15
type FrameIndex struct {
	offsets  []int64         // byte offset of each frame start
	starts   []time.Duration // playback time at each frame start
	total    time.Duration   // playback time of all indexed frames
	audioEnd int64           // byte offset just past the last frame
}

// IndexFrames scans an MP3 stream and builds a FrameIndex.
//
// A leading ID3v2 tag is skipped before decoding so that false sync
// words inside tag data (usually embedded artwork) are never mistaken
// for frames. Scanning stops at the first position where no further
// frame can be decoded, so trailing garbage and ID3v1 tags are excluded
// from the indexed audio range.
//
// Returns ErrNoFrames if the stream contains no decodable frames.
func IndexFrames(ctx context.Context, r io.Reader) (*FrameIndex, error) {
	br := bufio.NewReader(r)

	base, err := skipID3v2(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}

	cr := &countingReader{r: br}
	dec := mp3.NewDecoder(cr)
	index := &FrameIndex{audioEnd: base}

	var frame mp3.Frame
	var skipped int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := cr.n
		if err := dec.Decode(&frame, &skipped); err != nil {
			// End of stream, or trailing bytes that do not form a frame.
			break
		}

		index.offsets = append(index.offsets, base+before+int64(skipped))
		index.starts = append(index.starts, index.total)
		index.total += frame.Duration()
		index.audioEnd = base + cr.n
	}

	if len(index.offsets) == 0 {
		return nil, ErrNoFrames
	}
	return index, nil
}

// BoundaryOffset returns the byte offset of the first frame that starts
// at or after the given playback second.
//
// Cut points before the first frame clamp to the start of the audio
// data; cut points past the end of the recording clamp to the end of
// the last frame. Adjacent tracks that share a boundary second resolve
// to the same offset, so consecutive cuts are gapless and overlap-free.
func (ix *FrameIndex) BoundaryOffset(seconds int) int64 {
	if seconds <= 0 {
		return ix.offsets[0]
	}

	target := time.Duration(seconds) * time.Second
	i := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] >= target
	})
	if i == len(ix.offsets) {
		return ix.audioEnd
	}
	return ix.offsets[i]
}

// FrameCount returns the number of indexed frames.
func (ix *FrameIndex) FrameCount() int {
	return len(ix.offsets)
}

// TotalDuration returns the playback time of all indexed frames.
func (ix *FrameIndex) TotalDuration() time.Duration {
	return ix.total
}

// TotalSeconds returns the playback time in whole seconds, rounded down.
func (ix *FrameIndex) TotalSeconds() int {
	return int(ix.total / time.Second)
}

// Start returns the byte offset of the first frame. For a recording
// with a leading ID3v2 tag this is the first byte after the tag.
func (ix *FrameIndex) Start() int64 {
	return ix.offsets[0]
}

// End returns the byte offset just past the last frame. Trailing bytes
// that are not MPEG audio, such as an ID3v1 tag, lie beyond End.
func (ix *FrameIndex) End() int64 {
	return ix.audioEnd
}

// skipID3v2 discards a leading ID3v2 tag, if present, and returns the
// number of bytes skipped.
func skipID3v2(br *bufio.Reader) (int64, error) {
	header, err := br.Peek(10)
	if len(header) < 10 {
		if err == nil || errors.Is(err, io.EOF) {
			return 0, nil // too short to carry a tag, let the decoder decide
		}
		return 0, err
	}

	if header[0] != 'I' || header[1] != 'D' || header[2] != '3' {
		return 0, nil
	}

	// The tag size is stored as a 28-bit synchsafe integer and excludes
	// the 10-byte header and the optional 10-byte footer.
	size := int64(header[6]&0x7f)<<21 |
		int64(header[7]&0x7f)<<14 |
		int64(header[8]&0x7f)<<7 |
		int64(header[9]&0x7f)
	total := size + 10
	if header[5]&0x10 != 0 {
		total += 10
	}

	if _, err := br.Discard(int(total)); err != nil {
		return 0, err
	}
	return total, nil
}

// countingReader tracks how many bytes have been consumed from the
// wrapped reader, which is how frame byte offsets are derived from the
// decoder's progress.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
