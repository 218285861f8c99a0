package split

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/handiism/album-splitter/internal/audio"
	"github.com/handiism/album-splitter/internal/config"
	"github.com/handiism/album-splitter/internal/http"
	ioutils "github.com/handiism/album-splitter/internal/io"
	"github.com/handiism/album-splitter/internal/model"
	"github.com/handiism/album-splitter/internal/tracklist"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a splitting progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Request describes one splitting job: which recording to split, where
// the timestamp listing lives, and the metadata to stamp on the tracks.
//
// AlbumTitle and Artist are optional; empty values fall back to the
// source recording's own tags, and the album title further falls back
// to the source file name.
type Request struct {
	// SourcePath is the MP3 recording to split.
	SourcePath string

	// ConfigPath is the timestamp listing describing the tracks.
	ConfigPath string

	// AlbumTitle is the album title for tags and file naming. Optional.
	AlbumTitle string

	// Artist is the artist name for tags and file naming. Optional.
	Artist string

	// Composer is stamped on every track when set. Optional.
	Composer string

	// DiscNumber and TotalDiscs describe the disc this recording
	// belongs to. Zero means not set.
	DiscNumber int
	TotalDiscs int

	// CoverSource locates cover art: a local file path or an HTTP(S)
	// URL. Optional; when empty, artwork embedded in the source
	// recording is used for tag embedding if present.
	CoverSource string
}

// Manager coordinates splitting one recording into tagged tracks.
//
// Use it in two phases: Initialize parses the timestamp listing and
// indexes the recording's frames, after which the planned tracks can be
// inspected; StartExport then cuts, tags, and writes the tracks.
type Manager struct {
	settings     *config.Settings
	httpClient   *http.Client
	tagger       *audio.Tagger
	imageService *ioutils.ImageService
	playlist     *audio.PlaylistCreator

	request    Request
	album      *model.Album
	index      *audio.FrameIndex
	slicer     *audio.Slicer
	sourceInfo *audio.SourceInfo

	totalBytes   int64
	writtenBytes int64
	totalFiles   int32
	splitFiles   int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new split Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	tagConfig := audio.DefaultTagConfig()
	tagConfig.ModifyTags = settings.ModifyTags

	return &Manager{
		settings:     settings,
		httpClient:   http.NewClient(),
		tagger:       audio.NewTagger(tagConfig),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Initialize indexes the source recording and parses the timestamp
// listing into the planned album.
//
// After a successful Initialize the planned tracks can be inspected via
// Album, AlbumSummary, and TrackSummaries without anything having been
// written yet.
func (m *Manager) Initialize(ctx context.Context, req Request) error {
	m.request = req

	m.progress(ProgressEvent{Message: fmt.Sprintf("Indexing frames: %s", filepath.Base(req.SourcePath)), Level: LevelVerbose})

	f, err := os.Open(req.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source recording: %w", err)
	}
	index, err := audio.IndexFrames(ctx, f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", filepath.Base(req.SourcePath), err)
	}

	info, err := audio.ReadSourceInfo(req.SourcePath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(req.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	albumTitle := req.AlbumTitle
	if albumTitle == "" {
		albumTitle = info.Album
	}
	if albumTitle == "" {
		base := filepath.Base(req.SourcePath)
		albumTitle = strings.TrimSuffix(base, filepath.Ext(base))
	}

	artist := req.Artist
	if artist == "" {
		artist = info.Artist
	}

	outputPath := m.settings.OutputPath
	if outputPath == "" {
		outputPath = filepath.Dir(req.SourcePath)
	}
	pathCfg := m.settings.ToPathConfig(outputPath)

	parser := tracklist.NewParser(pathCfg, m.settings.ToTrackConfig())
	album, err := parser.ParseTracklist(lines, index.TotalSeconds(), tracklist.Meta{
		Album:       albumTitle,
		Artist:      artist,
		Composer:    req.Composer,
		CoverSource: req.CoverSource,
		DiscNumber:  req.DiscNumber,
		TotalDiscs:  req.TotalDiscs,
	})
	if err != nil {
		return err
	}
	album.Year = info.Year

	m.album = album
	m.index = index
	m.slicer = audio.NewSlicer(req.SourcePath, index)
	m.sourceInfo = info
	m.playlist = audio.NewPlaylistCreator(pathCfg.PlaylistFormat, m.settings.M3UExtended)

	m.calculateTotals()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Recording is %s long (%d frames)", formatTime(index.TotalSeconds()), index.FrameCount()), Level: LevelVerbose})
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d tracks in %s", len(album.Tracks), filepath.Base(req.ConfigPath)), Level: LevelInfo})

	return nil
}

// StartExport cuts all planned tracks out of the source recording,
// tags them, and optionally saves cover art and a playlist.
//
// Tracks are cut concurrently, limited by MaxConcurrentTracks. A track
// that fails is reported through the progress callback and skipped; the
// remaining tracks still get written.
func (m *Manager) StartExport(ctx context.Context) error {
	if m.album == nil {
		return errors.New("manager is not initialized")
	}

	if err := ioutils.EnsureDir(m.album.Path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	artwork := m.prepareArtwork(ctx)

	// The derived context is canceled once Wait returns, so keep the
	// caller's context around for the post-Wait work.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentTracks)

	var successCount int32
	for _, track := range m.album.Tracks {
		g.Go(func() error {
			if err := m.exportTrack(gctx, track, artwork); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error exporting %s: %v", track.Title, err), Level: LevelError})
				return nil // continue with other tracks
			}
			atomic.AddInt32(&successCount, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if m.settings.CreatePlaylist {
		content := m.playlist.CreatePlaylist(m.album)
		if err := ioutils.WriteFile(ctx, m.album.PlaylistPath, []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist: %s", filepath.Base(m.album.PlaylistPath)), Level: LevelSuccess})
		}
	}

	if int(successCount) == len(m.album.Tracks) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully split %s into %d tracks", m.album.Title, len(m.album.Tracks)), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s, some tracks failed", m.album.Title), Level: LevelWarning})
	}

	return nil
}

// GetProgress returns current export progress.
func (m *Manager) GetProgress() (written, total int64, filesSplit, filesTotal int32) {
	return atomic.LoadInt64(&m.writtenBytes), m.totalBytes,
		atomic.LoadInt32(&m.splitFiles), m.totalFiles
}

// Album returns the planned album, or nil before Initialize.
func (m *Manager) Album() *model.Album {
	return m.album
}

// AlbumSummary returns a one-line description of the planned album.
func (m *Manager) AlbumSummary() string {
	if m.album == nil {
		return ""
	}

	name := m.album.Title
	if m.album.Artist != "" {
		name = m.album.Artist + " - " + name
	}
	return fmt.Sprintf("%s (%d tracks, %s)", name, len(m.album.Tracks), formatTime(m.album.TotalSeconds))
}

// TrackSummaries returns one line per planned track, covering its
// number, time range, and title.
func (m *Manager) TrackSummaries() []string {
	if m.album == nil {
		return nil
	}

	summaries := make([]string, len(m.album.Tracks))
	for i, track := range m.album.Tracks {
		end := "end"
		if track.End != model.EndOfRecording {
			end = formatTime(track.End)
		}
		summaries[i] = fmt.Sprintf("%02d  %s - %s  %s", track.Number, formatTime(track.Start), end, track.Title)
	}
	return summaries
}

// calculateTotals precomputes the bytes and files to be written, so
// that progress can be reported against a fixed denominator.
func (m *Manager) calculateTotals() {
	m.totalBytes = 0
	m.totalFiles = 0

	for _, track := range m.album.Tracks {
		m.totalFiles++
		start, end := m.slicer.CutRange(track)
		m.totalBytes += end - start
	}

	if m.album.HasCover() && (m.settings.SaveCoverArtInTags || m.settings.SaveCoverArtInFolder) {
		m.totalFiles++
	}
}

// exportTrack cuts a single track and tags it.
func (m *Manager) exportTrack(ctx context.Context, track *model.Track, artwork []byte) error {
	written, err := m.slicer.Cut(ctx, track)
	if err != nil {
		return err
	}

	atomic.AddInt64(&m.writtenBytes, written)
	atomic.AddInt32(&m.splitFiles, 1)

	if m.settings.ModifyTags || (m.settings.SaveCoverArtInTags && artwork != nil) {
		if err := m.tagger.SaveTags(track, m.album, artwork); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", track.Title, err), Level: LevelWarning})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Exported: %s", filepath.Base(track.Path)), Level: LevelVerbose})
	return nil
}

// prepareArtwork loads the cover art, saves it next to the tracks if
// configured, and returns the bytes to embed in tags. Returns nil when
// there is no artwork or embedding is disabled.
func (m *Manager) prepareArtwork(ctx context.Context) []byte {
	if !m.settings.SaveCoverArtInTags && !m.settings.SaveCoverArtInFolder {
		return nil
	}

	raw := m.loadCover(ctx)
	if raw == nil {
		return nil
	}

	if m.settings.SaveCoverArtInFolder && m.album.HasCover() {
		folderArt := m.processImage(ctx, raw, m.settings.CoverArtInFolderResize, m.settings.CoverArtInFolderMaxSize)
		if err := ioutils.WriteFile(ctx, m.album.ArtworkPath, folderArt); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving cover art: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Saved cover art: %s", filepath.Base(m.album.ArtworkPath)), Level: LevelVerbose})
		}
	}

	if !m.settings.SaveCoverArtInTags {
		return nil
	}
	return m.processImage(ctx, raw, m.settings.CoverArtInTagsResize, m.settings.CoverArtInTagsMaxSize)
}

// loadCover fetches the cover art bytes from the configured source, or
// falls back to artwork embedded in the source recording.
func (m *Manager) loadCover(ctx context.Context) []byte {
	if m.album.HasCover() {
		source := m.album.CoverSource

		var data []byte
		var err error
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			data, err = m.downloadCover(ctx, source)
		} else {
			data, err = os.ReadFile(source)
		}

		if err == nil {
			atomic.AddInt32(&m.splitFiles, 1)
			return data
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error loading cover art: %v", err), Level: LevelWarning})
	}

	if m.sourceInfo != nil && m.sourceInfo.Picture != nil {
		m.progress(ProgressEvent{Message: "Using cover art embedded in the source recording", Level: LevelVerbose})
		return m.sourceInfo.Picture
	}
	return nil
}

// downloadCover fetches remote cover art, retrying on failure.
func (m *Manager) downloadCover(ctx context.Context, url string) ([]byte, error) {
	retries := m.settings.CoverDownloadMaxRetries
	if retries < 1 {
		retries = 1
	}

	var data []byte
	var err error
	for tries := 0; tries < retries; tries++ {
		data, err = m.httpClient.DownloadBytes(ctx, url)
		if err == nil {
			return data, nil
		}
		if tries+1 < retries {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Retrying cover art download (%d/%d)", tries+2, retries), Level: LevelWarning})
			m.waitForRetry(ctx)
		}
	}
	return nil, err
}

// processImage applies the configured resize/convert pipeline. If the
// image cannot be processed the original bytes are used unchanged.
// Resizing always re-encodes as JPEG, so it implies conversion.
func (m *Manager) processImage(ctx context.Context, data []byte, resize bool, maxSize int) []byte {
	if resize {
		resized, err := m.imageService.ResizeImage(ctx, data, maxSize)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error resizing cover art: %v", err), Level: LevelWarning})
			return data
		}
		return resized
	}

	if m.settings.ConvertCoverArtToJPG {
		converted, err := m.imageService.ConvertToJPEG(ctx, data)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error converting cover art: %v", err), Level: LevelWarning})
			return data
		}
		return converted
	}

	return data
}

func (m *Manager) waitForRetry(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(m.settings.CoverDownloadRetryCooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// formatTime renders whole seconds as MM:SS, or H:MM:SS past an hour.
// Unknown (negative) values render as a question mark.
func formatTime(seconds int) string {
	if seconds < 0 {
		return "?"
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
