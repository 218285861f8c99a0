package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/handiism/album-splitter/internal/model"
)

// Settings holds every user-tunable option, persisted as JSON.
//
// All fields have working defaults (see DefaultSettings), so a
// settings file only needs the options the user wants to change.
type Settings struct {
	// OutputPath is the directory template tracks are written to.
	// Empty means next to the source recording.
	OutputPath string `json:"output_path"`

	// MaxConcurrentTracks caps how many tracks are cut and tagged
	// in parallel.
	MaxConcurrentTracks int `json:"max_concurrent_tracks"`

	// FileNameFormat templates the track file names, extension
	// included. CoverArtFileNameFormat and PlaylistFileNameFormat
	// template the extra files, without extension.
	FileNameFormat         string `json:"file_name_format"`
	CoverArtFileNameFormat string `json:"cover_art_file_name_format"`
	PlaylistFileNameFormat string `json:"playlist_file_name_format"`

	// SaveCoverArtInFolder writes a copy of the cover next to the
	// tracks; SaveCoverArtInTags embeds it in each track's ID3 tag.
	// Each copy can be resized down to its own max dimension.
	SaveCoverArtInFolder    bool `json:"save_cover_art_in_folder"`
	SaveCoverArtInTags      bool `json:"save_cover_art_in_tags"`
	CoverArtInFolderResize  bool `json:"cover_art_in_folder_resize"`
	CoverArtInFolderMaxSize int  `json:"cover_art_in_folder_max_size"`
	CoverArtInTagsResize    bool `json:"cover_art_in_tags_resize"`
	CoverArtInTagsMaxSize   int  `json:"cover_art_in_tags_max_size"`

	// ConvertCoverArtToJPG re-encodes PNG or GIF covers as JPEG.
	ConvertCoverArtToJPG bool `json:"convert_cover_art_to_jpg"`

	// Retry policy for cover downloads. The cooldown between
	// attempts is in seconds.
	CoverDownloadMaxRetries    int     `json:"cover_download_max_retries"`
	CoverDownloadRetryCooldown float64 `json:"cover_download_retry_cooldown"`

	// CreatePlaylist writes a playlist file listing the split
	// tracks. PlaylistFormat picks the type: m3u, pls, wpl or zpl.
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"`

	// M3UExtended adds #EXTM3U/#EXTINF metadata lines to M3U
	// playlists.
	M3UExtended bool `json:"m3u_extended"`

	// ModifyTags controls whether ID3 tags are written at all.
	ModifyTags bool `json:"modify_tags"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		OutputPath:          "",
		MaxConcurrentTracks: 4,

		FileNameFormat:         "{tracknum} {title}.mp3",
		CoverArtFileNameFormat: "cover",
		PlaylistFileNameFormat: "{album}",

		SaveCoverArtInFolder:       false,
		SaveCoverArtInTags:         true,
		CoverArtInFolderResize:     false,
		CoverArtInFolderMaxSize:    1000,
		CoverArtInTagsResize:       true,
		CoverArtInTagsMaxSize:      1000,
		ConvertCoverArtToJPG:       true,
		CoverDownloadMaxRetries:    3,
		CoverDownloadRetryCooldown: 1.0,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ModifyTags: true,
	}
}

// Load reads settings from the JSON file at path. Options absent from
// the file keep their defaults, and a missing file yields the defaults
// outright, so the tool runs without any configuration.
func Load(path string) (*Settings, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()

	settings := DefaultSettings()
	if err := json.NewDecoder(f).Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return settings, nil
}

// Save writes the settings to path as indented JSON, creating parent
// directories as needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return f.Close()
}

// ToPathConfig derives the album path templates, rooted at
// outputPath. The caller resolves the effective output directory
// first, because an empty OutputPath setting defers to the source
// recording's directory.
func (s *Settings) ToPathConfig(outputPath string) *model.PathConfig {
	return &model.PathConfig{
		OutputPath:             outputPath,
		CoverArtFileNameFormat: s.CoverArtFileNameFormat,
		PlaylistFileNameFormat: s.PlaylistFileNameFormat,
		PlaylistFormat:         model.ParsePlaylistFormat(s.PlaylistFormat),
	}
}

// ToTrackConfig derives the track file name template.
func (s *Settings) ToTrackConfig() *model.TrackConfig {
	return &model.TrackConfig{
		FileNameFormat: s.FileNameFormat,
	}
}
