// Package model defines the core data structures used throughout
// the album-splitter application.
//
// # Album
//
// Album represents one source recording with metadata and computed file paths:
//
//	album := model.NewAlbum("Artist", "Title", coverSource, totalSeconds, pathConfig)
//	fmt.Println(album.Path)         // Where the split tracks are written
//	fmt.Println(album.PlaylistPath) // Where the playlist is written
//
// # Track
//
// Track represents a single track cut out of the recording, with its
// start/end offsets in whole seconds:
//
//	track := model.NewTrack(album, 1, "Song Title", 0, 195, trackConfig)
//	fmt.Println(track.Path)       // Full path where the track will be saved
//	fmt.Println(track.Duration()) // 195
//
// A final track whose end is unknown carries model.EndOfRecording and runs
// to the end of the source recording.
//
// # Path Configuration
//
// PathConfig controls how album/track paths are computed using placeholders:
//
//	cfg := &model.PathConfig{
//	    OutputPath:             "/music/{artist}/{album}",
//	    CoverArtFileNameFormat: "cover",
//	    PlaylistFileNameFormat: "{album}",
//	    PlaylistFormat:         model.PlaylistFormatM3U,
//	}
//
// Available placeholders: {artist}, {album}, {title}, {tracknum}
package model
