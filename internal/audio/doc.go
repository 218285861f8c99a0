// Package audio provides the MP3 machinery for splitting a recording:
// frame indexing, lossless slicing, source metadata reading, ID3 tag
// writing, and playlist generation.
//
// # Frame Indexing and Slicing
//
// MP3 audio is a sequence of self-contained frames, and a file can only
// be cut where a frame starts. IndexFrames scans a recording once and
// maps playback time to frame byte offsets; Slicer then copies the byte
// range between two boundaries into a new file without re-encoding:
//
//	index, err := audio.IndexFrames(ctx, f)
//	if err != nil {
//	    return err
//	}
//	slicer := audio.NewSlicer("recording.mp3", index)
//	written, err := slicer.Cut(ctx, track)
//
// # Source Metadata
//
// ReadSourceInfo extracts the tags embedded in the source recording,
// which serve as defaults for the album title, artist, year, and cover
// art:
//
//	info, err := audio.ReadSourceInfo("recording.mp3")
//
// # Tagging and Playlists
//
// Cut tracks come out tagless. Tagger stamps them with the album
// metadata, their own number and title, and optionally the cover art;
// TagConfig decides per field whether to write, clear, or leave it.
// PlaylistCreator renders an M3U, PLS, WPL, or ZPL playlist over the
// finished tracks:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(track, album, artworkBytes)
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(album)
package audio
