// Package split orchestrates cutting one continuous MP3 recording
// into individually tagged track files.
//
// The work happens in two phases so callers can show a plan before
// touching the disk. Initialize indexes the recording's MPEG frames,
// reads its ID3 tags for metadata defaults, and parses the timestamp
// listing into tracks with resolved boundaries; nothing is written.
// StartExport then cuts the tracks, tags them, and optionally saves
// cover art and a playlist:
//
//	manager := split.NewManager(settings, func(event split.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, split.Request{
//	    SourcePath: "concert.mp3",
//	    ConfigPath: "tracklist.txt",
//	}); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.StartExport(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Tracks are cut in parallel, capped by settings.MaxConcurrentTracks;
// each worker opens its own handle on the source recording, so cuts do
// not contend on a shared file offset.
//
// The callback passed to NewManager receives every ProgressEvent the
// run emits, from verbose per-track notes to errors. GetProgress
// exposes byte and file counters for rendering progress bars.
//
// Cover art downloads retry, governed by settings.CoverDownloadMaxRetries
// and CoverDownloadRetryCooldown. A
// cover that cannot be fetched degrades to a warning; the tracks are
// still cut and tagged.
package split
