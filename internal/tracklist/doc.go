// Package tracklist parses human-authored timestamp listings (the kind
// copy-pasted from a video description) into albums of tracks with fully
// resolved start/end boundaries.
//
// # Line Grammars
//
// Each non-empty line describes one track. Two grammars are accepted,
// tried in priority order:
//
//	01 - Intro - 00:00      numbered: leading track number, then title,
//	#2 | Main | 03:15       then timestamp
//
//	00:00 - Intro           timestamp-first: timestamp, then title; the
//	03:15 Main Theme        track number is the line's 1-based position
//	                        among non-empty lines
//
// Separators ("-" or "|") around the title are optional. A line matching
// neither grammar aborts the parse with a *LineError carrying the 1-based
// line number.
//
// # Timestamps
//
// Timestamps are one to four colon-separated integer groups weighted from
// the right as seconds, minutes, hours, and days:
//
//	sec, err := tracklist.Seconds("01:02:03") // 3723
//
// Group values are not range-checked; "90:00" is 90 minutes.
//
// # Boundary Resolution
//
// Each track starts at its own timestamp and ends at the next track's
// timestamp. The final track ends at the recording's total duration, or at
// model.EndOfRecording when the duration is unknown:
//
//	parser := tracklist.NewParser(pathConfig, trackConfig)
//	album, err := parser.ParseTracklist(lines, totalSeconds, meta)
package tracklist
