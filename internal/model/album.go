package model

import (
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/album-splitter/internal/io"
)

// Windows caps paths at 260 characters (248 for directories). Long
// album or track titles get their file name part shortened instead of
// failing the write later.
const (
	maxDirPath  = 248
	maxFilePath = 260
)

// Album represents one source recording and the tracks cut from it.
//
// Besides the user-facing metadata stamped onto every track (artist,
// composer, disc numbers), an Album carries the resolved output
// locations: the directory the tracks are written to, and the file
// paths for the playlist and a saved cover. All of them are computed
// once by NewAlbum from PathConfig templates.
//
//	cfg := &PathConfig{
//	    OutputPath:             "/music/{artist}/{album}",
//	    CoverArtFileNameFormat: "cover",
//	    PlaylistFileNameFormat: "{album}",
//	    PlaylistFormat:         PlaylistFormatM3U,
//	}
//	album := NewAlbum("The Artist", "Live Set", "", 3600, cfg)
//	// album.Path == "/music/The Artist/Live Set"
type Album struct {
	// Artist is the album artist. Empty string means unknown.
	Artist string

	// Title is the album title.
	Title string

	// Composer is an optional composer shared by all tracks.
	// Empty string means not set.
	Composer string

	// DiscNumber is the optional disc this recording belongs to.
	// Zero means not set.
	DiscNumber int

	// TotalDiscs is the optional disc count of the set. Zero means not set.
	TotalDiscs int

	// Year is the optional release year. Zero means unknown.
	Year int

	// CoverSource locates the cover art: a local file path or an
	// HTTP(S) URL. Empty string means no cover art.
	CoverSource string

	// TotalSeconds is the length of the source recording in whole
	// seconds. Negative when the length is unknown.
	TotalSeconds int

	// Tracks holds the album's tracks in recording order.
	Tracks []*Track

	// Path is the directory the split tracks are written to.
	Path string

	// ArtworkPath is where a copy of the cover art is saved.
	// Empty if the album has no cover source.
	ArtworkPath string

	// PlaylistPath is where the playlist file is written.
	PlaylistPath string
}

// NewAlbum builds an Album and computes its output locations from the
// path templates in cfg.
//
// totalSeconds is the length of the source recording; pass a negative
// value when the length is unknown.
func NewAlbum(artist, title, coverSource string, totalSeconds int, cfg *PathConfig) *Album {
	album := &Album{
		Artist:       artist,
		Title:        title,
		CoverSource:  coverSource,
		TotalSeconds: totalSeconds,
	}

	album.Path = capLength(album.expand(cfg.OutputPath), maxDirPath)
	album.PlaylistPath = joinLimited(album.Path,
		album.expand(cfg.PlaylistFileNameFormat), cfg.PlaylistFormat.Extension())
	if album.HasCover() {
		album.ArtworkPath = joinLimited(album.Path,
			album.expand(cfg.CoverArtFileNameFormat), coverExt(coverSource))
	}

	return album
}

// HasCover reports whether the album has a cover art source configured.
func (a *Album) HasCover() bool {
	return a.CoverSource != ""
}

// expand replaces the album-level placeholders of a template. Values
// are sanitized individually so template literals, such as the path
// separators in an OutputPath, survive expansion.
func (a *Album) expand(format string) string {
	return strings.NewReplacer(
		"{artist}", ioutils.SanitizeFileName(a.Artist),
		"{album}", ioutils.SanitizeFileName(a.Title),
	).Replace(format)
}

// PathConfig holds the output path templates.
//
// Templates may use the {artist} and {album} placeholders; track file
// name templates additionally support {title} and {tracknum} (see
// TrackConfig). Placeholder values are sanitized before insertion.
type PathConfig struct {
	// OutputPath is the directory template the split tracks are
	// written to, for example "/music/{artist}/{album}".
	OutputPath string

	// CoverArtFileNameFormat names the saved cover art file,
	// without extension. For example "cover" or "{album}".
	CoverArtFileNameFormat string

	// PlaylistFileNameFormat names the playlist file, without
	// extension. For example "{album}".
	PlaylistFileNameFormat string

	// PlaylistFormat selects the playlist file type.
	PlaylistFormat PlaylistFormat
}

// PlaylistFormat identifies a playlist file type.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlists (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlists (Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlists (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlists (Zune Media Player).
	PlaylistFormatZPL
)

// playlistExtensions maps each playlist format to its file extension.
var playlistExtensions = map[PlaylistFormat]string{
	PlaylistFormatM3U: ".m3u",
	PlaylistFormatPLS: ".pls",
	PlaylistFormatWPL: ".wpl",
	PlaylistFormatZPL: ".zpl",
}

// Extension returns the format's file extension, dot included.
// Unknown values map to ".m3u".
func (pf PlaylistFormat) Extension() string {
	if ext, ok := playlistExtensions[pf]; ok {
		return ext
	}
	return ".m3u"
}

// ParsePlaylistFormat maps a settings value like "pls" to its
// PlaylistFormat. Unrecognized names fall back to M3U.
func ParsePlaylistFormat(name string) PlaylistFormat {
	switch strings.ToLower(name) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// capLength truncates s when it reaches max bytes.
func capLength(s string, max int) string {
	if len(s) >= max {
		return s[:max-1]
	}
	return s
}

// joinLimited joins dir and name+ext, shortening name when the full
// path would exceed the Windows path limit.
func joinLimited(dir, name, ext string) string {
	path := filepath.Join(dir, name+ext)
	if len(path) < maxFilePath {
		return path
	}

	keep := maxFilePath - len(dir) - len(ext) - 2
	if keep > 0 && keep < len(name) {
		return filepath.Join(dir, name[:keep]+ext)
	}
	return path
}

// coverExt derives a file extension from a cover source path or URL.
// URL query strings and fragments are ignored; sources without an
// extension default to ".jpg".
func coverExt(source string) string {
	if i := strings.IndexAny(source, "?#"); i != -1 {
		source = source[:i]
	}
	ext := filepath.Ext(source)
	if ext == "" {
		ext = ".jpg"
	}
	return ext
}
