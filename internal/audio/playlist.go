package audio

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/handiism/album-splitter/internal/model"
)

// PlaylistCreator renders a playlist listing an album's split tracks.
//
// The output is a string ready to be written to the album's playlist
// path. Tracks are referenced by bare file name, because the playlist
// sits in the same directory as the tracks, and their durations come
// from the cut boundaries.
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(album)
//	os.WriteFile(album.PlaylistPath, []byte(content), 0644)
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // M3U only: emit #EXTM3U/#EXTINF metadata lines
}

// NewPlaylistCreator returns a creator for the given format. The
// extended flag selects extended M3U and is ignored by the other
// formats.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist renders the playlist content for album. Unknown
// formats render as plain M3U.
func (p *PlaylistCreator) CreatePlaylist(album *model.Album) string {
	doc := playlistDoc{
		Title:   album.Title,
		Artist:  album.Artist,
		Entries: entriesFor(album),
	}

	switch p.format {
	case model.PlaylistFormatPLS:
		return renderPLS(doc)
	case model.PlaylistFormatWPL:
		return renderSMIL(wplTemplate, doc)
	case model.PlaylistFormatZPL:
		return renderSMIL(zplTemplate, doc)
	default:
		return p.renderM3U(doc)
	}
}

// playlistDoc is the render input shared by all formats.
type playlistDoc struct {
	Title   string
	Artist  string
	Entries []playlistEntry
}

// playlistEntry is one track as a playlist sees it.
type playlistEntry struct {
	File    string // bare file name
	Title   string
	Display string // "Artist - Title", or the bare title without one
	Seconds int
}

// Millis returns the entry length in milliseconds, as ZPL wants it.
func (e playlistEntry) Millis() int { return e.Seconds * 1000 }

func entriesFor(album *model.Album) []playlistEntry {
	entries := make([]playlistEntry, 0, len(album.Tracks))
	for _, track := range album.Tracks {
		display := track.Title
		if album.Artist != "" {
			display = album.Artist + " - " + track.Title
		}
		entries = append(entries, playlistEntry{
			File:    filepath.Base(track.Path),
			Title:   track.Title,
			Display: display,
			Seconds: track.Duration(),
		})
	}
	return entries
}

// renderM3U writes one file name per line; in extended mode each
// entry gets an #EXTINF line with its length and display name first.
func (p *PlaylistCreator) renderM3U(doc playlistDoc) string {
	var b strings.Builder

	if p.extended {
		b.WriteString("#EXTM3U\n")
	}
	for _, e := range doc.Entries {
		if p.extended {
			fmt.Fprintf(&b, "#EXTINF:%d,%s\n", e.Seconds, e.Display)
		}
		b.WriteString(e.File + "\n")
	}

	return b.String()
}

// renderPLS writes the INI-style PLS form with numbered
// File/Title/Length keys.
func renderPLS(doc playlistDoc) string {
	var b strings.Builder

	b.WriteString("[playlist]\n")
	for i, e := range doc.Entries {
		fmt.Fprintf(&b, "File%d=%s\n", i+1, e.File)
		fmt.Fprintf(&b, "Title%d=%s\n", i+1, e.Title)
		fmt.Fprintf(&b, "Length%d=%d\n", i+1, e.Seconds)
	}
	fmt.Fprintf(&b, "NumberOfEntries=%d\n", len(doc.Entries))
	b.WriteString("Version=2\n")

	return b.String()
}

// WPL and ZPL are SMIL XML dialects (Windows Media Player and Zune).
// ZPL carries extra metadata attributes per track.

var smilFuncs = template.FuncMap{"xml": escapeXML}

var wplTemplate = template.Must(template.New("wpl").Funcs(smilFuncs).Parse(`<?wpl version="1.0"?>
<smil>
  <head>
    <title>{{xml .Title}}</title>
  </head>
  <body>
    <seq>
{{- range .Entries}}
      <media src="{{xml .File}}"/>
{{- end}}
    </seq>
  </body>
</smil>
`))

var zplTemplate = template.Must(template.New("zpl").Funcs(smilFuncs).Parse(`<?zpl version="2.0"?>
<smil>
  <head>
    <title>{{xml .Title}}</title>
    <meta name="Generator" content="AlbumSplitter"/>
    <meta name="ItemCount" content="{{len .Entries}}"/>
  </head>
  <body>
    <seq>
{{- range .Entries}}
      <media src="{{xml .File}}" albumTitle="{{xml $.Title}}" albumArtist="{{xml $.Artist}}" trackTitle="{{xml .Title}}" trackArtist="{{xml $.Artist}}" duration="{{.Millis}}"/>
{{- end}}
    </seq>
  </body>
</smil>
`))

// renderSMIL executes tmpl into a string. The templates are static
// and the doc holds plain values, so Execute cannot fail.
func renderSMIL(tmpl *template.Template, doc playlistDoc) string {
	var b strings.Builder
	_ = tmpl.Execute(&b, doc)
	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML escapes the five XML special characters.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
