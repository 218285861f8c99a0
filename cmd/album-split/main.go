package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/album-splitter/internal/config"
	"github.com/handiism/album-splitter/internal/split"
)

// options collects the command line flags.
type options struct {
	file     string
	listing  string
	output   string
	album    string
	artist   string
	composer string
	disc     int
	discs    int
	cover    string
	playlist bool
	settings string
	verbose  bool
	dryRun   bool
}

func parseOptions() *options {
	o := &options{}
	flag.StringVar(&o.file, "file", "", "MP3 recording to split")
	flag.StringVar(&o.listing, "config", "", "Timestamp listing describing the tracks")
	flag.StringVar(&o.output, "output", "", "Output directory (default: next to the recording)")
	flag.StringVar(&o.album, "album", "", "Album name (default: recording tags, then file name)")
	flag.StringVar(&o.artist, "artist", "", "Contributing artist (default: recording tags)")
	flag.StringVar(&o.composer, "composer", "", "Composer name")
	flag.IntVar(&o.disc, "disc", 0, "Disc number")
	flag.IntVar(&o.discs, "discs", 0, "Total number of discs")
	flag.StringVar(&o.cover, "cover", "", "Cover art: local file path or HTTP(S) URL")
	flag.BoolVar(&o.playlist, "playlist", false, "Create playlist file")
	flag.StringVar(&o.settings, "settings", "", "Path to settings file")
	flag.BoolVar(&o.verbose, "verbose", false, "Show verbose output")
	flag.BoolVar(&o.dryRun, "dry-run", false, "Show the planned tracks without writing anything")
	flag.Usage = usage
	flag.Parse()

	// Both required paths may also be given as positional arguments.
	if o.file == "" && flag.NArg() > 0 {
		o.file = flag.Arg(0)
	}
	if o.listing == "" && flag.NArg() > 1 {
		o.listing = flag.Arg(1)
	}

	return o
}

func usage() {
	fmt.Fprintln(os.Stderr, "Album Splitter - Split one long MP3 recording into tagged tracks")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  album-split -file <recording.mp3> -config <tracklist.txt> [options]")
	fmt.Fprintln(os.Stderr, "  album-split <recording.mp3> <tracklist.txt> [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "For interactive mode, use: album-split-tui")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

var levelBadges = map[split.ProgressLevel]string{
	split.LevelError:   "❌ ",
	split.LevelWarning: "⚠️  ",
	split.LevelSuccess: "✅ ",
	split.LevelInfo:    "ℹ️  ",
}

// printEvent returns the progress callback for console output.
func printEvent(verbose bool) func(split.ProgressEvent) {
	return func(event split.ProgressEvent) {
		if event.Level == split.LevelVerbose && !verbose {
			return
		}

		badge, ok := levelBadges[event.Level]
		if !ok {
			badge = "   "
		}
		fmt.Println(badge + event.Message)
	}
}

func main() {
	os.Exit(run(parseOptions()))
}

func run(opts *options) int {
	if opts.file == "" || opts.listing == "" {
		usage()
		return 1
	}

	settings := config.DefaultSettings()
	if opts.settings != "" {
		loaded, err := config.Load(opts.settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			return 1
		}
		settings = loaded
	}
	if opts.output != "" {
		settings.OutputPath = opts.output
	}
	if opts.playlist {
		settings.CreatePlaylist = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := split.NewManager(settings, printEvent(opts.verbose))

	divider := strings.Repeat("━", 40)
	fmt.Println("🎵 Album Splitter")
	fmt.Println(divider)
	fmt.Println()

	request := split.Request{
		SourcePath:  opts.file,
		ConfigPath:  opts.listing,
		AlbumTitle:  opts.album,
		Artist:      opts.artist,
		Composer:    opts.composer,
		DiscNumber:  opts.disc,
		TotalDiscs:  opts.discs,
		CoverSource: opts.cover,
	}

	if err := manager.Initialize(ctx, request); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return 1
	}

	// Show the plan before cutting anything.
	fmt.Println()
	fmt.Println(manager.AlbumSummary())
	for _, line := range manager.TrackSummaries() {
		fmt.Println("  " + line)
	}

	if opts.dryRun {
		fmt.Println("\n[Dry run - nothing written]")
		return 0
	}

	fmt.Println("\n✂️  Splitting...")
	fmt.Println()

	if err := manager.StartExport(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nSplit cancelled.")
			return 130
		}
		fmt.Fprintf(os.Stderr, "Error during split: %v\n", err)
		return 1
	}

	written, total, filesSplit, filesTotal := manager.GetProgress()
	fmt.Println()
	fmt.Println(divider)
	fmt.Printf("✨ Complete! Wrote %d/%d files (%.2f MB)\n",
		filesSplit, filesTotal, float64(written)/1024/1024)
	if total > 0 && written < total {
		fmt.Printf("   (%.2f MB expected)\n", float64(total)/1024/1024)
	}

	return 0
}
