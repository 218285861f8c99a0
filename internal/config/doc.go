// Package config loads, saves and defaults the splitter's settings.
//
// Settings live in a single JSON file. Every option has a built-in
// default, a missing file is not an error, and options absent from the
// file keep their defaults, so a minimal file like
//
//	{"create_playlist": true, "playlist_format": "pls"}
//
// is a complete configuration. The usual flow is
//
//	settings, err := config.Load(path)   // defaults when path is absent
//	pathCfg := settings.ToPathConfig(outputDir)
//	trackCfg := settings.ToTrackConfig()
//
// where the two To*Config methods hand the path and file name
// templates to the model package in the shape it wants.
package config
