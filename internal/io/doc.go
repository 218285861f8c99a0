// Package ioutils bundles the small file system and image helpers the
// splitter needs when it writes its output: safe file names, directory
// creation, whole-file writes, and cover art preparation.
//
// # File Names
//
// Track titles come straight out of a hand-written listing, so they can
// contain anything. SanitizeFileName strips what file systems reject:
//
//	ioutils.SanitizeFileName("AC/DC: Live") // "ACDC Live"
//
// # Writing Output
//
//	if err := ioutils.EnsureDir(album.Path); err != nil { ... }
//	if err := ioutils.WriteFile(ctx, album.PlaylistPath, content); err != nil { ... }
//
// # Cover Art
//
// ImageService scales covers down to a configured limit and converts
// them to JPEG so every player can display them:
//
//	svc := ioutils.NewImageService()
//	cover, err := svc.ResizeImage(ctx, raw, 1000)
package ioutils
