package ioutils

import (
	"context"
	"os"
	"strings"
)

// reservedNameChars are the characters that cannot appear in file names
// on Windows, the strictest of the supported platforms.
const reservedNameChars = `\/:*?"<>|`

// SanitizeFileName strips characters from name that are not valid in
// file or folder names.
//
// Reserved characters and control characters are removed entirely, so
// the result stays as close as possible to the title the user wrote in
// the listing. Trailing dots and spaces are also removed; Windows
// rejects names ending in either.
//
//	SanitizeFileName("AC/DC: Live")  // "ACDC Live"
//	SanitizeFileName("Encore...")    // "Encore"
func SanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(reservedNameChars, r) {
			return -1
		}
		return r
	}, name)

	return strings.TrimRight(cleaned, ". ")
}

// WriteFile writes data to path with permission 0644, truncating any
// existing file. The context is checked once up front; the write itself
// is not interruptible.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates path and any missing parent directories with
// permission 0755. An existing directory is not an error.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
