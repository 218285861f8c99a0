package main

import (
	"fmt"
	"os"

	"github.com/handiism/album-splitter/internal/tui"
)

func main() {
	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "album-split-tui:", err)
		os.Exit(1)
	}
}
