// Package http fetches remote cover art.
//
// It exposes a single small client: NewClient builds it, DownloadBytes
// pulls a URL's body into memory. Requests carry a stable User-Agent,
// time out after a minute, and refuse bodies too large to plausibly be
// an image.
//
//	client := http.NewClient()
//	data, err := client.DownloadBytes(ctx, "https://example.com/cover.jpg")
package http
