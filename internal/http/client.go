package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent identifies the splitter on outgoing requests.
const userAgent = "AlbumSplitter"

// maxDownloadBytes caps in-memory downloads at 50 MiB. Cover art is
// far smaller; a body past this limit means a wrong URL.
const maxDownloadBytes = 50 << 20

// Client fetches cover art given as an HTTP(S) URL rather than a
// local file. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client with a 60 second request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// DownloadBytes fetches url and returns the whole response body in
// memory. It fails on any non-200 status and on bodies larger than
// the download cap.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, int64(maxDownloadBytes))
	}

	return data, nil
}
