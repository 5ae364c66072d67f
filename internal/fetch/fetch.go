// Package fetch retrieves the raw taxonomy file, by download or from
// disk, and prepares its lines for the tree builder.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTaxonomyURL is Google's published en-US product taxonomy.
const DefaultTaxonomyURL = "https://www.google.com/basepages/producttype/taxonomy.en-US.txt"

// DefaultTimeout bounds a single download.
const DefaultTimeout = 30 * time.Second

// Client downloads taxonomy files.
type Client struct {
	HTTPClient *http.Client
	URL        string
}

// NewClient creates a client for the given URL (DefaultTaxonomyURL if
// empty) with the default timeout.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultTaxonomyURL
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		URL:        url,
	}
}

// Download fetches the raw taxonomy file.
func (c *Client) Download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", c.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: HTTP %d", c.URL, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Lines downloads the taxonomy and returns its category lines.
func (c *Client) Lines(ctx context.Context) ([]string, error) {
	raw, err := c.Download(ctx)
	if err != nil {
		return nil, err
	}
	return SplitLines(string(raw)), nil
}

// ReadLocal reads category lines from a file on disk.
func ReadLocal(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits raw taxonomy text into category lines. Blank lines
// and "#" comment headers (the file starts with a dated header line)
// are dropped here so the builder only ever sees category paths.
func SplitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
