package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"

	"golang.org/x/net/html"
)

// Locale is one published taxonomy file.
type Locale struct {
	Tag string // e.g. "en-US", "de-DE"
	URL string
}

var taxonomyFilePattern = regexp.MustCompile(`taxonomy\.([A-Za-z]{2,3}(?:-[A-Za-z0-9]{2,4})?)\.txt$`)

// ParseLocalePage extracts taxonomy file links from an HTML page
// listing the published locales, deduplicated and sorted by tag.
func ParseLocalePage(r io.Reader, base *url.URL) ([]Locale, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]Locale)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if m := taxonomyFilePattern.FindStringSubmatch(attr.Val); m != nil {
					href := attr.Val
					if base != nil {
						if u, err := base.Parse(href); err == nil {
							href = u.String()
						}
					}
					seen[m[1]] = Locale{Tag: m[1], URL: href}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	locales := make([]Locale, 0, len(seen))
	for _, l := range seen {
		locales = append(locales, l)
	}
	sort.Slice(locales, func(i, j int) bool { return locales[i].Tag < locales[j].Tag })
	return locales, nil
}

// ListLocales fetches an HTML page and returns the taxonomy locales it
// links to.
func (c *Client) ListLocales(ctx context.Context, pageURL string) ([]Locale, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	return ParseLocalePage(resp.Body, base)
}
