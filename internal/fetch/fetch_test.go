package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleTaxonomy = `# Google_Product_Taxonomy_Version: 2021-09-21
Animals & Pet Supplies
Animals & Pet Supplies > Live Animals

Animals & Pet Supplies > Pet Supplies > Bird Supplies
`

func TestSplitLines(t *testing.T) {
	lines := SplitLines(sampleTaxonomy)
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "Animals & Pet Supplies" {
		t.Errorf("First line: got %q", lines[0])
	}
	// Header comment and blank line are gone.
	for _, l := range lines {
		if l == "" || l[0] == '#' {
			t.Errorf("Unfiltered line: %q", l)
		}
	}
}

func TestClientLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleTaxonomy))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	lines, err := c.Lines(context.Background())
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestClientDownloadNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Download(context.Background()); err == nil {
		t.Error("Non-200 response should fail")
	}
}

func TestClientDefaultURL(t *testing.T) {
	c := NewClient("")
	if c.URL != DefaultTaxonomyURL {
		t.Errorf("Default URL: got %q", c.URL)
	}
}

func TestReadLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.txt")
	if err := os.WriteFile(path, []byte(sampleTaxonomy), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	lines, err := ReadLocal(path)
	if err != nil {
		t.Fatalf("ReadLocal: %v", err)
	}
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}

	if _, err := ReadLocal(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Missing file should fail")
	}
}
