package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/categorical/taxonest/pkg/taxonest/internalerr"
)

func TestLoadConfig(t *testing.T) {
	content := `
source:
  file: testdata/taxonomy.txt
  timeout_seconds: 10
limits:
  max_lines: 100000
  max_depth: 12
outputs:
  json: out/categories.json
  sql: out/categories.sql
  text: out/categories.txt
  database: out/categories.db
  table: categories
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Source.File != "testdata/taxonomy.txt" {
		t.Errorf("Source.File: got %q", cfg.Source.File)
	}
	if cfg.Source.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds: got %d, want 10", cfg.Source.TimeoutSeconds)
	}
	if cfg.Limits.MaxLines != 100000 || cfg.Limits.MaxDepth != 12 {
		t.Errorf("Limits: got %+v", cfg.Limits)
	}
	if cfg.Outputs.Table != "categories" {
		t.Errorf("Table: got %q", cfg.Outputs.Table)
	}
	// Default URL survives when the file only sets a local source.
	if cfg.Source.URL != DefaultTaxonomyURL {
		t.Errorf("URL default missing: got %q", cfg.Source.URL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Missing config file should fail")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestValidateRejectsEmptySource(t *testing.T) {
	cfg := Default()
	cfg.Source.URL = ""
	cfg.Source.File = ""
	err := cfg.Validate()
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidateRejectsEmptyTable(t *testing.T) {
	cfg := Default()
	cfg.Outputs.Table = ""
	if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
