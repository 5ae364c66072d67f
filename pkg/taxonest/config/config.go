package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/categorical/taxonest/pkg/taxonest/internalerr"
)

// Source describes where the raw taxonomy comes from. If File is set it
// wins over URL; otherwise the file is downloaded.
type Source struct {
	URL            string `yaml:"url"`
	File           string `yaml:"file"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Limits are defensive input bounds for the builder. Zero disables.
type Limits struct {
	MaxLines int `yaml:"max_lines"`
	MaxDepth int `yaml:"max_depth"`
}

// Outputs names the files regenerated on every run.
type Outputs struct {
	JSON     string `yaml:"json"`
	SQL      string `yaml:"sql"`
	Text     string `yaml:"text"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

// Config is the full run configuration.
type Config struct {
	Source  Source  `yaml:"source"`
	Limits  Limits  `yaml:"limits"`
	Outputs Outputs `yaml:"outputs"`
}

// DefaultTaxonomyURL is Google's published en-US product taxonomy.
const DefaultTaxonomyURL = "https://www.google.com/basepages/producttype/taxonomy.en-US.txt"

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Source: Source{
			URL:            DefaultTaxonomyURL,
			TimeoutSeconds: 30,
		},
		Outputs: Outputs{
			JSON:     "google_product_categories.json",
			SQL:      "google_product_categories.sql",
			Text:     "google_product_categories.txt",
			Database: "google_product_categories.db",
			Table:    "google_product_categories",
		},
	}
}

// Load reads a YAML config file, filling unset fields from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Source.URL == "" && c.Source.File == "" {
		return fmt.Errorf("%w: source needs a url or a file", internalerr.ErrInvalidConfig)
	}
	if c.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: negative timeout", internalerr.ErrInvalidConfig)
	}
	if c.Limits.MaxLines < 0 || c.Limits.MaxDepth < 0 {
		return fmt.Errorf("%w: negative limit", internalerr.ErrInvalidConfig)
	}
	if c.Outputs.Table == "" {
		return fmt.Errorf("%w: empty table name", internalerr.ErrInvalidConfig)
	}
	return nil
}
