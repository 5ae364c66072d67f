// Command taxonest regenerates every output representation of the
// Google product taxonomy: JSON records, a SQL dump, an annotated text
// listing and a populated SQLite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/categorical/taxonest/internal/fetch"
	"github.com/categorical/taxonest/pkg/taxonest"
	"github.com/categorical/taxonest/pkg/taxonest/config"
	"github.com/categorical/taxonest/pkg/taxonest/export"
	"github.com/categorical/taxonest/pkg/taxonest/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		inputPath  = flag.String("input", "", "read taxonomy from a local file instead of downloading")
		sourceURL  = flag.String("url", "", "taxonomy download URL (overrides config)")
		outDir     = flag.String("out", ".", "directory for generated outputs")
		keepRaw    = flag.String("keep-raw", "", "also write the raw downloaded file to this path")
		skipDB     = flag.Bool("skip-db", false, "skip populating the SQLite database")
	)
	flag.Parse()

	log.Printf("=== Google Product Categories (nested set model) ===")
	log.Printf("Started at: %s", time.Now().Format(time.RFC3339))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load config: ", err)
		}
	}
	if *inputPath != "" {
		cfg.Source.File = *inputPath
	}
	if *sourceURL != "" {
		cfg.Source.URL = *sourceURL
		cfg.Source.File = ""
	}

	ctx := context.Background()

	lines, source, err := loadLines(ctx, cfg, *keepRaw)
	if err != nil {
		log.Fatal("Failed to load taxonomy: ", err)
	}
	log.Printf("Loaded %d taxonomy lines from %s", len(lines), source)

	tn := taxonest.New(taxonest.Options{
		MaxLines: cfg.Limits.MaxLines,
		MaxDepth: cfg.Limits.MaxDepth,
	})
	res, err := tn.Build(lines)
	if err != nil {
		log.Fatal("Build failed: ", err)
	}
	log.Printf("Built %d categories (build %s)", len(res.Nodes), res.BuildID)

	meta := export.Meta{
		BuildID:     res.BuildID,
		GeneratedAt: res.GeneratedAt,
		SourceURL:   source,
	}

	if err := writeFile(filepath.Join(*outDir, cfg.Outputs.JSON), func(f *os.File) error {
		return export.WriteJSON(f, meta, res.Nodes)
	}); err != nil {
		log.Fatal("Failed to write JSON: ", err)
	}
	log.Printf("Saved JSON to %s", cfg.Outputs.JSON)

	if err := writeFile(filepath.Join(*outDir, cfg.Outputs.SQL), func(f *os.File) error {
		return export.WriteSQL(f, cfg.Outputs.Table, meta, res.Nodes)
	}); err != nil {
		log.Fatal("Failed to write SQL: ", err)
	}
	log.Printf("Saved SQL schema and data to %s", cfg.Outputs.SQL)

	if err := writeFile(filepath.Join(*outDir, cfg.Outputs.Text), func(f *os.File) error {
		return export.WriteText(f, res.Forest, res.Nodes)
	}); err != nil {
		log.Fatal("Failed to write text: ", err)
	}
	log.Printf("Saved annotated text to %s", cfg.Outputs.Text)

	if !*skipDB {
		dbPath := filepath.Join(*outDir, cfg.Outputs.Database)
		st, err := sqlite.OpenSQLite(ctx, dbPath, cfg.Outputs.Table)
		if err != nil {
			log.Fatal("Failed to open database: ", err)
		}
		if err := st.ReplaceAll(ctx, res.BuildInfo(source), res.Categories()); err != nil {
			st.Close()
			log.Fatal("Failed to populate database: ", err)
		}
		if err := st.Close(); err != nil {
			log.Fatal("Failed to close database: ", err)
		}
		log.Printf("Created SQLite database %s with %d categories", dbPath, len(res.Nodes))
	}

	log.Printf("=== Taxonomy Statistics ===")
	for _, line := range res.Stats.Lines() {
		log.Print(line)
	}

	log.Printf("Completed at: %s", time.Now().Format(time.RFC3339))
}

// loadLines reads the taxonomy from the configured local file, or
// downloads it. Returns the lines and a description of the source.
func loadLines(ctx context.Context, cfg *config.Config, keepRaw string) ([]string, string, error) {
	if cfg.Source.File != "" {
		lines, err := fetch.ReadLocal(cfg.Source.File)
		return lines, cfg.Source.File, err
	}

	client := fetch.NewClient(cfg.Source.URL)
	if cfg.Source.TimeoutSeconds > 0 {
		client.HTTPClient.Timeout = time.Duration(cfg.Source.TimeoutSeconds) * time.Second
	}

	raw, err := client.Download(ctx)
	if err != nil {
		return nil, "", err
	}
	if keepRaw != "" {
		if err := os.WriteFile(keepRaw, raw, 0644); err != nil {
			return nil, "", fmt.Errorf("keep raw file: %w", err)
		}
		log.Printf("Saved raw taxonomy to %s", keepRaw)
	}
	return fetch.SplitLines(string(raw)), cfg.Source.URL, nil
}

func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
