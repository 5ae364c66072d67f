// Command download-taxonomy fetches the raw Google product taxonomy
// file to disk, or lists the locale files published alongside it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/categorical/taxonest/internal/fetch"
)

func main() {
	var (
		url         = flag.String("url", fetch.DefaultTaxonomyURL, "taxonomy file URL")
		out         = flag.String("o", "taxonomy.en-US.txt", "output file")
		listLocales = flag.String("list-locales", "", "list taxonomy files linked from this HTML page and exit")
	)
	flag.Parse()

	ctx := context.Background()
	client := fetch.NewClient(*url)

	if *listLocales != "" {
		locales, err := client.ListLocales(ctx, *listLocales)
		if err != nil {
			log.Fatal("Failed to list locales: ", err)
		}
		if len(locales) == 0 {
			log.Fatal("No taxonomy files found on page")
		}
		for _, l := range locales {
			fmt.Printf("%-8s %s\n", l.Tag, l.URL)
		}
		return
	}

	log.Printf("Downloading taxonomy from: %s", *url)
	raw, err := client.Download(ctx)
	if err != nil {
		log.Fatal("Failed to download taxonomy: ", err)
	}
	log.Printf("Downloaded %d characters", len(raw))

	if err := os.WriteFile(*out, raw, 0644); err != nil {
		log.Fatal("Failed to write output file: ", err)
	}

	lines := fetch.SplitLines(string(raw))
	log.Printf("Saved %d category lines to %s", len(lines), *out)
}
