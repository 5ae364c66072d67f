// Package export renders an annotated category forest into the
// regenerated output artifacts: JSON records, a SQL dump, and an
// indented text listing.
package export

import (
	"fmt"
	"time"

	"github.com/categorical/taxonest/pkg/taxonest/internalerr"
	"github.com/categorical/taxonest/pkg/taxonest/tree"
)

// Meta identifies the build that produced an export.
type Meta struct {
	BuildID     string
	GeneratedAt time.Time
	SourceURL   string
}

// checkAnnotated rejects forests that never went through the annotator;
// exporting zero bounds would silently corrupt every downstream query.
func checkAnnotated(nodes []*tree.CategoryNode) error {
	for _, n := range nodes {
		if !n.Annotated() {
			return fmt.Errorf("%w: node %d (%s)", internalerr.ErrNotAnnotated, n.ID, n.Title)
		}
	}
	return nil
}
