// Package taxonest converts a flat `>`-delimited category taxonomy into
// a nested-set annotated forest and prepares it for export.
package taxonest

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/categorical/taxonest/pkg/taxonest/analytics"
	"github.com/categorical/taxonest/pkg/taxonest/store"
	"github.com/categorical/taxonest/pkg/taxonest/tree"
)

// Taxonest runs the build-then-annotate pipeline and stamps each run
// with a sortable build ID.
type Taxonest struct {
	entropy  *ulid.MonotonicEntropy
	maxLines int
	maxDepth int
}

// Options configures a Taxonest instance.
type Options struct {
	// MaxLines and MaxDepth bound the input defensively; zero disables.
	MaxLines int
	MaxDepth int
}

// New creates a Taxonest instance.
func New(opts ...Options) *Taxonest {
	t := &Taxonest{entropy: ulid.Monotonic(rand.Reader, 0)}
	if len(opts) > 0 {
		t.maxLines = opts[0].MaxLines
		t.maxDepth = opts[0].MaxDepth
	}
	return t
}

// Result is one completed taxonomy build.
type Result struct {
	BuildID     string
	GeneratedAt time.Time
	Forest      *tree.Forest
	Nodes       []*tree.CategoryNode // ordered by left
	Stats       analytics.Stats
}

// Build parses the taxonomy lines, annotates the forest and summarizes
// it. Any malformed line aborts the run; a partial taxonomy must never
// reach the exports.
func (t *Taxonest) Build(lines []string) (*Result, error) {
	builder := tree.NewBuilderWithLimits(t.maxLines, t.maxDepth)
	if err := builder.AddLines(lines); err != nil {
		return nil, err
	}

	forest := builder.Forest()
	nodes, err := tree.Annotate(forest)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Result{
		BuildID:     ulid.MustNew(ulid.Timestamp(now), t.entropy).String(),
		GeneratedAt: now,
		Forest:      forest,
		Nodes:       nodes,
		Stats:       analytics.Summarize(nodes),
	}, nil
}

// Categories converts the annotated nodes into flat store records.
func (r *Result) Categories() []store.Category {
	cats := make([]store.Category, len(r.Nodes))
	for i, n := range r.Nodes {
		cats[i] = store.Category{
			ID:       n.ID,
			ParentID: n.ParentID,
			Title:    n.Title,
			Left:     n.Left,
			Right:    n.Right,
			Depth:    n.Depth,
		}
	}
	return cats
}

// BuildInfo returns the store metadata for this result.
func (r *Result) BuildInfo(sourceURL string) store.BuildInfo {
	return store.BuildInfo{
		ID:          r.BuildID,
		GeneratedAt: r.GeneratedAt,
		SourceURL:   sourceURL,
		Total:       len(r.Nodes),
	}
}
