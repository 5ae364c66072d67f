package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/categorical/taxonest/pkg/taxonest/tree"
)

// jsonCategory is the wire shape of one category record.
type jsonCategory struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parent_id"`
	Title    string `json:"title"`
	Left     int64  `json:"left"`
	Right    int64  `json:"right"`
	Depth    int64  `json:"depth"`
}

type jsonDocument struct {
	BuildID     string         `json:"build_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	SourceURL   string         `json:"source_url,omitempty"`
	Total       int            `json:"total"`
	Categories  []jsonCategory `json:"categories"`
}

// WriteJSON emits the annotated nodes as one JSON document, categories
// in traversal (left) order, parent_id null for roots.
func WriteJSON(w io.Writer, meta Meta, nodes []*tree.CategoryNode) error {
	if err := checkAnnotated(nodes); err != nil {
		return err
	}

	doc := jsonDocument{
		BuildID:     meta.BuildID,
		GeneratedAt: meta.GeneratedAt,
		SourceURL:   meta.SourceURL,
		Total:       len(nodes),
		Categories:  make([]jsonCategory, len(nodes)),
	}
	for i, n := range nodes {
		doc.Categories[i] = jsonCategory{
			ID:       n.ID,
			ParentID: n.ParentID,
			Title:    n.Title,
			Left:     n.Left,
			Right:    n.Right,
			Depth:    n.Depth,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
