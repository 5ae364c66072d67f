package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/categorical/taxonest/pkg/taxonest/tree"
)

// WriteSQL emits a self-contained dump: drop/create of the nested-set
// table, one insert per node in traversal order, and the range-query
// indexes. "left" and "right" are SQL keywords, so the identifiers are
// quoted throughout.
func WriteSQL(w io.Writer, table string, meta Meta, nodes []*tree.CategoryNode) error {
	if err := checkAnnotated(nodes); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Google product taxonomy, nested set model\n")
	fmt.Fprintf(&b, "-- build %s, generated %s\n", meta.BuildID, meta.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(&b, "-- %d categories\n\n", len(nodes))

	fmt.Fprintf(&b, "DROP TABLE IF EXISTS %s;\n\n", table)
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", table)
	b.WriteString("    id INTEGER PRIMARY KEY,\n")
	b.WriteString("    parent_id INTEGER,\n")
	b.WriteString("    title TEXT NOT NULL,\n")
	b.WriteString("    \"left\" INTEGER NOT NULL,\n")
	b.WriteString("    \"right\" INTEGER NOT NULL,\n")
	b.WriteString("    depth INTEGER NOT NULL,\n")
	fmt.Fprintf(&b, "    FOREIGN KEY (parent_id) REFERENCES %s(id)\n", table)
	b.WriteString(");\n\n")

	b.WriteString("-- Insert categories\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	for _, n := range nodes {
		parent := "NULL"
		if n.ParentID != nil {
			parent = fmt.Sprintf("%d", *n.ParentID)
		}
		title := strings.ReplaceAll(n.Title, "'", "''")
		line := fmt.Sprintf("INSERT INTO %s (id, parent_id, title, \"left\", \"right\", depth) VALUES (%d, %s, '%s', %d, %d, %d);\n",
			table, n.ID, parent, title, n.Left, n.Right, n.Depth)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}

	footer := fmt.Sprintf("\nCREATE INDEX IF NOT EXISTS idx_%[1]s_left ON %[1]s(\"left\");\n"+
		"CREATE INDEX IF NOT EXISTS idx_%[1]s_right ON %[1]s(\"right\");\n"+
		"CREATE INDEX IF NOT EXISTS idx_%[1]s_parent_id ON %[1]s(parent_id);\n"+
		"CREATE INDEX IF NOT EXISTS idx_%[1]s_depth ON %[1]s(depth);\n", table)
	_, err := io.WriteString(w, footer)
	return err
}
