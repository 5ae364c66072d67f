package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/categorical/taxonest/pkg/taxonest/tree"
)

// WriteText emits one line per category in traversal order, indented by
// depth, showing the id, the [left-right] range and the full breadcrumb.
func WriteText(w io.Writer, f *tree.Forest, nodes []*tree.CategoryNode) error {
	if err := checkAnnotated(nodes); err != nil {
		return err
	}

	for _, n := range nodes {
		breadcrumb := strings.Join(f.PathTo(n.ID), " > ")
		indent := strings.Repeat("  ", int(n.Depth-1))
		if _, err := fmt.Fprintf(w, "%s%d [%d-%d] %s\n", indent, n.ID, n.Left, n.Right, breadcrumb); err != nil {
			return err
		}
	}
	return nil
}
