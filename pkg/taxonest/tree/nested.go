package tree

import (
	"fmt"

	"github.com/categorical/taxonest/pkg/taxonest/internalerr"
)

// Annotator assigns nested-set bounds to a forest. The counter is
// instance state so independent builds (and tests) never interfere.
type Annotator struct {
	counter int64
	visited map[int64]struct{}
	ordered []*CategoryNode
}

// NewAnnotator creates an annotator with its counter at 1.
func NewAnnotator() *Annotator {
	return &Annotator{
		counter: 1,
		visited: make(map[int64]struct{}),
	}
}

// Annotate walks the forest depth-first in stored child order and
// assigns Left, Right and Depth in place. A single counter spans the
// entire forest, so all categories share one linear address space.
// Returns the nodes ordered by Left (the traversal order).
//
// The builder cannot produce a cyclic forest, but the visited set
// guards against corrupted input reaching the traversal; a revisit
// fails with internalerr.ErrCycleDetected.
func (a *Annotator) Annotate(f *Forest) ([]*CategoryNode, error) {
	for _, root := range f.Roots() {
		if err := a.visit(root, 1); err != nil {
			return nil, err
		}
	}
	return a.ordered, nil
}

// Counter returns the next unassigned position. After annotating n
// nodes it equals 2n+1.
func (a *Annotator) Counter() int64 { return a.counter }

func (a *Annotator) visit(n *CategoryNode, depth int64) error {
	if _, seen := a.visited[n.ID]; seen {
		return fmt.Errorf("%w: node %d (%s) revisited", internalerr.ErrCycleDetected, n.ID, n.Title)
	}
	a.visited[n.ID] = struct{}{}

	n.Depth = depth
	n.Left = a.counter
	a.counter++
	a.ordered = append(a.ordered, n)

	for _, child := range n.Children {
		if err := a.visit(child, depth+1); err != nil {
			return err
		}
	}

	n.Right = a.counter
	a.counter++
	return nil
}

// Annotate is a convenience wrapper around a fresh Annotator.
func Annotate(f *Forest) ([]*CategoryNode, error) {
	return NewAnnotator().Annotate(f)
}
