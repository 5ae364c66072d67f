// Package tree builds a category forest from flat `>`-delimited taxonomy
// lines and annotates it with nested-set bounds.
package tree

import (
	"fmt"
	"strings"

	"github.com/categorical/taxonest/pkg/taxonest/internalerr"
)

// PathSeparator splits a taxonomy line into segment titles.
const PathSeparator = ">"

// pathKeySep joins segment titles into a dedup key. Non-printing so a
// title containing ">" cannot collide with a genuine path boundary.
const pathKeySep = "\x00"

// CategoryNode is a single category in the taxonomy forest.
//
// Left, Right and Depth are zero until the forest has been annotated;
// after annotation a node's range strictly contains the ranges of all
// its descendants and nothing else.
type CategoryNode struct {
	ID       int64
	ParentID *int64 // nil for roots
	Title    string
	Children []*CategoryNode // insertion order = first-seen order

	Left  int64
	Right int64
	Depth int64
}

// IsRoot reports whether the node has no parent.
func (n *CategoryNode) IsRoot() bool { return n.ParentID == nil }

// IsLeaf reports whether the node has no children.
func (n *CategoryNode) IsLeaf() bool { return len(n.Children) == 0 }

// Annotated reports whether nested-set bounds have been assigned.
func (n *CategoryNode) Annotated() bool { return n.Left > 0 && n.Right > n.Left }

// DescendantCount returns the number of descendants encoded in the
// node's bounds: Right - Left == 1 + 2*descendants.
func (n *CategoryNode) DescendantCount() int64 {
	if !n.Annotated() {
		return 0
	}
	return (n.Right - n.Left - 1) / 2
}

// Contains reports whether other is a strict descendant of n, using
// only the nested-set bounds.
func (n *CategoryNode) Contains(other *CategoryNode) bool {
	return n.Left < other.Left && other.Right < n.Right
}

// Forest owns the category nodes built from one taxonomy input.
type Forest struct {
	roots  []*CategoryNode
	byID   map[int64]*CategoryNode
	byPath map[string]*CategoryNode
}

// Roots returns the root nodes in first-seen order.
func (f *Forest) Roots() []*CategoryNode { return f.roots }

// Len returns the total number of nodes in the forest.
func (f *Forest) Len() int { return len(f.byID) }

// Node looks up a node by its identifier.
func (f *Forest) Node(id int64) (*CategoryNode, bool) {
	n, ok := f.byID[id]
	return n, ok
}

// PathTo returns the breadcrumb of titles from a root down to id.
func (f *Forest) PathTo(id int64) []string {
	var rev []string
	for {
		n, ok := f.byID[id]
		if !ok {
			return nil
		}
		rev = append(rev, n.Title)
		if n.ParentID == nil {
			break
		}
		id = *n.ParentID
	}
	titles := make([]string, len(rev))
	for i, t := range rev {
		titles[len(rev)-1-i] = t
	}
	return titles
}

// Builder constructs a Forest from taxonomy lines, deduplicating shared
// path prefixes. IDs are assigned in first-seen order starting at 1, so
// they are stable across runs only while the input line order is stable.
type Builder struct {
	forest   *Forest
	nextID   int64
	lines    int
	maxLines int // 0 = unlimited
	maxDepth int // 0 = unlimited
}

// NewBuilder creates a builder with no input limits.
func NewBuilder() *Builder {
	return &Builder{
		forest: &Forest{
			byID:   make(map[int64]*CategoryNode),
			byPath: make(map[string]*CategoryNode),
		},
		nextID: 1,
	}
}

// NewBuilderWithLimits creates a builder that rejects inputs exceeding
// maxLines lines or maxDepth path segments. Zero disables a limit.
func NewBuilderWithLimits(maxLines, maxDepth int) *Builder {
	b := NewBuilder()
	b.maxLines = maxLines
	b.maxDepth = maxDepth
	return b
}

// SplitPath splits a raw line into trimmed, non-empty segment titles.
func SplitPath(line string) []string {
	parts := strings.Split(line, PathSeparator)
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// AddPath ingests one taxonomy line, creating a node for every path
// prefix not seen before. A line with zero non-empty segments fails
// with internalerr.ErrMalformedPath; duplicate full lines are no-ops.
func (b *Builder) AddPath(line string) error {
	if b.maxLines > 0 && b.lines >= b.maxLines {
		return fmt.Errorf("%w: more than %d lines", internalerr.ErrLimitExceeded, b.maxLines)
	}
	b.lines++

	segs := SplitPath(line)
	if len(segs) == 0 {
		return fmt.Errorf("%w: %q", internalerr.ErrMalformedPath, line)
	}
	if b.maxDepth > 0 && len(segs) > b.maxDepth {
		return fmt.Errorf("%w: path deeper than %d segments", internalerr.ErrLimitExceeded, b.maxDepth)
	}

	var parent *CategoryNode
	key := ""
	for _, title := range segs {
		if key == "" {
			key = title
		} else {
			key += pathKeySep + title
		}

		node, ok := b.forest.byPath[key]
		if !ok {
			var err error
			node, err = b.newNode(title, parent)
			if err != nil {
				return err
			}
			b.forest.byPath[key] = node
		}
		parent = node
	}
	return nil
}

// AddLines ingests lines in order, aborting on the first error.
func (b *Builder) AddLines(lines []string) error {
	for _, line := range lines {
		if err := b.AddPath(line); err != nil {
			return err
		}
	}
	return nil
}

// Forest returns the forest built so far.
func (b *Builder) Forest() *Forest { return b.forest }

func (b *Builder) newNode(title string, parent *CategoryNode) (*CategoryNode, error) {
	id := b.nextID
	b.nextID++

	if _, ok := b.forest.byID[id]; ok {
		// Cannot happen with a monotonic counter; a hit means the
		// builder itself is broken.
		return nil, fmt.Errorf("%w: id %d", internalerr.ErrDuplicateID, id)
	}

	node := &CategoryNode{ID: id, Title: title}
	if parent != nil {
		pid := parent.ID
		node.ParentID = &pid
		parent.Children = append(parent.Children, node)
	} else {
		b.forest.roots = append(b.forest.roots, node)
	}
	b.forest.byID[id] = node
	return node, nil
}
