// Package analytics computes summary statistics over an annotated
// category forest.
package analytics

import (
	"fmt"
	"sort"

	"github.com/categorical/taxonest/pkg/taxonest/tree"
)

// Stats summarizes one annotated taxonomy build.
type Stats struct {
	Total    int
	Roots    int
	Leaves   int
	MaxDepth int64
	ByDepth  map[int64]int
	MinLeft  int64
	MaxRight int64
}

// Summarize walks the annotated nodes once and aggregates counts.
func Summarize(nodes []*tree.CategoryNode) Stats {
	s := Stats{ByDepth: make(map[int64]int)}
	for _, n := range nodes {
		s.Total++
		s.ByDepth[n.Depth]++
		if n.Depth > s.MaxDepth {
			s.MaxDepth = n.Depth
		}
		if n.IsRoot() {
			s.Roots++
		}
		if n.IsLeaf() {
			s.Leaves++
		}
		if s.MinLeft == 0 || n.Left < s.MinLeft {
			s.MinLeft = n.Left
		}
		if n.Right > s.MaxRight {
			s.MaxRight = n.Right
		}
	}
	return s
}

// Lines renders the stats as human-readable report lines.
func (s Stats) Lines() []string {
	lines := []string{
		fmt.Sprintf("Total categories: %d", s.Total),
		fmt.Sprintf("Root categories: %d", s.Roots),
		fmt.Sprintf("Leaf categories: %d", s.Leaves),
		fmt.Sprintf("Maximum depth: %d", s.MaxDepth),
		fmt.Sprintf("Nested set range: %d to %d", s.MinLeft, s.MaxRight),
	}

	depths := make([]int64, 0, len(s.ByDepth))
	for d := range s.ByDepth {
		depths = append(depths, d)
	}
	sort.Slice(depths, func(i, j int) bool { return depths[i] < depths[j] })
	for _, d := range depths {
		lines = append(lines, fmt.Sprintf("  Depth %d: %d categories", d, s.ByDepth[d]))
	}
	return lines
}
