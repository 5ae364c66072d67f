package tree

import (
	"errors"
	"testing"

	"github.com/categorical/taxonest/pkg/taxonest/internalerr"
)

func TestBuilderPrefixDeduplication(t *testing.T) {
	b := NewBuilder()
	lines := []string{"A > B", "A > B > C", "A > D"}
	if err := b.AddLines(lines); err != nil {
		t.Fatalf("AddLines: %v", err)
	}

	f := b.Forest()
	if f.Len() != 4 {
		t.Fatalf("Expected 4 nodes, got %d", f.Len())
	}
	if len(f.Roots()) != 1 {
		t.Fatalf("Expected 1 root, got %d", len(f.Roots()))
	}

	a := f.Roots()[0]
	if a.Title != "A" {
		t.Errorf("Root title: got %q, want %q", a.Title, "A")
	}
	if len(a.Children) != 2 {
		t.Fatalf("Expected root to have 2 children, got %d", len(a.Children))
	}
	if a.Children[0].Title != "B" || a.Children[1].Title != "D" {
		t.Errorf("Child order: got %q, %q, want B, D", a.Children[0].Title, a.Children[1].Title)
	}

	bNode := a.Children[0]
	if len(bNode.Children) != 1 || bNode.Children[0].Title != "C" {
		t.Errorf("B should have exactly one child C")
	}
}

func TestBuilderIDsFirstSeenOrder(t *testing.T) {
	b := NewBuilder()
	if err := b.AddLines([]string{"A > B", "A > B > C", "A > D"}); err != nil {
		t.Fatalf("AddLines: %v", err)
	}

	want := map[string]int64{"A": 1, "B": 2, "C": 3, "D": 4}
	f := b.Forest()
	for id := int64(1); id <= 4; id++ {
		n, ok := f.Node(id)
		if !ok {
			t.Fatalf("Node %d missing", id)
		}
		if want[n.Title] != id {
			t.Errorf("Node %q: got id %d, want %d", n.Title, id, want[n.Title])
		}
	}
}

func TestBuilderDuplicateLinesIdempotent(t *testing.T) {
	b := NewBuilder()
	lines := []string{
		"Animals & Pet Supplies > Live Animals",
		"Animals & Pet Supplies > Live Animals",
	}
	if err := b.AddLines(lines); err != nil {
		t.Fatalf("AddLines: %v", err)
	}
	if b.Forest().Len() != 2 {
		t.Errorf("Duplicate line should not create nodes: got %d, want 2", b.Forest().Len())
	}
}

func TestBuilderPrefixLineAfterLongerLine(t *testing.T) {
	// A line that is a strict prefix of an earlier line is not an error.
	b := NewBuilder()
	if err := b.AddLines([]string{"A > B > C", "A > B"}); err != nil {
		t.Fatalf("AddLines: %v", err)
	}
	if b.Forest().Len() != 3 {
		t.Errorf("Expected 3 nodes, got %d", b.Forest().Len())
	}
}

func TestBuilderMalformedPath(t *testing.T) {
	b := NewBuilder()
	err := b.AddPath("   ")
	if err == nil {
		t.Fatal("All-whitespace line should fail")
	}
	if !errors.Is(err, internalerr.ErrMalformedPath) {
		t.Errorf("Expected ErrMalformedPath, got %v", err)
	}

	if err := b.AddPath(" > > "); err == nil {
		t.Error("Line with only separators should fail")
	}
}

func TestBuilderSegmentTrimming(t *testing.T) {
	b := NewBuilder()
	if err := b.AddPath("  A  >  B  "); err != nil {
		t.Fatalf("AddPath: %v", err)
	}
	if err := b.AddPath("A > B > C"); err != nil {
		t.Fatalf("AddPath: %v", err)
	}
	// Trimmed segments must dedup against each other.
	if b.Forest().Len() != 3 {
		t.Errorf("Expected 3 nodes after trimming, got %d", b.Forest().Len())
	}
}

func TestBuilderSameTitleDifferentBranches(t *testing.T) {
	// "Accessories" under two different parents must stay two nodes.
	b := NewBuilder()
	if err := b.AddLines([]string{"A > Accessories", "B > Accessories"}); err != nil {
		t.Fatalf("AddLines: %v", err)
	}
	if b.Forest().Len() != 4 {
		t.Errorf("Expected 4 nodes, got %d", b.Forest().Len())
	}
}

func TestBuilderRootOrder(t *testing.T) {
	b := NewBuilder()
	if err := b.AddLines([]string{"Z > A", "M", "A > B"}); err != nil {
		t.Fatalf("AddLines: %v", err)
	}
	roots := b.Forest().Roots()
	if len(roots) != 3 {
		t.Fatalf("Expected 3 roots, got %d", len(roots))
	}
	wantOrder := []string{"Z", "M", "A"}
	for i, r := range roots {
		if r.Title != wantOrder[i] {
			t.Errorf("Root %d: got %q, want %q", i, r.Title, wantOrder[i])
		}
	}
}

func TestBuilderLimits(t *testing.T) {
	b := NewBuilderWithLimits(2, 0)
	if err := b.AddLines([]string{"A", "B"}); err != nil {
		t.Fatalf("AddLines: %v", err)
	}
	err := b.AddPath("C")
	if !errors.Is(err, internalerr.ErrLimitExceeded) {
		t.Errorf("Expected ErrLimitExceeded on third line, got %v", err)
	}

	b = NewBuilderWithLimits(0, 2)
	err = b.AddPath("A > B > C")
	if !errors.Is(err, internalerr.ErrLimitExceeded) {
		t.Errorf("Expected ErrLimitExceeded on deep path, got %v", err)
	}
}

func TestBuilderIdempotentReparse(t *testing.T) {
	lines := []string{
		"Animals & Pet Supplies > Live Animals",
		"Animals & Pet Supplies > Pet Supplies > Bird Supplies",
		"Apparel & Accessories",
	}

	build := func() *Forest {
		b := NewBuilder()
		if err := b.AddLines(lines); err != nil {
			t.Fatalf("AddLines: %v", err)
		}
		return b.Forest()
	}

	f1, f2 := build(), build()
	if f1.Len() != f2.Len() {
		t.Fatalf("Node counts differ: %d vs %d", f1.Len(), f2.Len())
	}
	var assertSame func(a, b *CategoryNode)
	assertSame = func(a, b *CategoryNode) {
		if a.ID != b.ID || a.Title != b.Title {
			t.Errorf("Node mismatch: (%d,%q) vs (%d,%q)", a.ID, a.Title, b.ID, b.Title)
		}
		if len(a.Children) != len(b.Children) {
			t.Fatalf("Child count mismatch at %q", a.Title)
		}
		for i := range a.Children {
			assertSame(a.Children[i], b.Children[i])
		}
	}
	for i := range f1.Roots() {
		assertSame(f1.Roots()[i], f2.Roots()[i])
	}
}

func TestForestPathTo(t *testing.T) {
	b := NewBuilder()
	if err := b.AddPath("Animals & Pet Supplies > Pet Supplies > Bird Supplies"); err != nil {
		t.Fatalf("AddPath: %v", err)
	}
	f := b.Forest()

	got := f.PathTo(3)
	want := []string{"Animals & Pet Supplies", "Pet Supplies", "Bird Supplies"}
	if len(got) != len(want) {
		t.Fatalf("PathTo length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PathTo[%d]: got %q, want %q", i, got[i], want[i])
		}
	}

	if f.PathTo(99) != nil {
		t.Error("PathTo of unknown id should be nil")
	}
}

func TestSplitPath(t *testing.T) {
	segs := SplitPath("Animals & Pet Supplies > Live Animals")
	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segs))
	}
	if segs[0] != "Animals & Pet Supplies" || segs[1] != "Live Animals" {
		t.Errorf("Unexpected segments: %v", segs)
	}

	if segs := SplitPath("   "); len(segs) != 0 {
		t.Errorf("Whitespace line should split to nothing, got %v", segs)
	}
}
