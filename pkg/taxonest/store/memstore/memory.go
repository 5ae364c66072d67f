package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/categorical/taxonest/pkg/taxonest/store"
)

// Store is an in-memory implementation of store.Store for tests and
// demos. Queries run the same range comparisons the SQL backend does.
type Store struct {
	mu    sync.RWMutex
	build store.BuildInfo
	has   bool
	cats  map[int64]store.Category
	order []int64 // ids sorted by left
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{cats: make(map[int64]store.Category)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// ReplaceAll swaps in a complete new build.
func (s *Store) ReplaceAll(ctx context.Context, build store.BuildInfo, cats []store.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cats = make(map[int64]store.Category, len(cats))
	s.order = make([]int64, 0, len(cats))
	for _, c := range cats {
		s.cats[c.ID] = c
		s.order = append(s.order, c.ID)
	}
	sort.Slice(s.order, func(i, j int) bool {
		return s.cats[s.order[i]].Left < s.cats[s.order[j]].Left
	})

	build.Total = len(cats)
	s.build = build
	s.has = true
	return nil
}

// LastBuild returns the current build metadata.
func (s *Store) LastBuild(ctx context.Context) (store.BuildInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.build, s.has, nil
}

// GetCategory returns a category by ID.
func (s *Store) GetCategory(ctx context.Context, id int64) (store.Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cats[id]
	return c, ok, nil
}

// Roots returns depth-1 categories ordered by left.
func (s *Store) Roots(ctx context.Context) ([]store.Category, error) {
	return s.selectOrdered(func(c store.Category) bool { return c.ParentID == nil }), nil
}

// ChildrenOf returns the direct children of id ordered by left.
func (s *Store) ChildrenOf(ctx context.Context, id int64) ([]store.Category, error) {
	return s.selectOrdered(func(c store.Category) bool {
		return c.ParentID != nil && *c.ParentID == id
	}), nil
}

// Descendants returns every category inside id's range, ordered by left.
func (s *Store) Descendants(ctx context.Context, id int64) ([]store.Category, error) {
	s.mu.RLock()
	n, ok := s.cats[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.selectOrdered(func(c store.Category) bool {
		return n.Left < c.Left && c.Right < n.Right
	}), nil
}

// Ancestors returns the chain containing id's range, root first.
func (s *Store) Ancestors(ctx context.Context, id int64) ([]store.Category, error) {
	s.mu.RLock()
	n, ok := s.cats[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.selectOrdered(func(c store.Category) bool {
		return c.Left < n.Left && n.Right < c.Right
	}), nil
}

// Subtree returns descendants at most maxDepth levels below id.
func (s *Store) Subtree(ctx context.Context, id int64, maxDepth int64) ([]store.Category, error) {
	s.mu.RLock()
	n, ok := s.cats[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.selectOrdered(func(c store.Category) bool {
		return n.Left < c.Left && c.Right < n.Right && c.Depth <= n.Depth+maxDepth
	}), nil
}

// CountByDepth returns category counts keyed by depth.
func (s *Store) CountByDepth(ctx context.Context) (map[int64]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int64)
	for _, c := range s.cats {
		counts[c.Depth]++
	}
	return counts, nil
}

func (s *Store) selectOrdered(keep func(store.Category) bool) []store.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Category
	for _, id := range s.order {
		if c := s.cats[id]; keep(c) {
			out = append(out, c)
		}
	}
	return out
}
