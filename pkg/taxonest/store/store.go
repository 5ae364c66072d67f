// Package store persists annotated categories and answers ancestry
// queries through nested-set range comparisons.
package store

import (
	"context"
	"time"
)

// Category is a flat, annotated category record.
type Category struct {
	ID       int64
	ParentID *int64 // nil for roots
	Title    string
	Left     int64
	Right    int64
	Depth    int64
}

// BuildInfo identifies one complete regeneration of the table.
type BuildInfo struct {
	ID          string // ULID
	GeneratedAt time.Time
	SourceURL   string
	Total       int
}

// Store is the interface for persisting and querying a taxonomy build.
// The table is always replaced wholesale; the source forest is rebuilt
// from scratch, never patched.
type Store interface {
	Close() error

	// ReplaceAll drops every existing row and inserts the given
	// categories as the current build.
	ReplaceAll(ctx context.Context, build BuildInfo, cats []Category) error

	// LastBuild returns the most recent build recorded by ReplaceAll.
	LastBuild(ctx context.Context) (BuildInfo, bool, error)

	GetCategory(ctx context.Context, id int64) (Category, bool, error)
	Roots(ctx context.Context) ([]Category, error)
	ChildrenOf(ctx context.Context, id int64) ([]Category, error)

	// Descendants returns every category strictly inside id's range,
	// ordered by left.
	Descendants(ctx context.Context, id int64) ([]Category, error)

	// Ancestors returns the chain from root down to id's parent,
	// ordered by left (i.e. root first).
	Ancestors(ctx context.Context, id int64) ([]Category, error)

	// Subtree is Descendants limited to maxDepth levels below id.
	Subtree(ctx context.Context, id int64, maxDepth int64) ([]Category, error)

	CountByDepth(ctx context.Context) (map[int64]int64, error)
}
