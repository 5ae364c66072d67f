package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/categorical/taxonest/pkg/taxonest/store"
)

// DefaultTable is the category table name when none is configured.
const DefaultTable = "google_product_categories"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates
// the schema if needed. An optional table name overrides DefaultTable.
func OpenSQLite(ctx context.Context, path string, table ...string) (store.Store, error) {
	t := DefaultTable
	if len(table) > 0 && table[0] != "" {
		t = table[0]
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db, t); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, table: t}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist. "left" and "right" are
// SQL keywords, hence the quoting.
func initSchema(ctx context.Context, db *sql.DB, table string) error {
	schema := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
	id INTEGER PRIMARY KEY,
	parent_id INTEGER,
	title TEXT NOT NULL,
	"left" INTEGER NOT NULL,
	"right" INTEGER NOT NULL,
	depth INTEGER NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES %[1]s(id)
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_left ON %[1]s("left");
CREATE INDEX IF NOT EXISTS idx_%[1]s_right ON %[1]s("right");
CREATE INDEX IF NOT EXISTS idx_%[1]s_parent_id ON %[1]s(parent_id);
CREATE INDEX IF NOT EXISTS idx_%[1]s_depth ON %[1]s(depth);

CREATE TABLE IF NOT EXISTS builds (
	id TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	source_url TEXT,
	total INTEGER NOT NULL
);
`, table)

	_, err := db.ExecContext(ctx, schema)
	return err
}

// ReplaceAll rewrites the category table with one build inside a single
// transaction. Rows are inserted in traversal order, parents before
// children, so the foreign key holds throughout.
func (s *sqliteStore) ReplaceAll(ctx context.Context, build store.BuildInfo, cats []store.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, parent_id, title, "left", "right", depth) VALUES (?, ?, ?, ?, ?, ?)`, s.table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cats {
		var parent interface{}
		if c.ParentID != nil {
			parent = *c.ParentID
		}
		if _, err := stmt.ExecContext(ctx, c.ID, parent, c.Title, c.Left, c.Right, c.Depth); err != nil {
			return fmt.Errorf("insert category %d: %w", c.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO builds (id, generated_at, source_url, total) VALUES (?, ?, ?, ?)",
		build.ID, build.GeneratedAt.UTC().Format(time.RFC3339), build.SourceURL, len(cats)); err != nil {
		return err
	}

	return tx.Commit()
}

// LastBuild returns the most recently recorded build.
func (s *sqliteStore) LastBuild(ctx context.Context) (store.BuildInfo, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, generated_at, source_url, total FROM builds ORDER BY generated_at DESC LIMIT 1")

	var b store.BuildInfo
	var generated string
	err := row.Scan(&b.ID, &generated, &b.SourceURL, &b.Total)
	if err == sql.ErrNoRows {
		return store.BuildInfo{}, false, nil
	}
	if err != nil {
		return store.BuildInfo{}, false, err
	}

	b.GeneratedAt, err = time.Parse(time.RFC3339, generated)
	if err != nil {
		return store.BuildInfo{}, false, fmt.Errorf("parse generated_at: %w", err)
	}
	return b, true, nil
}

// GetCategory returns a category by ID.
func (s *sqliteStore) GetCategory(ctx context.Context, id int64) (store.Category, bool, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT id, parent_id, title, "left", "right", depth FROM %s WHERE id = ?`, s.table), id)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return store.Category{}, false, nil
	}
	if err != nil {
		return store.Category{}, false, err
	}
	return c, true, nil
}

// Roots returns the depth-1 categories ordered by left.
func (s *sqliteStore) Roots(ctx context.Context) ([]store.Category, error) {
	return s.queryCategories(ctx, fmt.Sprintf(
		`SELECT id, parent_id, title, "left", "right", depth FROM %s WHERE parent_id IS NULL ORDER BY "left"`, s.table))
}

// ChildrenOf returns the direct children of id ordered by left.
func (s *sqliteStore) ChildrenOf(ctx context.Context, id int64) ([]store.Category, error) {
	return s.queryCategories(ctx, fmt.Sprintf(
		`SELECT id, parent_id, title, "left", "right", depth FROM %s WHERE parent_id = ? ORDER BY "left"`, s.table), id)
}

// Descendants resolves the whole subtree with one range scan.
func (s *sqliteStore) Descendants(ctx context.Context, id int64) ([]store.Category, error) {
	return s.queryCategories(ctx, fmt.Sprintf(`
SELECT c.id, c.parent_id, c.title, c."left", c."right", c.depth
FROM %[1]s c, %[1]s n
WHERE n.id = ? AND c."left" > n."left" AND c."right" < n."right"
ORDER BY c."left"`, s.table), id)
}

// Ancestors resolves the breadcrumb chain with one range scan.
func (s *sqliteStore) Ancestors(ctx context.Context, id int64) ([]store.Category, error) {
	return s.queryCategories(ctx, fmt.Sprintf(`
SELECT c.id, c.parent_id, c.title, c."left", c."right", c.depth
FROM %[1]s c, %[1]s n
WHERE n.id = ? AND c."left" < n."left" AND c."right" > n."right"
ORDER BY c."left"`, s.table), id)
}

// Subtree is Descendants limited to maxDepth levels below id.
func (s *sqliteStore) Subtree(ctx context.Context, id int64, maxDepth int64) ([]store.Category, error) {
	return s.queryCategories(ctx, fmt.Sprintf(`
SELECT c.id, c.parent_id, c.title, c."left", c."right", c.depth
FROM %[1]s c, %[1]s n
WHERE n.id = ? AND c."left" > n."left" AND c."right" < n."right" AND c.depth <= n.depth + ?
ORDER BY c."left"`, s.table), id, maxDepth)
}

// CountByDepth returns category counts keyed by depth.
func (s *sqliteStore) CountByDepth(ctx context.Context) (map[int64]int64, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT depth, COUNT(*) FROM %s GROUP BY depth", s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var depth, count int64
		if err := rows.Scan(&depth, &count); err != nil {
			return nil, err
		}
		counts[depth] = count
	}
	return counts, rows.Err()
}

func (s *sqliteStore) queryCategories(ctx context.Context, query string, args ...interface{}) ([]store.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row rowScanner) (store.Category, error) {
	var c store.Category
	var parent sql.NullInt64
	if err := row.Scan(&c.ID, &parent, &c.Title, &c.Left, &c.Right, &c.Depth); err != nil {
		return store.Category{}, err
	}
	if parent.Valid {
		p := parent.Int64
		c.ParentID = &p
	}
	return c, nil
}
