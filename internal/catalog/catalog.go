// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps the article index in SQLite with an FTS5 table over
// titles and excerpts, so a site build can list and search articles
// without reparsing the JSON index. FTS5 needs the sqlite_fts5 build tag
// with mattn/go-sqlite3.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docpress/pkg/types"
)

const defaultLimit = 20

// Catalog is an open article database.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the database at path and its schema.
func Open(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	c := &Catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	if _, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS articles (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		cover TEXT,
		excerpt TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("creating articles table: %w", err)
	}

	var ftsExists int
	if err := c.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	for _, stmt := range []string{
		`CREATE VIRTUAL TABLE articles_fts USING fts5(title, excerpt, content=articles, content_rowid=rowid)`,
		`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
			INSERT INTO articles_fts(rowid, title, excerpt) VALUES (new.rowid, new.title, new.excerpt);
		END`,
		`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
			INSERT INTO articles_fts(articles_fts, rowid, title, excerpt) VALUES('delete', old.rowid, old.title, old.excerpt);
		END`,
	} {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// Replace swaps the catalog contents for articles in one transaction.
// Records keep the order given.
func (c *Catalog) Replace(ctx context.Context, articles []types.Article) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("clearing articles: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (slug, title, url, cover, excerpt) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		var cover sql.NullString
		if a.Cover != nil {
			cover = sql.NullString{String: *a.Cover, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, a.Slug, a.Title, a.URL, cover, a.Excerpt); err != nil {
			return fmt.Errorf("inserting article %s: %w", a.Slug, err)
		}
	}
	return tx.Commit()
}

// List returns every article in insertion order.
func (c *Catalog) List(ctx context.Context) ([]types.Article, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT slug, title, url, cover, excerpt FROM articles ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return scanArticles(rows)
}

// Search runs an FTS5 query over titles and excerpts and returns the best
// matches first. A non-positive limit uses 20.
func (c *Catalog) Search(ctx context.Context, query string, limit int) ([]types.Article, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT a.slug, a.title, a.url, a.cover, a.excerpt
		FROM articles_fts
		JOIN articles a ON a.rowid = articles_fts.rowid
		WHERE articles_fts MATCH ?
		ORDER BY articles_fts.rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching catalog for %q: %w", query, err)
	}
	return scanArticles(rows)
}

func scanArticles(rows *sql.Rows) ([]types.Article, error) {
	defer rows.Close()
	var articles []types.Article
	for rows.Next() {
		var (
			a     types.Article
			cover sql.NullString
		)
		if err := rows.Scan(&a.Slug, &a.Title, &a.URL, &cover, &a.Excerpt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if cover.Valid {
			c := cover.String
			a.Cover = &c
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
