package overrides

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"epicgraph/internal/geom"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Repository persists override maps by namespace.
type Repository interface {
	Load(ctx context.Context, namespace string) (Map, error)
	Save(ctx context.Context, namespace string, m Map) error
	Close() error
}

const overridesSchema = `
CREATE TABLE IF NOT EXISTS node_overrides (
	namespace TEXT NOT NULL,
	issue_id TEXT NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	PRIMARY KEY (namespace, issue_id)
)`

// SQLiteRepository stores overrides in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating when needed) the overrides database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, storageError("open", fmt.Errorf("overrides path is required"))
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, storageError("create directory", err)
	}
	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, storageError("open", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, overridesSchema); err != nil {
		_ = db.Close()
		return nil, storageError("create schema", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func buildDSN(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	u.RawQuery = q.Encode()
	return u.String()
}

// Load returns the stored map for namespace; unknown namespaces are empty.
func (r *SQLiteRepository) Load(ctx context.Context, namespace string) (Map, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT issue_id, x, y FROM node_overrides WHERE namespace = ? ORDER BY issue_id`, namespace)
	if err != nil {
		return nil, storageError("query", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	m := Map{}
	for rows.Next() {
		var id string
		var x, y float64
		if err := rows.Scan(&id, &x, &y); err != nil {
			return nil, storageError("scan", err)
		}
		m[id] = geom.Point{X: x, Y: y}
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("query", err)
	}
	return m, nil
}

// Save replaces the stored map for namespace with m.
func (r *SQLiteRepository) Save(ctx context.Context, namespace string, m Map) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM node_overrides WHERE namespace = ?`, namespace); err != nil {
		return storageError("delete", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO node_overrides (namespace, issue_id, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return storageError("prepare", err)
	}
	defer func() {
		_ = stmt.Close()
	}()
	for id, p := range m {
		if _, err := stmt.ExecContext(ctx, namespace, id, p.X, p.Y); err != nil {
			return storageError("insert", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storageError("commit", err)
	}
	return nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
