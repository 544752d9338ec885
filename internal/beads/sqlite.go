// Package beads reads issues from a beads tracker and mutates their
// dependencies.
package beads

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly
)

// sqliteClient reads issues directly from the beads SQLite database in
// read-only WAL mode. Mutations delegate to a Writer.
type sqliteClient struct {
	dbPath string
	dsn    string
	writer Writer
}

// NewSQLiteClient constructs a client that reads via SQLite and writes via w.
func NewSQLiteClient(dbPath string, w Writer) Client {
	trimmed := strings.TrimSpace(dbPath)
	return &sqliteClient{
		dbPath: trimmed,
		dsn:    buildSQLiteDSN(trimmed),
		writer: w,
	}
}

// buildSQLiteDSN creates a read-only WAL DSN for the given path.
func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	q.Set("_foreign_keys", "on")
	q.Set("cache", "shared")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *sqliteClient) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", c.dsn)
	if err != nil {
		return nil, fmt.Errorf("open beads sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping beads sqlite db: %w", err)
	}
	return db, nil
}

// Export returns every live issue with labels and both directions of
// dependencies populated, ordered by creation time.
func (c *sqliteClient) Export(ctx context.Context) ([]FullIssue, error) {
	db, err := c.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	issueMap, ordered, err := loadIssues(ctx, db)
	if err != nil {
		return nil, err
	}
	if err := loadLabels(ctx, db, issueMap); err != nil {
		return nil, err
	}
	if err := loadDependencies(ctx, db, issueMap); err != nil {
		return nil, err
	}

	out := make([]FullIssue, 0, len(ordered))
	for _, iss := range ordered {
		out = append(out, *iss)
	}
	return out, nil
}

func loadIssues(ctx context.Context, db *sql.DB) (map[string]*FullIssue, []*FullIssue, error) {
	const query = `SELECT id, title, description, status, priority, issue_type,
		       COALESCE(assignee, ''), created_at, updated_at, COALESCE(external_ref, '')
		FROM issues WHERE status != 'tombstone' AND (deleted_at IS NULL) ORDER BY created_at, id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query issues: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	issues := make(map[string]*FullIssue)
	var ordered []*FullIssue
	for rows.Next() {
		var iss FullIssue
		scanErr := rows.Scan(
			&iss.ID,
			&iss.Title,
			&iss.Description,
			&iss.Status,
			&iss.Priority,
			&iss.IssueType,
			&iss.Assignee,
			&iss.CreatedAt,
			&iss.UpdatedAt,
			&iss.ExternalRef,
		)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("scan issue: %w", scanErr)
		}
		iss.Labels = []string{}
		iss.Dependencies = []Dependency{}
		iss.Dependents = []Dependent{}
		issues[iss.ID] = &iss
		ordered = append(ordered, &iss)
	}
	return issues, ordered, rows.Err()
}

func loadLabels(ctx context.Context, db *sql.DB, issues map[string]*FullIssue) error {
	rows, err := db.QueryContext(ctx, `
		SELECT issue_id, label
		FROM labels
		ORDER BY issue_id, label
	`)
	if err != nil {
		return fmt.Errorf("query labels: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var issueID, label string
		if err := rows.Scan(&issueID, &label); err != nil {
			return fmt.Errorf("scan label: %w", err)
		}
		if iss, ok := issues[issueID]; ok {
			iss.Labels = append(iss.Labels, label)
		}
	}
	return rows.Err()
}

func loadDependencies(ctx context.Context, db *sql.DB, issues map[string]*FullIssue) error {
	rows, err := db.QueryContext(ctx, `
		SELECT issue_id, depends_on_id, type
		FROM dependencies
		ORDER BY issue_id, depends_on_id
	`)
	if err != nil {
		return fmt.Errorf("query dependencies: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var issueID, dependsOnID, depType string
		if err := rows.Scan(&issueID, &dependsOnID, &depType); err != nil {
			return fmt.Errorf("scan dependency: %w", err)
		}
		if iss, ok := issues[issueID]; ok {
			iss.Dependencies = append(iss.Dependencies, Dependency{TargetID: dependsOnID, Type: depType})
		}
		if rev, ok := issues[dependsOnID]; ok {
			rev.Dependents = append(rev.Dependents, Dependent{ID: issueID, Type: depType})
		}
	}
	return rows.Err()
}

func (c *sqliteClient) AddDependency(ctx context.Context, fromID, toID, depType string) error {
	if c.writer == nil {
		return fmt.Errorf("no writer configured for %s", c.dbPath)
	}
	return c.writer.AddDependency(ctx, fromID, toID, depType)
}

func (c *sqliteClient) RemoveDependency(ctx context.Context, fromID, toID, depType string) error {
	if c.writer == nil {
		return fmt.Errorf("no writer configured for %s", c.dbPath)
	}
	return c.writer.RemoveDependency(ctx, fromID, toID, depType)
}
