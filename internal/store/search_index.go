package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// RebuildSearchIndex drops and repopulates the whole search_index table from
// the jobs table.
func RebuildSearchIndex(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM search_index;`); err != nil {
		return fmt.Errorf("clear search index: %w", err)
	}
	if err := indexRows(ctx, tx, ""); err != nil {
		return err
	}
	return tx.Commit()
}

// IndexJobs refreshes index rows for just the given job ids.
func IndexJobs(ctx context.Context, db *sql.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	args := make([]string, len(ids))
	for i, id := range ids {
		args[i] = fmt.Sprintf("%d", id)
	}
	where := "WHERE id IN (" + strings.Join(args, ",") + ")"
	if err := indexRows(ctx, tx, where); err != nil {
		return err
	}
	return tx.Commit()
}

func indexRows(ctx context.Context, tx *sql.Tx, where string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if where == "" {
		// SQLite's parser needs a WHERE clause between a SELECT source and
		// ON CONFLICT, or it rejects the statement at "DO".
		where = "WHERE true"
	}
	_, err := tx.ExecContext(ctx, `
INSERT INTO search_index (job_id, title, employer_name, location, body, indexed_at)
SELECT id, title, employer_name, location, description, ?
FROM jobs `+where+`
ON CONFLICT(job_id) DO UPDATE SET
  title = excluded.title,
  employer_name = excluded.employer_name,
  location = excluded.location,
  body = excluded.body,
  indexed_at = excluded.indexed_at;`, now)
	if err != nil {
		return fmt.Errorf("index jobs: %w", err)
	}
	return nil
}
