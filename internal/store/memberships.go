package store

import (
	"context"
	"database/sql"
	"fmt"

	"boardfeed-engine/internal/domain"
)

// UpsertMemberships writes job/board links keyed by (job_id, job_board_id).
// Re-linking an existing pair just refreshes the active flag.
func UpsertMemberships(ctx context.Context, db *sql.DB, memberships []domain.Membership) error {
	if len(memberships) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs_job_boards (job_id, job_board_id, active)
VALUES (?, ?, ?)
ON CONFLICT(job_id, job_board_id) DO UPDATE SET active = excluded.active;`)
	if err != nil {
		return fmt.Errorf("prepare membership upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range memberships {
		if _, err := stmt.ExecContext(ctx, m.JobID, m.JobBoardID, boolInt(m.Active)); err != nil {
			return fmt.Errorf("upsert membership (%d,%d): %w", m.JobID, m.JobBoardID, err)
		}
	}
	return tx.Commit()
}

// DeactivateAllMemberships flips every membership inactive. Activation
// history ranges are left alone; the next import reopens what it still sees.
func DeactivateAllMemberships(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, `UPDATE jobs_job_boards SET active = 0 WHERE active = 1;`)
	if err != nil {
		return 0, fmt.Errorf("deactivate memberships: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
