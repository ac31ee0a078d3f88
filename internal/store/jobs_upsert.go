package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"boardfeed-engine/internal/domain"
)

// UpsertJobs writes one canonical record per row, keyed by ats_id. A record
// seen before updates in place; created_at survives the update so a
// re-imported job never looks new again.
func UpsertJobs(ctx context.Context, db *sql.DB, jobs []domain.CanonicalJob, now time.Time) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs (ats_id, title, description, how_to_apply, employer_id,
  employer_name, employer_logo, location, remote, posted_by, custom_fields,
  created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(ats_id) DO UPDATE SET
  title = excluded.title,
  description = excluded.description,
  how_to_apply = excluded.how_to_apply,
  employer_id = excluded.employer_id,
  employer_name = excluded.employer_name,
  employer_logo = excluded.employer_logo,
  location = excluded.location,
  remote = excluded.remote,
  posted_by = excluded.posted_by,
  custom_fields = excluded.custom_fields,
  updated_at = excluded.updated_at;`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	ts := now.UTC().Format(time.RFC3339)
	for _, j := range jobs {
		fields := j.CustomFields
		if fields == nil {
			fields = map[string]any{}
		}
		fieldsJSON, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("encode custom fields for %s: %w", j.ATSID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			j.ATSID, j.Title, j.Description, j.HowToApply, j.EmployerID,
			j.EmployerName, j.EmployerLogo, j.Location, boolInt(j.Remote),
			j.PostedBy, string(fieldsJSON), ts, ts,
		); err != nil {
			return fmt.Errorf("upsert job %s: %w", j.ATSID, err)
		}
	}

	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
