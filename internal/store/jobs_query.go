package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"boardfeed-engine/internal/domain"
)

const jobColumns = `id, ats_id, title, description, how_to_apply, employer_id,
employer_name, employer_logo, location, remote, posted_by, custom_fields,
activation_history, activation_date, expiration_date, created_at, updated_at`

// JobsCreatedBetween returns jobs first seen inside [start, end) carrying the
// given posted_by tag.
func JobsCreatedBetween(ctx context.Context, db *sql.DB, start, end time.Time, postedBy string) ([]domain.Job, error) {
	rows, err := db.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE posted_by = ? AND created_at >= ? AND created_at < ?
ORDER BY id;`,
		postedBy, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// JobsByATSID resolves persisted jobs for the given dedup keys.
func JobsByATSID(ctx context.Context, db *sql.DB, atsIDs []string) ([]domain.Job, error) {
	var out []domain.Job
	// sqlite caps variadic parameters, so look up in modest chunks.
	const chunk = 200
	for len(atsIDs) > 0 {
		n := len(atsIDs)
		if n > chunk {
			n = chunk
		}
		part, rest := atsIDs[:n], atsIDs[n:]
		atsIDs = rest

		query := `SELECT ` + jobColumns + ` FROM jobs WHERE ats_id IN (?` +
			strings.Repeat(",?", n-1) + `) ORDER BY id;`
		args := make([]any, n)
		for i, id := range part {
			args[i] = id
		}
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		jobs, err := scanJobs(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, jobs...)
	}
	return out, nil
}

// UpdateActivation persists a job's activation bookkeeping after Track.
func UpdateActivation(ctx context.Context, db *sql.DB, job domain.Job) error {
	history, err := json.Marshal(job.History)
	if err != nil {
		return fmt.Errorf("encode activation history for job %d: %w", job.ID, err)
	}
	_, err = db.ExecContext(ctx, `
UPDATE jobs
SET activation_history = ?, activation_date = ?, expiration_date = ?, updated_at = ?
WHERE id = ?;`,
		string(history), nullTime(job.ActivationDate), nullTime(job.ExpirationDate),
		time.Now().UTC().Format(time.RFC3339), job.ID)
	if err != nil {
		return fmt.Errorf("update activation for job %d: %w", job.ID, err)
	}
	return nil
}

// UpdateCustomFields persists a job's derived custom-field taxonomy.
func UpdateCustomFields(ctx context.Context, db *sql.DB, job domain.Job) error {
	fields, err := json.Marshal(job.CustomFields)
	if err != nil {
		return fmt.Errorf("encode custom fields for job %d: %w", job.ID, err)
	}
	_, err = db.ExecContext(ctx, `
UPDATE jobs SET custom_fields = ?, updated_at = ? WHERE id = ?;`,
		string(fields), time.Now().UTC().Format(time.RFC3339), job.ID)
	if err != nil {
		return fmt.Errorf("update custom fields for job %d: %w", job.ID, err)
	}
	return nil
}

func scanJobs(rows *sql.Rows) ([]domain.Job, error) {
	var out []domain.Job
	for rows.Next() {
		var (
			j              domain.Job
			remote         int
			fieldsJSON     string
			historyJSON    string
			activationDate sql.NullString
			expirationDate sql.NullString
			createdAt      string
			updatedAt      string
		)
		if err := rows.Scan(
			&j.ID, &j.ATSID, &j.Title, &j.Description, &j.HowToApply,
			&j.EmployerID, &j.EmployerName, &j.EmployerLogo, &j.Location,
			&remote, &j.PostedBy, &fieldsJSON, &historyJSON,
			&activationDate, &expirationDate, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		j.Remote = remote != 0
		if err := json.Unmarshal([]byte(fieldsJSON), &j.CustomFields); err != nil {
			return nil, fmt.Errorf("decode custom fields for job %d: %w", j.ID, err)
		}
		if err := json.Unmarshal([]byte(historyJSON), &j.History); err != nil {
			return nil, fmt.Errorf("decode activation history for job %d: %w", j.ID, err)
		}
		j.ActivationDate = parseNullTime(activationDate)
		j.ExpirationDate = parseNullTime(expirationDate)
		j.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		j.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, j)
	}
	return out, rows.Err()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
