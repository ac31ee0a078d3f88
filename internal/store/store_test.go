package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"boardfeed-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, Migrate(d.Pool))
	return d.Pool
}

func canonical(atsID, title string) domain.CanonicalJob {
	return domain.CanonicalJob{
		Title:        title,
		Description:  "<p>body</p>",
		HowToApply:   "https://apply.test/" + atsID,
		EmployerID:   1,
		EmployerName: "Acme",
		Location:     "Austin, TX",
		ATSID:        atsID,
		PostedBy:     domain.PostedByImport,
		CustomFields: map[string]any{"job_type": "Full-Time"},
	}
}

func TestMigrateTwice(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, Migrate(d.Pool))
	require.NoError(t, Migrate(d.Pool))
}

func TestUpsertJobsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	first := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, UpsertJobs(ctx, db, []domain.CanonicalJob{canonical("lev_123", "Engineer")}, first))

	second := first.Add(15 * time.Minute)
	require.NoError(t, UpsertJobs(ctx, db, []domain.CanonicalJob{canonical("lev_123", "Senior Engineer")}, second))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM jobs;`).Scan(&count))
	assert.Equal(t, 1, count, "same ats_id never duplicates")

	jobs, err := JobsByATSID(ctx, db, []string{"lev_123"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Engineer", jobs[0].Title)
	assert.Equal(t, first, jobs[0].CreatedAt, "created_at survives the update")
	assert.Equal(t, second, jobs[0].UpdatedAt)
	assert.Equal(t, "Full-Time", jobs[0].CustomFields["job_type"])
}

func TestJobsCreatedBetween(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	early := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	require.NoError(t, UpsertJobs(ctx, db, []domain.CanonicalJob{canonical("lev_1", "Old")}, early))
	require.NoError(t, UpsertJobs(ctx, db, []domain.CanonicalJob{canonical("lev_2", "New")}, late))

	manual := canonical("manual_1", "Hand posted")
	manual.PostedBy = "recruiter"
	require.NoError(t, UpsertJobs(ctx, db, []domain.CanonicalJob{manual}, late))

	got, err := JobsCreatedBetween(ctx, db, late, late.Add(time.Second), domain.PostedByImport)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "lev_2", got[0].ATSID)
}

func TestActivationRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, UpsertJobs(ctx, db, []domain.CanonicalJob{canonical("lev_9", "Engineer")}, now))

	jobs, err := JobsByATSID(ctx, db, []string{"lev_9"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	job := jobs[0]
	assert.Empty(t, job.History.DateRanges)
	assert.Nil(t, job.ActivationDate)

	job.History.DateRanges = append(job.History.DateRanges, domain.DateRange{From: now})
	job.ActivationDate = &now
	require.NoError(t, UpdateActivation(ctx, db, job))

	jobs, err = JobsByATSID(ctx, db, []string{"lev_9"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Len(t, jobs[0].History.DateRanges, 1)
	assert.Equal(t, now, jobs[0].History.DateRanges[0].From)
	assert.Nil(t, jobs[0].History.DateRanges[0].To)
	require.NotNil(t, jobs[0].ActivationDate)
	assert.Equal(t, now, *jobs[0].ActivationDate)
}

func TestMembershipsUpsertAndDeactivate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	memberships := []domain.Membership{
		{JobID: 1, JobBoardID: 10, Active: true},
		{JobID: 1, JobBoardID: 11, Active: true},
	}
	require.NoError(t, UpsertMemberships(ctx, db, memberships))
	require.NoError(t, UpsertMemberships(ctx, db, memberships), "re-linking is a no-op")

	var count, active int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*), SUM(active) FROM jobs_job_boards;`).Scan(&count, &active))
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, active)

	n, err := DeactivateAllMemberships(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, db.QueryRow(`SELECT SUM(active) FROM jobs_job_boards;`).Scan(&active))
	assert.Equal(t, 0, active)

	require.NoError(t, UpsertMemberships(ctx, db, memberships[:1]))
	require.NoError(t, db.QueryRow(`SELECT SUM(active) FROM jobs_job_boards;`).Scan(&active))
	assert.Equal(t, 1, active, "upsert reactivates without duplicating")
}

func TestSearchIndex(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, UpsertJobs(ctx, db, []domain.CanonicalJob{
		canonical("lev_1", "Engineer"),
		canonical("lev_2", "Designer"),
	}, now))

	require.NoError(t, RebuildSearchIndex(ctx, db))
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM search_index;`).Scan(&count))
	assert.Equal(t, 2, count)

	jobs, err := JobsByATSID(ctx, db, []string{"lev_1"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	_, err = db.Exec(`UPDATE jobs SET title = 'Principal Engineer' WHERE id = ?;`, jobs[0].ID)
	require.NoError(t, err)
	require.NoError(t, IndexJobs(ctx, db, []int64{jobs[0].ID}))

	var title string
	require.NoError(t, db.QueryRow(`SELECT title FROM search_index WHERE job_id = ?;`, jobs[0].ID).Scan(&title))
	assert.Equal(t, "Principal Engineer", title)
}
