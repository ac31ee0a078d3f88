// Package importer sequences one full import run: fetch everything,
// deactivate when the window allows, persist, link boards, advance
// activation, derive fields, reindex, report.
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/lifecycle"
	"boardfeed-engine/internal/notify"
	"boardfeed-engine/internal/search"
	"boardfeed-engine/internal/store"

	"github.com/gofrs/flock"
)

// Outcome is how a run ended.
type Outcome string

const (
	// OutcomeCompleted is the normal end; a report goes out only when the
	// collector is non-empty.
	OutcomeCompleted Outcome = "completed"
	// OutcomeNoNewJobs means every source returned nothing. Failures
	// collected on the way are still reported.
	OutcomeNoNewJobs Outcome = "no_new_jobs"
	// OutcomeError means the run could not finish: the aggregation came
	// back malformed or a write stage failed. The report is sent first.
	OutcomeError Outcome = "auto_import_error"
)

// Fetcher is the aggregation half of a run; *ingest.Aggregator is the real
// one.
type Fetcher interface {
	FetchAll(ctx context.Context, employers []domain.Employer, rep *domain.Collector) []domain.CanonicalJob
}

// Runner wires the collaborators of one import run. Zero-value Now means
// time.Now.
type Runner struct {
	DB        *sql.DB
	Employers []domain.Employer
	Agg       Fetcher
	Reindexer search.Reindexer
	Notifier  notify.Notifier
	Tagger    lifecycle.Tagger
	LockPath  string
	Now       func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// ErrRunInProgress is returned when another process holds the run lock.
var ErrRunInProgress = fmt.Errorf("an import run is already in progress")

// Run executes one import. It never panics out: any unhandled failure is
// recorded, reported, and turned into OutcomeError so the scheduler
// survives.
func (r *Runner) Run(ctx context.Context) (outcome Outcome, err error) {
	if r.LockPath != "" {
		lock := flock.New(r.LockPath)
		locked, lockErr := lock.TryLock()
		if lockErr != nil {
			return OutcomeError, fmt.Errorf("run lock: %w", lockErr)
		}
		if !locked {
			return OutcomeNoNewJobs, ErrRunInProgress
		}
		defer func() { _ = lock.Unlock() }()
	}

	rep := domain.NewCollector()
	defer func() {
		if rec := recover(); rec != nil {
			rep.Add(domain.BrokenImport{
				Error:  fmt.Sprintf("panic: %v", rec),
				Source: "auto_import",
			})
			r.report(rep)
			outcome, err = OutcomeError, fmt.Errorf("import run panicked: %v", rec)
		}
	}()

	start := r.now()
	log.Printf("[run] start")

	jobs := r.Agg.FetchAll(ctx, r.Employers, rep)
	if err := ctx.Err(); err != nil {
		return r.fail(rep, "auto_import", err)
	}

	if bad := malformed(jobs); bad != "" {
		rep.Add(domain.BrokenImport{Error: bad, Source: "auto_import"})
		r.report(rep)
		log.Printf("[run] aborted: %s", bad)
		return OutcomeError, nil
	}

	// An empty aggregation ends the run here, before the close-all below:
	// a total provider outage must never deactivate what is already live.
	if len(jobs) == 0 {
		r.report(rep)
		log.Printf("[run] no new jobs")
		return OutcomeNoNewJobs, nil
	}

	if lifecycle.TimeToDeactivate(start) {
		if n, err := store.DeactivateAllMemberships(ctx, r.DB); err != nil {
			log.Printf("[run] deactivate failed: %v", err)
			rep.Add(domain.BrokenImport{Error: err.Error(), Source: "deactivate_all_jobs_error"})
		} else {
			log.Printf("[run] deactivated %d board memberships", n)
		}
	}
	if err := ctx.Err(); err != nil {
		return r.fail(rep, "auto_import", err)
	}

	if err := store.UpsertJobs(ctx, r.DB, jobs, start); err != nil {
		return r.fail(rep, "auto_import", fmt.Errorf("upsert jobs: %w", err))
	}

	persisted, err := r.persistedJobs(ctx, jobs)
	if err != nil {
		return r.fail(rep, "auto_import", err)
	}

	if err := r.associateBoards(ctx, persisted); err != nil {
		return r.fail(rep, "auto_import", err)
	}
	if err := ctx.Err(); err != nil {
		return r.fail(rep, "auto_import", err)
	}

	if err := r.trackActivation(ctx, persisted, start); err != nil {
		log.Printf("[run] activation tracking failed: %v", err)
		rep.Add(domain.BrokenImport{Error: err.Error(), Source: "set_activation_histories"})
	}

	newJobs, err := store.JobsCreatedBetween(ctx, r.DB, start.Add(-lifecycle.RecentWindow), r.now().Add(time.Second), domain.PostedByImport)
	if err != nil {
		return r.fail(rep, "auto_import", fmt.Errorf("select new jobs: %w", err))
	}
	log.Printf("[run] %d of %d jobs are new", len(newJobs), len(persisted))

	if err := r.updateDerivedFields(ctx, newJobs); err != nil {
		log.Printf("[run] derived fields failed: %v", err)
		rep.Add(domain.BrokenImport{Error: err.Error(), Source: "update_job_fields_error"})
	}
	if err := ctx.Err(); err != nil {
		return r.fail(rep, "auto_import", err)
	}

	if err := r.reindex(ctx, newJobs); err != nil {
		log.Printf("[run] reindex failed: %v", err)
		rep.Add(domain.BrokenImport{Error: err.Error(), Source: "reindex_jobs_error"})
	}

	r.report(rep)
	log.Printf("[run] done in %s", r.now().Sub(start).Round(time.Millisecond))
	return OutcomeCompleted, nil
}

// fail records a fatal stage error and flushes the report before ending the
// run, so collected failures are never lost to a store problem.
func (r *Runner) fail(rep *domain.Collector, source string, err error) (Outcome, error) {
	rep.Add(domain.BrokenImport{Error: err.Error(), Source: source})
	r.report(rep)
	log.Printf("[run] aborted: %v", err)
	return OutcomeError, err
}

// malformed is the structural sanity check on the aggregation before any
// write happens.
func malformed(jobs []domain.CanonicalJob) string {
	for _, j := range jobs {
		if j.ATSID == "" {
			return fmt.Sprintf("job %q from employer %d has no ats id", j.Title, j.EmployerID)
		}
		if j.EmployerID == 0 {
			return fmt.Sprintf("job %q (%s) has no employer", j.Title, j.ATSID)
		}
	}
	return ""
}

func (r *Runner) persistedJobs(ctx context.Context, jobs []domain.CanonicalJob) ([]domain.Job, error) {
	ids := make([]string, 0, len(jobs))
	seen := map[string]bool{}
	for _, j := range jobs {
		if !seen[j.ATSID] {
			seen[j.ATSID] = true
			ids = append(ids, j.ATSID)
		}
	}
	persisted, err := store.JobsByATSID(ctx, r.DB, ids)
	if err != nil {
		return nil, fmt.Errorf("load persisted jobs: %w", err)
	}
	return persisted, nil
}

func (r *Runner) associateBoards(ctx context.Context, persisted []domain.Job) error {
	boardsByEmployer := map[int64][]int64{}
	for _, emp := range r.Employers {
		boardsByEmployer[emp.ID] = emp.JobBoardIDs
	}

	var memberships []domain.Membership
	for _, job := range persisted {
		for _, boardID := range boardsByEmployer[job.EmployerID] {
			memberships = append(memberships, domain.Membership{
				JobID:      job.ID,
				JobBoardID: boardID,
				Active:     true,
			})
		}
	}
	if err := store.UpsertMemberships(ctx, r.DB, memberships); err != nil {
		return fmt.Errorf("associate boards: %w", err)
	}
	return nil
}

func (r *Runner) trackActivation(ctx context.Context, persisted []domain.Job, now time.Time) error {
	for i := range persisted {
		if !lifecycle.Track(&persisted[i], now) {
			continue
		}
		if err := store.UpdateActivation(ctx, r.DB, persisted[i]); err != nil {
			return fmt.Errorf("track activation: %w", err)
		}
	}
	return nil
}

func (r *Runner) updateDerivedFields(ctx context.Context, newJobs []domain.Job) error {
	for i := range newJobs {
		if !r.Tagger.Apply(&newJobs[i]) {
			continue
		}
		if err := store.UpdateCustomFields(ctx, r.DB, newJobs[i]); err != nil {
			return fmt.Errorf("update derived fields: %w", err)
		}
	}
	return nil
}

func (r *Runner) reindex(ctx context.Context, newJobs []domain.Job) error {
	scope := lifecycle.ReindexScope(r.now())
	if scope.Full {
		log.Printf("[run] full reindex")
		if err := r.Reindexer.ReindexAll(ctx); err != nil {
			return fmt.Errorf("reindex all: %w", err)
		}
		return nil
	}

	ids := make([]int64, 0, len(newJobs))
	for _, job := range newJobs {
		if !job.CreatedAt.Before(scope.Since) && job.CreatedAt.Before(scope.Until.Add(time.Second)) {
			ids = append(ids, job.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	log.Printf("[run] reindexing %d new jobs", len(ids))
	if err := r.Reindexer.ReindexSubset(ctx, ids); err != nil {
		return fmt.Errorf("reindex subset: %w", err)
	}
	return nil
}

// report sends the consolidated failure list; delivery problems only get
// logged, the run outcome is unaffected.
func (r *Runner) report(rep *domain.Collector) {
	if rep.Empty() || r.Notifier == nil {
		return
	}
	items := rep.Items()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := r.Notifier.SendBrokenImports(ctx, items); err != nil {
		log.Printf("[run] report delivery failed: %v", err)
		return
	}
	log.Printf("[run] reported %d broken imports", len(items))
}
