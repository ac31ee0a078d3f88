// Package lifecycle owns the time-dependent decisions of an import run:
// when a job's activation history advances, when the daily close-all fires,
// and how much of the search index a run is allowed to rebuild.
package lifecycle

import (
	"time"

	"boardfeed-engine/internal/domain"
)

// Track advances the job's activation bookkeeping for an import that saw the
// job at time now. It reports whether the job changed and needs persisting.
//
// Cases, in order:
//   - no history, or the last range closed in the past: a new open range
//     starts now;
//   - the activation date is already set: nothing to do;
//   - otherwise the last range is reopened in place. This covers both the
//     never-activated backfill and a range closed with a future expiration:
//     appending there would put two ranges in flight at once.
//
// At most one open range ever exists and ranges never move backwards.
func Track(job *domain.Job, now time.Time) bool {
	ranges := job.History.DateRanges
	n := len(ranges)
	switch {
	case n == 0 || (ranges[n-1].To != nil && now.After(*ranges[n-1].To)):
		job.History.DateRanges = append(ranges, domain.DateRange{From: now})
		job.ActivationDate = &now
		job.ExpirationDate = nil
		return true
	case job.ActivationDate != nil:
		return false
	default:
		last := &job.History.DateRanges[n-1]
		last.From = now
		last.To = nil
		job.ActivationDate = &now
		job.ExpirationDate = nil
		return true
	}
}

// deactivation and full reindexing are only allowed in the morning window
// local time; outside it a run touches only its own recent jobs.
const (
	windowStartHour = 9
	windowEndHour   = 11
)

// TimeToDeactivate reports whether now falls inside the daily window in
// which the run closes every board membership before re-importing.
func TimeToDeactivate(now time.Time) bool {
	h := now.Hour()
	return h >= windowStartHour && h <= windowEndHour
}

// RecentWindow is how far back a run reaches for jobs to treat as freshly
// imported: scoped reindexing and field derivation both use it.
const RecentWindow = 15 * time.Minute

// Scope says whether a run rebuilds the whole search index or only the jobs
// the automated import created just now.
type Scope struct {
	Full  bool
	Since time.Time
	Until time.Time
}

// ReindexScope decides the reindex reach for a run referenced at now.
func ReindexScope(now time.Time) Scope {
	if TimeToDeactivate(now) {
		return Scope{Full: true}
	}
	return Scope{Since: now.Add(-RecentWindow), Until: now}
}
