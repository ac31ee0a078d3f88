package lifecycle

import (
	"testing"
	"time"

	"boardfeed-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2026, 9, 1, hour, 30, 0, 0, time.Local)
}

func TestTrackOpensFirstRange(t *testing.T) {
	now := at(14)
	job := &domain.Job{}

	require.True(t, Track(job, now))
	require.Len(t, job.History.DateRanges, 1)
	assert.Equal(t, now, job.History.DateRanges[0].From)
	assert.Nil(t, job.History.DateRanges[0].To)
	require.NotNil(t, job.ActivationDate)
	assert.Equal(t, now, *job.ActivationDate)
	assert.Nil(t, job.ExpirationDate)
}

func TestTrackReopensAfterClosedRange(t *testing.T) {
	closed := at(9)
	end := at(10)
	job := &domain.Job{
		History: domain.ActivationHistory{
			DateRanges: []domain.DateRange{{From: closed, To: &end}},
		},
	}

	now := at(14)
	require.True(t, Track(job, now))
	require.Len(t, job.History.DateRanges, 2)
	assert.NotNil(t, job.History.DateRanges[0].To, "closed range stays closed")
	assert.Nil(t, job.History.DateRanges[1].To)
	assert.Equal(t, now, job.History.DateRanges[1].From)
}

func TestTrackBackfillsMissingActivationDate(t *testing.T) {
	expires := at(16)
	job := &domain.Job{
		History: domain.ActivationHistory{
			DateRanges: []domain.DateRange{{From: at(9)}},
		},
		ExpirationDate: &expires,
	}

	now := at(14)
	require.True(t, Track(job, now))
	require.Len(t, job.History.DateRanges, 1, "no second open range")
	assert.Equal(t, now, job.History.DateRanges[0].From)
	require.NotNil(t, job.ActivationDate)
	assert.Equal(t, now, *job.ActivationDate)
	assert.Nil(t, job.ExpirationDate)
}

func TestTrackReopensRangeClosedInTheFuture(t *testing.T) {
	end := at(18)
	job := &domain.Job{
		History: domain.ActivationHistory{
			DateRanges: []domain.DateRange{{From: at(9), To: &end}},
		},
		ExpirationDate: &end,
	}

	now := at(14)
	require.True(t, Track(job, now))
	require.Len(t, job.History.DateRanges, 1, "future-dated close reopens in place")
	assert.Equal(t, now, job.History.DateRanges[0].From)
	assert.Nil(t, job.History.DateRanges[0].To)
	assert.Nil(t, job.ExpirationDate)
}

func TestTrackNoopWhenCloseIsFutureAndDateSet(t *testing.T) {
	activated := at(9)
	end := at(18)
	job := &domain.Job{
		History: domain.ActivationHistory{
			DateRanges: []domain.DateRange{{From: activated, To: &end}},
		},
		ActivationDate: &activated,
		ExpirationDate: &end,
	}

	assert.False(t, Track(job, at(14)))
	require.Len(t, job.History.DateRanges, 1)
	assert.NotNil(t, job.History.DateRanges[0].To, "scheduled close stays on the books")
}

func TestTrackNoopWhenAlreadyActive(t *testing.T) {
	activated := at(9)
	job := &domain.Job{
		History: domain.ActivationHistory{
			DateRanges: []domain.DateRange{{From: activated}},
		},
		ActivationDate: &activated,
	}

	assert.False(t, Track(job, at(14)))
	assert.Equal(t, activated, job.History.DateRanges[0].From)
}

func TestTimeToDeactivate(t *testing.T) {
	assert.False(t, TimeToDeactivate(at(8)))
	assert.True(t, TimeToDeactivate(at(9)))
	assert.True(t, TimeToDeactivate(at(10)))
	assert.True(t, TimeToDeactivate(at(11)))
	assert.False(t, TimeToDeactivate(at(12)))
	assert.False(t, TimeToDeactivate(at(23)))
}

func TestReindexScope(t *testing.T) {
	full := ReindexScope(at(10))
	assert.True(t, full.Full)

	now := at(15)
	scoped := ReindexScope(now)
	assert.False(t, scoped.Full)
	assert.Equal(t, now.Add(-15*time.Minute), scoped.Since)
	assert.Equal(t, now, scoped.Until)
}

func taggerFixture() Tagger {
	return Tagger{Taxonomy: taxonomyFixture()}
}

func TestTaggerDerivesFromTitle(t *testing.T) {
	job := &domain.Job{Title: "Part-time Senior Accountant"}
	require.True(t, taggerFixture().Apply(job))
	assert.Equal(t, "Part-time", job.CustomFields["job_type"])
	assert.Equal(t, map[string]any{"seniority": "Senior"}, job.CustomFields["experience_level"])
}

func TestTaggerKeepsProviderValues(t *testing.T) {
	job := &domain.Job{
		Title: "Senior Engineer",
		CustomFields: map[string]any{
			"job_type":         "Contract",
			"experience_level": map[string]any{"seniority": "Lead"},
		},
	}
	assert.False(t, taggerFixture().Apply(job))
	assert.Equal(t, "Contract", job.CustomFields["job_type"])
}

func TestTaggerNoMatch(t *testing.T) {
	job := &domain.Job{Title: "Gardener"}
	assert.False(t, taggerFixture().Apply(job))
	_, hasType := job.CustomFields["job_type"]
	assert.False(t, hasType)
}
