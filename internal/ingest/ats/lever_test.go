package ats

import (
	"context"
	"net/http"
	"testing"

	"boardfeed-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leverPayload = `[
  {
    "id": "123",
    "text": "Backend Engineer",
    "applyUrl": "https://jobs.lever.co/acme/123/apply",
    "description": "<p>Build things</p>",
    "lists": [{"text": "You will", "content": "<li>ship</li>"}],
    "categories": {"location": "new york or boston"}
  },
  {
    "id": "",
    "text": "No id, skipped",
    "applyUrl": "https://jobs.lever.co/acme/xxx/apply"
  }
]`

func TestLeverFetchAndTransform(t *testing.T) {
	lever := &Lever{c: fakeClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "api.lever.co", req.URL.Host)
		assert.Equal(t, "/v0/postings/acme", req.URL.Path)
		return respond(req, http.StatusOK, leverPayload), nil
	})}

	emp := domain.Employer{
		ID: 7, CompanyName: "Acme", Email: "jobs@acme.test",
		ATS: domain.KindLever, ATSURLParam: "acme",
		ApplyURLTrackingParams: "?utm_source=board",
		Active:                 true, ImportJobs: true,
	}

	batch, err := lever.Fetch(context.Background(), emp)
	require.NoError(t, err)

	rep := domain.NewCollector()
	jobs := lever.Transform(batch, emp, rep)
	require.Len(t, jobs, 1)
	assert.True(t, rep.Empty())

	j := jobs[0]
	assert.Equal(t, "lev_123", j.ATSID)
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, "https://jobs.lever.co/acme/123/apply?utm_source=board", j.HowToApply)
	assert.Equal(t, "New York, Boston", j.Location)
	assert.Contains(t, j.Description, "<h3>You will</h3>")
	assert.Contains(t, j.Description, "<li>ship</li>")
	assert.Equal(t, domain.PostedByImport, j.PostedBy)
	assert.False(t, j.Remote)
}

func TestLeverFetchErrorStatus(t *testing.T) {
	lever := &Lever{c: fakeClient(func(req *http.Request) (*http.Response, error) {
		return respond(req, http.StatusBadGateway, "upstream broke"), nil
	})}

	_, err := lever.Fetch(context.Background(), domain.Employer{ATSURLParam: "acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestLeverTransformWrongBatch(t *testing.T) {
	rep := domain.NewCollector()
	jobs := (&Lever{}).Transform("not a batch", domain.Employer{Email: "x@y.test"}, rep)
	assert.Empty(t, jobs)
	require.Len(t, rep.Items(), 1)
	assert.Equal(t, "transform_jobs", rep.Items()[0].Source)
}
