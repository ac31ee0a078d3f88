package ats

import (
	"testing"

	"boardfeed-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greenhouseEmployer(id int64) domain.Employer {
	return domain.Employer{
		ID: id, CompanyName: "Acme", ATS: domain.KindGreenhouse,
		ATSURLParam: "acme", Active: true, ImportJobs: true,
	}
}

func TestGreenhouseTransform(t *testing.T) {
	g := &Greenhouse{}
	jobs := g.Transform(greenhouseBatch{Jobs: []greenhouseJob{
		{ID: 42, Title: "Engineer", AbsoluteURL: "https://boards.greenhouse.io/acme/jobs/42", Content: "<p>body</p>"},
		{ID: 0, Title: "skipped"},
	}}, greenhouseEmployer(7), domain.NewCollector())

	require.Len(t, jobs, 1)
	assert.Equal(t, "gre_42", jobs[0].ATSID)
}

func TestGreenhouseLocationPin(t *testing.T) {
	pinned := greenhouseEmployer(1131507)
	assert.Equal(t, "Berkeley, CA, USA", greenhouseLocation(pinned, "Headquarters"))
	assert.Equal(t, "Lisbon", greenhouseLocation(pinned, "Lisbon"))
	assert.Equal(t, "Headquarters", greenhouseLocation(greenhouseEmployer(7), "Headquarters"))
}

func TestGreenhouseAndDelimiter(t *testing.T) {
	got := greenhouseLocation(greenhouseEmployer(7), "boston and new york")
	assert.Equal(t, "Boston, New York", got)
}
