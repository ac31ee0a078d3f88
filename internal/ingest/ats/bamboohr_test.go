package ats

import (
	"strings"
	"testing"

	"boardfeed-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, raw string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

// The first "Location" label on real boards is sometimes navigation chrome;
// the extractor has to skip past it to the metadata table.
const bambooJobPage = `
<html><body>
  <nav><p><span>Location</span></p></nav>
  <div id="descriptionWrapper"><p>Do the work</p></div>
  <div id="meta">
    <div class="row"><span>Location</span><span>Austin, TX</span></div>
    <div class="row"><span>Employment Type</span><span>Full-Time</span></div>
    <div class="row"><span>Minimum Experience</span><span>Mid-level</span></div>
  </div>
</body></html>`

func TestBambooMetaFieldsRetries(t *testing.T) {
	fields, ok := bambooMetaFields(docFrom(t, bambooJobPage))
	require.True(t, ok)
	assert.Equal(t, "Austin, TX", fields["Location"])
	assert.Equal(t, "Full-Time", fields["Employment Type"])
	assert.Equal(t, "Mid-level", fields["Minimum Experience"])
}

func TestBambooMetaFieldsGivesUp(t *testing.T) {
	_, ok := bambooMetaFields(docFrom(t, `<html><body><p>nothing here</p></body></html>`))
	assert.False(t, ok)
}

func TestBambooTransform(t *testing.T) {
	b := &BambooHR{}
	emp := domain.Employer{
		ID: 3, CompanyName: "Acme", Email: "jobs@acme.test",
		ATS: domain.KindBambooHR, ATSURLParam: "acme",
		Active: true, ImportJobs: true,
	}
	batch := bambooBatch{
		"42": {Title: "Office Manager", Doc: docFrom(t, bambooJobPage)},
	}

	rep := domain.NewCollector()
	jobs := b.Transform(batch, emp, rep)
	require.Len(t, jobs, 1)
	assert.True(t, rep.Empty())

	j := jobs[0]
	assert.Equal(t, "Office Manager", j.Title)
	assert.Equal(t, "https://acme.bamboohr.com/careers/42?source=boardfeed", j.HowToApply)
	assert.Equal(t, "Austin, TX", j.Location)
	assert.Contains(t, j.Description, "Do the work")
	assert.True(t, strings.HasPrefix(j.ATSID, "bamboo_"))
	assert.Equal(t, "Full-Time", j.CustomFields["job_type"])
	assert.Equal(t, map[string]any{"seniority": "Mid-level"}, j.CustomFields["experience_level"])
}

func TestBambooTransformPartialFailure(t *testing.T) {
	b := &BambooHR{}
	emp := domain.Employer{Email: "jobs@acme.test", ATSURLParam: "acme"}
	batch := bambooBatch{
		"1": {Title: "OK", Doc: docFrom(t, bambooJobPage)},
		"2": {Title: "Broken", Doc: docFrom(t, `<html><body></body></html>`)},
	}

	rep := domain.NewCollector()
	jobs := b.Transform(batch, emp, rep)
	require.Len(t, jobs, 1)

	var sawPartial bool
	for _, item := range rep.Items() {
		if item.Error == "could_not_successfully_transform_ALL_jobs" {
			sawPartial = true
		}
	}
	assert.True(t, sawPartial)
}
