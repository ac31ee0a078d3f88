package ats

import (
	"testing"

	"boardfeed-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamTailorEmployers() []domain.Employer {
	return []domain.Employer{
		{
			ID: 1, CompanyName: "Northwind", ATS: domain.KindTeamTailor,
			Active: true, ImportJobs: true,
		},
		{
			ID: 2, CompanyName: "Dormant", ATS: domain.KindTeamTailor,
			Active: false, ImportJobs: true,
		},
	}
}

func TestTeamTailorTransformAll(t *testing.T) {
	batch := teamTailorBatch{
		{
			Company: "Northwind", Title: "Designer",
			ApplyURL:        "https://north.teamtailor.com/jobs/1",
			RemoteStatus:    "fully",
			ReferenceNumber: "NW-9",
			Locations:       map[string]any{"location": map[string]any{"city": "Oslo", "country": "Norway"}},
		},
		{
			Company: "Northwind", Title: "Writer",
			ApplyURL:     "https://north.teamtailor.com/jobs/2",
			RemoteStatus: "none",
			Locations:    []any{map[string]any{"city": "Bergen", "country": "Norway"}},
		},
		{
			Company: "Nobody Known", Title: "Skipped",
			ApplyURL: "https://other.teamtailor.com/jobs/3",
		},
		{
			Company: "Dormant", Title: "Ineligible employer, skipped",
			ApplyURL: "https://dormant.teamtailor.com/jobs/4",
		},
	}

	rep := domain.NewCollector()
	jobs := (&TeamTailor{}).TransformAll(batch, teamTailorEmployers(), rep)
	require.Len(t, jobs, 2)
	assert.True(t, rep.Empty())

	designer := jobs[0]
	assert.Equal(t, "NW-9", designer.ATSID, "reference number wins over digest")
	assert.Equal(t, "Norway", designer.Location, "fully remote keeps only the country")
	assert.True(t, designer.Remote)
	assert.Equal(t, int64(1), designer.EmployerID)

	writer := jobs[1]
	assert.Equal(t, "Bergen, Norway", writer.Location)
	assert.False(t, writer.Remote)
	assert.Contains(t, writer.ATSID, "tt_", "digest fallback when no reference number")
}

func TestFindLocationObjectNesting(t *testing.T) {
	nested := map[string]any{
		"locations": map[string]any{
			"0": map[string]any{"city": "Lund", "country": "Sweden"},
		},
	}
	loc := findLocationObject(nested)
	require.NotNil(t, loc)
	assert.Equal(t, "Sweden", loc["country"])

	assert.Nil(t, findLocationObject(nil))
	assert.Nil(t, findLocationObject([]any{map[string]any{"city": "no country"}}))
}
