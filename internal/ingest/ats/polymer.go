package ats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type Polymer struct {
	c client
}

func (p *Polymer) Kind() domain.ProviderKind { return domain.KindPolymer }

type polymerJob struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	JobPostURL       string `json:"job_post_url"`
	Description      string `json:"description"`
	City             string `json:"city"`
	StateRegion      string `json:"state_region"`
	Country          string `json:"country"`
	RemotenessPretty string `json:"remoteness_pretty"`
	KindPretty       string `json:"kind_pretty"`
}

type polymerBatch struct {
	Items []polymerJob `json:"items"`
}

func (p *Polymer) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://jobs.polymer.co/api/v1/boards/%s/jobs", emp.ATSURLParam)
	var b polymerBatch
	if err := p.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("polymer get: %w", err)
	}
	return b, nil
}

func (p *Polymer) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(polymerBatch)
	if !ok {
		return wrongBatch(p.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.Items))
	for _, j := range b.Items {
		if j.ID == 0 || j.JobPostURL == "" {
			continue
		}
		location := util.ComposeLocation(j.City, j.StateRegion, j.Country)
		remoteness := strings.ToLower(j.RemotenessPretty)
		out = append(out, domain.CanonicalJob{
			Title:        j.Title,
			Description:  resolveDescription(j.Description, emp),
			HowToApply:   applyURL(j.JobPostURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote: util.IsRemote(emp, location, j.Title,
				remoteness == "remote" || remoteness == "remote friendly"),
			ATSID:        "poly_" + strconv.FormatInt(j.ID, 10),
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{"job_type": j.KindPretty},
		})
	}
	return out
}
