package ats

import (
	"context"
	"fmt"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type Ashby struct {
	c client
}

func (a *Ashby) Kind() domain.ProviderKind { return domain.KindAshby }

type ashbyJob struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ApplyURL        string `json:"applyUrl"`
	DescriptionHTML string `json:"descriptionHtml"`
	IsRemote        bool   `json:"isRemote"`
	Location        string `json:"location"`
}

type ashbyBatch struct {
	Jobs []ashbyJob `json:"jobs"`
}

func (a *Ashby) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://api.ashbyhq.com/posting-api/job-board/%s?includeCompensation=false", emp.ATSURLParam)
	var b ashbyBatch
	if err := a.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("ashby get: %w", err)
	}
	return b, nil
}

func (a *Ashby) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(ashbyBatch)
	if !ok {
		return wrongBatch(a.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.Jobs))
	for _, j := range b.Jobs {
		if j.ID == "" || j.ApplyURL == "" {
			continue
		}
		location := util.NormalizeLocation(j.Location, false)
		out = append(out, domain.CanonicalJob{
			Title:        j.Title,
			Description:  resolveDescription(j.DescriptionHTML, emp),
			HowToApply:   applyURL(j.ApplyURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, j.Title, j.IsRemote),
			ATSID:        "ash_" + j.ID,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	return out
}
