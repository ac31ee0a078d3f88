package ats

import (
	"context"
	"fmt"
	"net/url"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type JazzHR struct {
	c client
}

func (j *JazzHR) Kind() domain.ProviderKind { return domain.KindJazzHR }

type jazzJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	BoardCode   string `json:"board_code"`
	Description string `json:"description"`
	City        string `json:"city"`
	State       string `json:"state"`
	CountryID   string `json:"country_id"`
}

type jazzBatch []jazzJob

func (j *JazzHR) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	u := fmt.Sprintf("https://api.resumatorapi.com/v1/jobs/status/open?apikey=%s",
		url.QueryEscape(emp.ATSKey))
	var b jazzBatch
	if err := j.c.getJSON(ctx, u, &b); err != nil {
		return nil, fmt.Errorf("jazzhr get: %w", err)
	}
	return b, nil
}

func (j *JazzHR) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(jazzBatch)
	if !ok {
		return wrongBatch(j.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b))
	for _, job := range b {
		if job.ID == "" || job.BoardCode == "" {
			continue
		}
		location := util.ComposeLocation(job.City, job.State, job.CountryID)
		apply := fmt.Sprintf("https://%s.applytojob.com/apply/%s?source=%s",
			emp.ATSURLParam, job.BoardCode, trackingSource(emp))
		out = append(out, domain.CanonicalJob{
			Title:        job.Title,
			Description:  resolveDescription(job.Description, emp),
			HowToApply:   apply,
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, job.Title, false),
			ATSID:        "jaz_" + job.ID,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	return out
}
