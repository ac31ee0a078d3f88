package ats

import (
	"context"
	"fmt"
	"strconv"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type Jobvite struct {
	c client
}

func (jv *Jobvite) Kind() domain.ProviderKind { return domain.KindJobvite }

type jobviteJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DetailURL   string `json:"detail_url"`
	Description string `json:"description"`
	Location    string `json:"location"`
	JobType     string `json:"jobtype"`
}

type jobviteBatch struct {
	Requisitions []jobviteJob `json:"requisitions"`
}

func (jv *Jobvite) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://jobs.jobvite.com/api/v2/%s/requisitions", emp.ATSURLParam)
	var b jobviteBatch
	if err := jv.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("jobvite get: %w", err)
	}
	return b, nil
}

func (jv *Jobvite) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(jobviteBatch)
	if !ok {
		return wrongBatch(jv.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.Requisitions))
	for _, j := range b.Requisitions {
		if j.ID == "" || j.DetailURL == "" {
			continue
		}
		location := util.NormalizeLocation(j.Location, false)
		out = append(out, domain.CanonicalJob{
			Title:        j.Title,
			Description:  resolveDescription(j.Description, emp),
			HowToApply:   applyURL(j.DetailURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, j.Title, false),
			// Jobvite requisition ids repeat across tenants; the employer id
			// prefix keeps them globally unique.
			ATSID:        "jv_" + strconv.FormatInt(emp.ID, 10) + j.ID,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{"job_type": j.JobType},
		})
	}
	return out
}
