package ats

import (
	"context"
	"fmt"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type Workable struct {
	c client
}

func (w *Workable) Kind() domain.ProviderKind { return domain.KindWorkable }

type workableJob struct {
	Title          string `json:"title"`
	Shortcode      string `json:"shortcode"`
	ApplicationURL string `json:"application_url"`
	Description    string `json:"description"`
	Telecommuting  bool   `json:"telecommuting"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Experience     string `json:"experience"`
}

type workableBatch struct {
	Jobs []workableJob `json:"jobs"`
}

func (w *Workable) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://apply.workable.com/api/v1/widget/accounts/%s?details=true", emp.ATSURLParam)
	var b workableBatch
	if err := w.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("workable get: %w", err)
	}
	return b, nil
}

func (w *Workable) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(workableBatch)
	if !ok {
		return wrongBatch(w.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.Jobs))
	for _, j := range b.Jobs {
		if j.Shortcode == "" || j.ApplicationURL == "" {
			continue
		}
		location := util.ComposeLocation(j.City, j.State, j.Country)
		out = append(out, domain.CanonicalJob{
			Title:        j.Title,
			Description:  resolveDescription(j.Description, emp),
			HowToApply:   applyURL(j.ApplicationURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, j.Title, j.Telecommuting),
			ATSID:        "wor_" + j.Shortcode,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{
				"experience_level": map[string]any{"seniority": j.Experience},
			},
		})
	}
	return out
}
