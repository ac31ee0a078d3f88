package ats

import (
	"context"
	"fmt"
	"strconv"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type Recruitee struct {
	c client
}

func (r *Recruitee) Kind() domain.ProviderKind { return domain.KindRecruitee }

type recruiteeOffer struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	CareersApplyURL string `json:"careers_apply_url"`
	Description     string `json:"description"`
	Requirements    string `json:"requirements"`
	Remote          bool   `json:"remote"`
	Location        string `json:"location"`
	ExperienceCode  string `json:"experience_code"`
}

type recruiteeBatch struct {
	Offers []recruiteeOffer `json:"offers"`
}

func (r *Recruitee) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://%s.recruitee.com/api/offers/", emp.ATSURLParam)
	var b recruiteeBatch
	if err := r.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("recruitee get: %w", err)
	}
	return b, nil
}

func (r *Recruitee) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(recruiteeBatch)
	if !ok {
		return wrongBatch(r.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.Offers))
	for _, o := range b.Offers {
		if o.ID == 0 || o.CareersApplyURL == "" {
			continue
		}
		location := util.NormalizeLocation(o.Location, false)
		out = append(out, domain.CanonicalJob{
			Title:        o.Title,
			Description:  resolveDescription(o.Description+o.Requirements, emp),
			HowToApply:   applyURL(o.CareersApplyURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, o.Title, o.Remote),
			ATSID:        "rec_" + strconv.FormatInt(o.ID, 10),
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{
				"experience_level": map[string]any{"seniority": o.ExperienceCode},
			},
		})
	}
	return out
}
