package ats

import (
	"context"
	"fmt"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type BreezyHR struct {
	c client
}

func (b *BreezyHR) Kind() domain.ProviderKind { return domain.KindBreezyHR }

type breezyPosition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Location    struct {
		Name     string `json:"name"`
		IsRemote bool   `json:"is_remote"`
		Country  struct {
			Name string `json:"name"`
		} `json:"country"`
	} `json:"location"`
}

type breezyBatch []breezyPosition

func (b *BreezyHR) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://%s.breezy.hr/json", emp.ATSURLParam)
	var batch breezyBatch
	if err := b.c.getJSON(ctx, url, &batch); err != nil {
		return nil, fmt.Errorf("breezy get: %w", err)
	}
	return batch, nil
}

func (b *BreezyHR) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	positions, ok := batch.(breezyBatch)
	if !ok {
		return wrongBatch(b.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(positions))
	for _, p := range positions {
		if p.ID == "" || p.URL == "" {
			continue
		}
		location := p.Location.Name
		if country := p.Location.Country.Name; country != "" && location != country {
			location = util.ComposeLocation(location, country)
		}
		out = append(out, domain.CanonicalJob{
			Title:        p.Name,
			Description:  resolveDescription(p.Description, emp),
			HowToApply:   applyURL(p.URL+"/apply", emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, p.Name, p.Location.IsRemote),
			ATSID:        "bre_" + p.ID,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	return out
}
