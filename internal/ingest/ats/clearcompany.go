package ats

import (
	"context"
	"fmt"
	"strings"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type ClearCompany struct {
	c client
}

func (cc *ClearCompany) Kind() domain.ProviderKind { return domain.KindClearCompany }

type clearCompanyJob struct {
	PositionTitle          string `json:"PositionTitle"`
	ApplyURL               string `json:"ApplyUrl"`
	Description            string `json:"Description"`
	City                   string `json:"City"`
	CountrySubdivisionName string `json:"CountrySubdivisionName"`
	CountryCode            string `json:"CountryCode"`
}

type clearCompanyBatch []clearCompanyJob

func (cc *ClearCompany) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://api.clearcompany.com/v1/careers/%s/requisitions?source=%s",
		emp.ATSURLParam, trackingSource(emp))
	var b clearCompanyBatch
	if err := cc.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("clearcompany get: %w", err)
	}
	return b, nil
}

func (cc *ClearCompany) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(clearCompanyBatch)
	if !ok {
		return wrongBatch(cc.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b))
	for _, j := range b {
		if j.ApplyURL == "" {
			continue
		}
		location := util.ComposeLocation(
			dropXMLNil(j.City),
			dropXMLNil(j.CountrySubdivisionName),
			j.CountryCode,
		)
		out = append(out, domain.CanonicalJob{
			Title:        j.PositionTitle,
			Description:  resolveDescription(j.Description, emp),
			HowToApply:   j.ApplyURL,
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, j.PositionTitle, false),
			ATSID:        "clear_" + util.Digest(j.ApplyURL),
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	return out
}

// dropXMLNil hides the serialized XML-nil markers ClearCompany leaks into
// otherwise-empty fields.
func dropXMLNil(s string) string {
	if strings.Contains(s, "i:nil") {
		return ""
	}
	return s
}
