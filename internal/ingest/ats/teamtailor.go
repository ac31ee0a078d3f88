package ats

import (
	"context"
	"fmt"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

// TeamTailor is the one cross-employer feed: a single fetch returns postings
// for every TeamTailor employer on the board, keyed by company name.
type TeamTailor struct {
	c client
}

func (t *TeamTailor) Kind() domain.ProviderKind { return domain.KindTeamTailor }

type teamTailorRow struct {
	Company         string `json:"company"`
	Title           string `json:"title"`
	ApplyURL        string `json:"applyurl"`
	Description     string `json:"description"`
	RemoteStatus    string `json:"remotestatus"` // none/hybrid/fully
	ReferenceNumber string `json:"referencenumber"`
	// The locations element nests unpredictably (object, array of objects,
	// objects of objects), so it is decoded loose and searched.
	Locations any `json:"locations"`
}

type teamTailorBatch []teamTailorRow

func (t *TeamTailor) FetchAll(ctx context.Context) (Batch, error) {
	var b teamTailorBatch
	if err := t.c.getJSON(ctx, "https://feed.teamtailor.com/v1/jobs.json", &b); err != nil {
		return nil, fmt.Errorf("teamtailor get: %w", err)
	}
	return b, nil
}

func (t *TeamTailor) TransformAll(batch Batch, employers []domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	rows, ok := batch.(teamTailorBatch)
	if !ok {
		rep.Add(domain.BrokenImport{
			Error:  "unexpected batch payload",
			ATS:    string(domain.KindTeamTailor),
			Source: "transform_jobs",
		})
		return nil
	}

	byName := make(map[string]domain.Employer, len(employers))
	for _, emp := range employers {
		if emp.ATS == domain.KindTeamTailor && emp.Eligible() {
			byName[emp.CompanyName] = emp
		}
	}

	var out []domain.CanonicalJob
	for _, row := range rows {
		emp, known := byName[row.Company]
		if !known {
			continue
		}
		if row.ApplyURL == "" {
			continue
		}
		location := teamTailorLocation(row)
		atsID := row.ReferenceNumber
		if atsID == "" {
			atsID = "tt_" + util.Digest(row.ApplyURL)
		}
		out = append(out, domain.CanonicalJob{
			Title:        row.Title,
			Description:  resolveDescription(row.Description, emp),
			HowToApply:   row.ApplyURL,
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote: util.IsRemote(emp, location, row.Title,
				row.RemoteStatus == "fully" || row.RemoteStatus == "hybrid"),
			ATSID:        atsID,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	return out
}

func teamTailorLocation(row teamTailorRow) string {
	loc := findLocationObject(row.Locations)
	if loc == nil {
		return ""
	}
	country, _ := loc["country"].(string)
	if row.RemoteStatus == "fully" {
		return country
	}
	city, _ := loc["city"].(string)
	return util.ComposeLocation(city, country)
}

// findLocationObject walks the loosely-typed locations element and returns
// the first map carrying a country.
func findLocationObject(v any) map[string]any {
	switch node := v.(type) {
	case map[string]any:
		if c, ok := node["country"].(string); ok && c != "" {
			return node
		}
		for _, child := range node {
			if found := findLocationObject(child); found != nil {
				return found
			}
		}
	case []any:
		for _, child := range node {
			if found := findLocationObject(child); found != nil {
				return found
			}
		}
	}
	return nil
}
