package ats

import (
	"context"
	"fmt"
	"strconv"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type Greenhouse struct {
	c client
}

func (g *Greenhouse) Kind() domain.ProviderKind { return domain.KindGreenhouse }

type greenhouseJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

type greenhouseBatch struct {
	Jobs []greenhouseJob `json:"jobs"`
}

func (g *Greenhouse) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs?content=true", emp.ATSURLParam)
	var b greenhouseBatch
	if err := g.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("greenhouse get: %w", err)
	}
	return b, nil
}

// A few boards publish a placeholder like "Headquarters" instead of an
// address; pin those to the employer's actual office.
type locationPin struct {
	marker  string
	address string
}

var greenhouseLocationPins = map[int64]locationPin{
	1131507: {marker: "headquarter", address: "Berkeley, CA, USA"},
}

// greenhouseLocation resolves a raw board location. Greenhouse is the one
// feed that also separates cities with " and ".
func greenhouseLocation(emp domain.Employer, raw string) string {
	if pin, ok := greenhouseLocationPins[emp.ID]; ok && util.ContainsFold(raw, pin.marker) {
		return pin.address
	}
	return util.NormalizeLocation(raw, true)
}

func (g *Greenhouse) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(greenhouseBatch)
	if !ok {
		return wrongBatch(g.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.Jobs))
	for _, j := range b.Jobs {
		if j.ID == 0 || j.AbsoluteURL == "" {
			continue
		}
		location := greenhouseLocation(emp, j.Location.Name)
		out = append(out, domain.CanonicalJob{
			Title:        j.Title,
			Description:  resolveDescription(j.Content, emp),
			HowToApply:   applyURL(j.AbsoluteURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, j.Title, false),
			ATSID:        "gre_" + strconv.FormatInt(j.ID, 10),
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	return out
}
