package ats

import (
	"context"
	"fmt"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type SyncHR struct {
	c client
}

func (s *SyncHR) Kind() domain.ProviderKind { return domain.KindSyncHR }

type syncHRJob struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	// The feed publishes the body as a two-element array; element 1 is the
	// actual description HTML.
	Description []string `json:"description"`
	Location    string   `json:"location"`
}

type syncHRBatch []syncHRJob

func (s *SyncHR) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://app.synchr.com/careers/%s/feed.json", emp.ATSURLParam)
	var b syncHRBatch
	if err := s.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("synchr get: %w", err)
	}
	return b, nil
}

func (s *SyncHR) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(syncHRBatch)
	if !ok {
		return wrongBatch(s.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b))
	for _, j := range b {
		if j.Link == "" {
			continue
		}
		location := j.Location
		if util.CleanText(location) == "" || util.ContainsFold(location, "n/a") {
			location = ""
		}
		desc := ""
		if len(j.Description) > 1 {
			desc = j.Description[1]
		}
		out = append(out, domain.CanonicalJob{
			Title:        j.Title,
			Description:  resolveDescription(desc, emp),
			HowToApply:   applyURL(j.Link, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, j.Title, false),
			ATSID:        "sync_" + util.Digest(j.Link),
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	return out
}
