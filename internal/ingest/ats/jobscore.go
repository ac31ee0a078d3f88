package ats

import (
	"context"
	"fmt"
	"strings"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type JobScore struct {
	c client
}

func (js *JobScore) Kind() domain.ProviderKind { return domain.KindJobScore }

type jobScoreJob struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DetailURL       string `json:"detail_url"`
	Description     string `json:"description"`
	City            string `json:"city"`
	State           string `json:"state"`
	Country         string `json:"country"`
	Remote          string `json:"remote"` // "yes"/"no"
	JobType         string `json:"job_type"`
	ExperienceLevel string `json:"experience_level"`
}

type jobScoreBatch struct {
	Jobs []jobScoreJob `json:"jobs"`
}

func (js *JobScore) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://careers.jobscore.com/jobs/%s/feed.json", emp.ATSURLParam)
	var b jobScoreBatch
	if err := js.c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("jobscore get: %w", err)
	}
	return b, nil
}

func (js *JobScore) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(jobScoreBatch)
	if !ok {
		return wrongBatch(js.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.Jobs))
	for _, j := range b.Jobs {
		if j.ID == "" || j.DetailURL == "" {
			continue
		}
		location := ""
		if !strings.EqualFold(util.CleanText(j.City), "remote") {
			location = util.ComposeLocation(j.City, j.State, j.Country)
		}
		out = append(out, domain.CanonicalJob{
			Title:        j.Title,
			Description:  resolveDescription(j.Description, emp),
			HowToApply:   applyURL(j.DetailURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, j.Title, util.ContainsFold(j.Remote, "yes")),
			ATSID:        "js_" + j.ID,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{
				"job_type":         j.JobType,
				"experience_level": map[string]any{"seniority": j.ExperienceLevel},
			},
		})
	}
	return out
}
