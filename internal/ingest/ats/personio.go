package ats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type Personio struct {
	c client
}

func (p *Personio) Kind() domain.ProviderKind { return domain.KindPersonio }

// Personio publishes an XML feed per company.
type personioPosition struct {
	ID                string `xml:"id"`
	Name              string `xml:"name"`
	Office            string `xml:"office"`
	Schedule          string `xml:"schedule"`
	Seniority         string `xml:"seniority"`
	YearsOfExperience string `xml:"yearsOfExperience"` // "2-5" style range
	JobDescriptions   struct {
		JobDescription []struct {
			Name  string `xml:"name"`
			Value string `xml:"value"`
		} `xml:"jobDescription"`
	} `xml:"jobDescriptions"`
}

type personioBatch struct {
	Positions []personioPosition `xml:"position"`
}

func (p *Personio) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://%s.jobs.personio.de/xml?language=en", emp.ATSURLParam)
	var b personioBatch
	if err := p.c.getXML(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("personio get: %w", err)
	}
	return b, nil
}

func (p *Personio) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(personioBatch)
	if !ok {
		return wrongBatch(p.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.Positions))
	for _, pos := range b.Positions {
		if pos.ID == "" {
			continue
		}
		apply := fmt.Sprintf("https://%s.jobs.personio.de/job/%s?language=en&display=en&gh_src=%s#apply",
			emp.ATSURLParam, pos.ID, trackingSource(emp))

		location := pos.Office
		if util.ContainsFold(location, "extern") || util.ContainsFold(location, "remote") {
			location = ""
		}
		out = append(out, domain.CanonicalJob{
			Title:        pos.Name,
			Description:  resolveDescription(personioDescription(pos), emp),
			HowToApply:   apply,
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, pos.Name, false),
			ATSID:        "perso_" + util.Digest(apply),
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{
				"job_type":         pos.Schedule,
				"experience_level": personioExperience(pos),
			},
		})
	}
	return out
}

func personioDescription(pos personioPosition) string {
	var b strings.Builder
	for _, d := range pos.JobDescriptions.JobDescription {
		b.WriteString(d.Name + "<br>" + d.Value)
	}
	return b.String()
}

// personioExperience prefers the numeric "a-b" years range and falls back to
// the seniority label when the range does not parse.
func personioExperience(pos personioPosition) map[string]any {
	lo, hi, ok := parseYearsRange(pos.YearsOfExperience)
	if !ok {
		return map[string]any{"seniority": pos.Seniority}
	}
	return map[string]any{"min_years": lo, "max_years": hi}
}

func parseYearsRange(s string) (lo, hi int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) == 0 || parts[0] == "" {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	if len(parts) == 2 {
		hi, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return lo, hi, true
}
