package ats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"

	"github.com/PuerkitoBio/goquery"
)

// Rippling publishes no feed; postings are scraped from the hosted board.
type Rippling struct {
	c client
}

func (r *Rippling) Kind() domain.ProviderKind { return domain.KindRippling }

// ripplingBatch maps the job page path to its parsed detail page.
type ripplingBatch map[string]*goquery.Document

func (r *Rippling) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	base := fmt.Sprintf("https://%s.rippling-ats.com", emp.ATSURLParam)
	index, err := r.c.getDoc(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("rippling board: %w", err)
	}

	paths := map[string]bool{}
	index.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if strings.HasPrefix(href, "/jobs/") {
			paths[href] = true
		}
	})

	batch := ripplingBatch{}
	for _, path := range sortedKeys(paths) {
		doc, err := r.c.getDoc(ctx, base+path)
		if err != nil {
			return nil, fmt.Errorf("rippling job %s: %w", path, err)
		}
		batch[path] = doc
	}
	return batch, nil
}

func (r *Rippling) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	pages, ok := batch.(ripplingBatch)
	if !ok {
		return wrongBatch(r.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(pages))
	for _, path := range sortedKeys(pages) {
		doc := pages[path]
		title, location, found := ripplingTitleLocation(doc)
		if !found {
			rep.Add(domain.BrokenImport{
				Email:  emp.Email,
				Error:  "job-title-container not found",
				ATS:    string(r.Kind()),
				Source: "get_rippling_fields",
			})
			continue
		}
		apply := fmt.Sprintf("https://%s.rippling-ats.com%s?source=%s",
			emp.ATSURLParam, path, trackingSource(emp))
		desc := ripplingDescription(doc)
		if util.CleanText(desc) == "" {
			desc = emp.CompanyDescription
		}
		out = append(out, domain.CanonicalJob{
			Title:        title,
			Description:  desc,
			HowToApply:   apply,
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, title, false),
			ATSID:        "rip_" + util.Digest(apply),
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	if len(out) != len(pages) {
		rep.Add(domain.BrokenImport{
			Email:  emp.Email,
			Error:  "could_not_successfully_transform_ALL_jobs",
			ATS:    string(r.Kind()),
			Source: "transform_jobs",
		})
	}
	return out
}

func ripplingTitleLocation(doc *goquery.Document) (title, location string, found bool) {
	container := doc.Find("div.job-title-container").First()
	if container.Length() == 0 {
		return "", "", false
	}
	container.Children().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "h1", "h2":
			title = util.CleanText(c.Text())
		case "div":
			location = util.CleanText(c.Text())
		}
	})
	return title, location, true
}

func ripplingDescription(doc *goquery.Document) string {
	body := doc.Find("div.job-content-body.user-content").First()
	if body.Length() == 0 {
		return ""
	}
	var parts []string
	body.Children().Each(func(_ int, c *goquery.Selection) {
		if h, err := goquery.OuterHtml(c); err == nil {
			parts = append(parts, h)
		}
	})
	return util.SanitizeDescription(strings.Join(parts, ""))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
