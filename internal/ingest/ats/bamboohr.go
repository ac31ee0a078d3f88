package ats

import (
	"context"
	"fmt"
	"strings"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"

	"github.com/PuerkitoBio/goquery"
)

// BambooHR exposes a thin JSON listing; everything else lives on the
// per-job careers page, which moves its metadata table around between
// board themes.
type BambooHR struct {
	c client
}

func (b *BambooHR) Kind() domain.ProviderKind { return domain.KindBambooHR }

type bambooListing struct {
	Result []struct {
		ID             string `json:"id"`
		JobOpeningName string `json:"jobOpeningName"`
	} `json:"result"`
}

type bambooPage struct {
	Title string
	Doc   *goquery.Document
}

type bambooBatch map[string]bambooPage

func (b *BambooHR) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	base := fmt.Sprintf("https://%s.bamboohr.com/careers", emp.ATSURLParam)

	var listing bambooListing
	if err := b.c.getJSON(ctx, base+"/list", &listing); err != nil {
		return nil, fmt.Errorf("bamboohr list: %w", err)
	}

	batch := bambooBatch{}
	for _, row := range listing.Result {
		if row.ID == "" {
			continue
		}
		doc, err := b.c.getDoc(ctx, base+"/"+row.ID)
		if err != nil {
			return nil, fmt.Errorf("bamboohr job %s: %w", row.ID, err)
		}
		batch[row.ID] = bambooPage{Title: row.JobOpeningName, Doc: doc}
	}
	return batch, nil
}

func (b *BambooHR) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	pages, ok := batch.(bambooBatch)
	if !ok {
		return wrongBatch(b.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(pages))
	for _, id := range sortedKeys(pages) {
		page := pages[id]
		fields, found := bambooMetaFields(page.Doc)
		if !found {
			rep.Add(domain.BrokenImport{
				Email:  emp.Email,
				Error:  "could not locate job meta fields",
				ATS:    string(b.Kind()),
				Source: "get_bamboo_fields",
			})
			continue
		}
		apply := fmt.Sprintf("https://%s.bamboohr.com/careers/%s?source=%s",
			emp.ATSURLParam, id, trackingSource(emp))
		location := util.NormalizeLocation(fields["Location"], false)
		custom := map[string]any{}
		if v := fields["Employment Type"]; v != "" {
			custom["job_type"] = v
		}
		if v := fields["Minimum Experience"]; v != "" {
			custom["experience_level"] = map[string]any{"seniority": v}
		}
		out = append(out, domain.CanonicalJob{
			Title:        page.Title,
			Description:  resolveDescription(bambooDescription(page.Doc), emp),
			HowToApply:   apply,
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, page.Title, false),
			ATSID:        "bamboo_" + util.Digest(apply),
			PostedBy:     domain.PostedByImport,
			CustomFields: custom,
		})
	}
	if len(out) != len(pages) {
		rep.Add(domain.BrokenImport{
			Email:  emp.Email,
			Error:  "could_not_successfully_transform_ALL_jobs",
			ATS:    string(b.Kind()),
			Source: "transform_jobs",
		})
	}
	return out
}

func bambooDescription(doc *goquery.Document) string {
	wrapper := doc.Find("#descriptionWrapper").First()
	if wrapper.Length() == 0 {
		return ""
	}
	var parts []string
	wrapper.Children().Each(func(_ int, c *goquery.Selection) {
		if h, err := goquery.OuterHtml(c); err == nil {
			parts = append(parts, h)
		}
	})
	return util.SanitizeDescription(strings.Join(parts, ""))
}

// bambooMetaFields reads the labeled rows next to the description. The
// "Location" label can match several elements depending on board theme, so
// each candidate is tried in turn, a few attempts at most, until one yields
// a usable row set.
func bambooMetaFields(doc *goquery.Document) (map[string]string, bool) {
	labels := doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Children().Length() == 0 && strings.TrimSpace(s.Text()) == "Location"
	})

	const maxAttempts = 3
	for attempt := 0; attempt < maxAttempts && attempt < labels.Length(); attempt++ {
		rows := labels.Eq(attempt).Parent().Parent().Children()
		fields := map[string]string{}
		rows.Each(func(_ int, row *goquery.Selection) {
			cells := row.Children()
			if cells.Length() < 2 {
				return
			}
			name := util.CleanText(cells.Eq(0).Text())
			value := util.CleanText(cells.Eq(1).Text())
			if name != "" {
				fields[name] = value
			}
		})
		if _, ok := fields["Location"]; ok {
			return fields, true
		}
	}
	return nil, false
}
