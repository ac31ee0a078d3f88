package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"

	"github.com/PuerkitoBio/goquery"
)

// ICIMS detail pages embed a schema.org JobPosting blob; the visible header
// is only used when that blob is missing or filled with placeholder text.
type ICIMS struct {
	c client
}

func (i *ICIMS) Kind() domain.ProviderKind { return domain.KindICIMS }

type icimsBatch map[string]*goquery.Document

type icimsPosting struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	JobLocation []struct {
		Address struct {
			AddressLocality string `json:"addressLocality"`
			AddressRegion   string `json:"addressRegion"`
			AddressCountry  string `json:"addressCountry"`
		} `json:"address"`
	} `json:"jobLocation"`
}

func (i *ICIMS) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	base := fmt.Sprintf("https://careers-%s.icims.com", emp.ATSURLParam)
	index, err := i.c.getDoc(ctx, base+"/jobs/search?ss=1&in_iframe=1")
	if err != nil {
		return nil, fmt.Errorf("icims search: %w", err)
	}

	links := map[string]bool{}
	index.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if strings.Contains(href, "/jobs/") && strings.Contains(href, "/job?") ||
			strings.Contains(href, "/jobs/") && strings.HasSuffix(href, "/job") {
			links[href] = true
		}
	})

	batch := icimsBatch{}
	for _, link := range sortedKeys(links) {
		target := link
		if strings.HasPrefix(target, "/") {
			target = base + target
		}
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		doc, err := i.c.getDoc(ctx, target+sep+"in_iframe=1")
		if err != nil {
			return nil, fmt.Errorf("icims job %s: %w", link, err)
		}
		batch[target] = doc
	}
	return batch, nil
}

func (i *ICIMS) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	pages, ok := batch.(icimsBatch)
	if !ok {
		return wrongBatch(i.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(pages))
	for _, pageURL := range sortedKeys(pages) {
		doc := pages[pageURL]
		posting, found := icimsJSONLD(doc)
		if !found {
			rep.Add(domain.BrokenImport{
				Email:  emp.Email,
				Error:  "job posting json-ld not found",
				ATS:    string(i.Kind()),
				Source: "get_icims_fields",
			})
			continue
		}
		jobURL := posting.URL
		if jobURL == "" {
			jobURL = pageURL
		}
		location := icimsLocation(posting, doc)
		out = append(out, domain.CanonicalJob{
			Title:        posting.Title,
			Description:  resolveDescription(posting.Description, emp),
			HowToApply:   applyURL(jobURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, posting.Title, false),
			ATSID:        "icims_" + util.Digest(jobURL),
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	if len(out) != len(pages) {
		rep.Add(domain.BrokenImport{
			Email:  emp.Email,
			Error:  "could_not_successfully_transform_ALL_jobs",
			ATS:    string(i.Kind()),
			Source: "transform_jobs",
		})
	}
	return out
}

func icimsJSONLD(doc *goquery.Document) (icimsPosting, bool) {
	var posting icimsPosting
	found := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var p icimsPosting
		if err := json.Unmarshal([]byte(s.Text()), &p); err != nil {
			return true
		}
		if p.Title == "" && p.Description == "" {
			return true
		}
		posting = p
		found = true
		return false
	})
	return posting, found
}

// Placeholder the platform injects when a board hides its address.
const icimsUnavailable = "UNAVAILABLE"

func icimsLocation(posting icimsPosting, doc *goquery.Document) string {
	if len(posting.JobLocation) > 0 {
		addr := posting.JobLocation[0].Address
		city := icimsField(addr.AddressLocality)
		region := icimsField(addr.AddressRegion)
		country := icimsField(addr.AddressCountry)
		if composed := util.ComposeLocation(city, region, country); composed != "" {
			return composed
		}
	}
	// Older board themes print the location in the header column instead.
	header := doc.Find("div.col-xs-6.header.left").First()
	if header.Length() == 0 {
		return ""
	}
	var parts []string
	header.Children().Each(func(_ int, c *goquery.Selection) {
		if t := util.CleanText(c.Text()); t != "" && !strings.EqualFold(t, icimsUnavailable) {
			parts = append(parts, t)
		}
	})
	return util.ComposeLocation(parts...)
}

func icimsField(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), icimsUnavailable) {
		return ""
	}
	return v
}
