package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

// Workday is the one feed that needs per-employer credentials: the CXS job
// API sits behind basic auth issued to the board owner.
type Workday struct {
	c     client
	creds CredentialSource
}

func (w *Workday) Kind() domain.ProviderKind { return domain.KindWorkday }

type workdayBoard struct {
	Scheme string
	Host   string
	Tenant string
	Site   string
}

type workdayPosting struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ExternalURL     string `json:"externalUrl"`
	JobDescription  string `json:"jobDescription"`
	PrimaryLocation struct {
		Descriptor string `json:"descriptor"`
	} `json:"primaryLocation"`
	TimeType struct {
		Descriptor string `json:"descriptor"`
	} `json:"timeType"`
}

type workdayBatch struct {
	Total       int              `json:"total"`
	JobPostings []workdayPosting `json:"jobPostings"`
}

// parseBoard splits a Workday board URL like
// https://acme.wd1.myworkdayjobs.com/en-US/External into tenant and site.
func parseBoard(raw string) (workdayBoard, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return workdayBoard{}, fmt.Errorf("workday board url %q", raw)
	}
	tenant := strings.SplitN(u.Host, ".", 2)[0]
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	site := parts[len(parts)-1]
	if tenant == "" || site == "" {
		return workdayBoard{}, fmt.Errorf("workday board url %q", raw)
	}
	return workdayBoard{Scheme: u.Scheme, Host: u.Host, Tenant: tenant, Site: site}, nil
}

func (w *Workday) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	board, err := parseBoard(emp.ATSURLParam)
	if err != nil {
		return nil, err
	}

	var user, pass string
	if w.creds != nil {
		user, pass, err = w.creds.WorkdayCredentials(emp)
		if err != nil {
			return nil, fmt.Errorf("error_during_authentication: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s://%s/wday/cxs/%s/%s/jobs", board.Scheme, board.Host, board.Tenant, board.Site)

	const pageSize = 50
	var all workdayBatch
	for offset := 0; ; offset += pageSize {
		page, err := w.fetchPage(ctx, endpoint, user, pass, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all.Total = page.Total
		all.JobPostings = append(all.JobPostings, page.JobPostings...)
		if len(page.JobPostings) == 0 || len(all.JobPostings) >= page.Total {
			break
		}
	}
	return all, nil
}

func (w *Workday) fetchPage(ctx context.Context, endpoint, user, pass string, limit, offset int) (workdayBatch, error) {
	body, _ := json.Marshal(map[string]any{
		"appliedFacets": map[string]any{},
		"limit":         limit,
		"offset":        offset,
		"searchText":    "",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return workdayBatch{}, err
	}
	req.Header.Set("User-Agent", "BoardFeed/1.0 (+import)")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if user != "" {
		req.SetBasicAuth(user, pass)
	}

	if w.c.limiter != nil {
		if err := w.c.limiter.WaitURL(ctx, endpoint); err != nil {
			return workdayBatch{}, err
		}
	}
	res, err := w.c.hc.Do(req)
	if err != nil {
		return workdayBatch{}, fmt.Errorf("workday post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return workdayBatch{}, fmt.Errorf("error_during_authentication: status %d", res.StatusCode)
	}
	if res.StatusCode >= 400 {
		return workdayBatch{}, fmt.Errorf("workday status %d", res.StatusCode)
	}

	var page workdayBatch
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return workdayBatch{}, fmt.Errorf("workday decode: %w", err)
	}
	return page, nil
}

func (w *Workday) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	b, ok := batch.(workdayBatch)
	if !ok {
		return wrongBatch(w.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(b.JobPostings))
	for _, p := range b.JobPostings {
		if p.ID == "" || p.ExternalURL == "" {
			continue
		}
		// Workday boards spell remote postings "Remote - <City>"; the flag
		// is derived, then the marker is stripped from the display text.
		raw := p.PrimaryLocation.Descriptor
		location := util.CleanText(strings.ReplaceAll(strings.ReplaceAll(raw, "Remote", ""), "-", ""))
		jobType := p.TimeType.Descriptor
		if jobType == "" {
			jobType = "Full time"
		}
		out = append(out, domain.CanonicalJob{
			Title:        p.Title,
			Description:  resolveDescription(p.JobDescription, emp),
			HowToApply:   p.ExternalURL + "?source=" + trackingSource(emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, p.Title, util.ContainsFold(raw, "remote")),
			ATSID:        "workday_" + p.ID,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{"job_type": jobType},
		})
	}
	return out
}
