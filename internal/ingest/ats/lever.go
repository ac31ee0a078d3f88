package ats

import (
	"context"
	"fmt"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"
)

type Lever struct {
	c client
}

func (l *Lever) Kind() domain.ProviderKind { return domain.KindLever }

type leverPosting struct {
	ID               string `json:"id"`
	Text             string `json:"text"` // title
	ApplyURL         string `json:"applyUrl"`
	Description      string `json:"description"` // html intro
	DescriptionPlain string `json:"descriptionPlain"`
	Additional       string `json:"additional"`
	AdditionalPlain  string `json:"additionalPlain"`
	Lists            []struct {
		Text    string `json:"text"`    // section heading
		Content string `json:"content"` // <li> html
	} `json:"lists"`
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
}

type leverBatch []leverPosting

func (l *Lever) Fetch(ctx context.Context, emp domain.Employer) (Batch, error) {
	url := fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json", emp.ATSURLParam)
	var postings leverBatch
	if err := l.c.getJSON(ctx, url, &postings); err != nil {
		return nil, fmt.Errorf("lever get: %w", err)
	}
	return postings, nil
}

func (l *Lever) Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	postings, ok := batch.(leverBatch)
	if !ok {
		return wrongBatch(l.Kind(), emp, rep)
	}

	out := make([]domain.CanonicalJob, 0, len(postings))
	for _, p := range postings {
		if p.ID == "" || p.ApplyURL == "" {
			continue
		}
		location := util.NormalizeLocation(p.Categories.Location, false)
		desc := leverDescription(p)
		if util.CleanText(desc) == "" {
			desc = emp.CompanyDescription
		}
		out = append(out, domain.CanonicalJob{
			Title:        p.Text,
			Description:  desc,
			HowToApply:   applyURL(p.ApplyURL, emp),
			EmployerID:   emp.ID,
			EmployerName: emp.CompanyName,
			EmployerLogo: emp.Logo,
			Location:     location,
			Remote:       util.IsRemote(emp, location, p.Text, false),
			ATSID:        "lev_" + p.ID,
			PostedBy:     domain.PostedByImport,
			CustomFields: map[string]any{},
		})
	}
	return out
}

// leverDescription stitches the posting body from the intro, the list
// sections, and the additional blurb, in that order. Plain variants are only
// used when the HTML ones are missing.
func leverDescription(p leverPosting) string {
	text := ""
	if p.Description != "" {
		text += p.Description + "<br><br>"
	}
	for _, list := range p.Lists {
		if list.Text != "" && list.Content != "" {
			text += "<h3>" + list.Text + "</h3><ul>" + list.Content + "</ul>"
		}
	}
	if util.CleanText(text) == "" {
		text += p.DescriptionPlain
	}
	switch {
	case p.Additional != "":
		text += "<br>" + p.Additional
	case p.AdditionalPlain != "":
		text += "<br>" + p.AdditionalPlain
	}
	return util.SanitizeDescription(text)
}
