package config

import (
	"fmt"
	"os"

	"boardfeed-engine/internal/domain"

	"gopkg.in/yaml.v3"
)

// employerSeed is the on-disk shape of one employer entry.
type employerSeed struct {
	ID                     int64   `yaml:"id"`
	CompanyName            string  `yaml:"company_name"`
	Email                  string  `yaml:"email"`
	ATS                    string  `yaml:"ats"`
	ATSURLParam            string  `yaml:"ats_url_param"`
	ATSKey                 string  `yaml:"ats_key"`
	Remote                 bool    `yaml:"remote"`
	CompanyDescription     string  `yaml:"company_description"`
	ApplyURLTrackingParams string  `yaml:"apply_url_tracking_params"`
	Logo                   string  `yaml:"logo"`
	Active                 bool    `yaml:"active"`
	Deleted                bool    `yaml:"deleted"`
	ImportJobs             bool    `yaml:"import_jobs"`
	JobBoardIDs            []int64 `yaml:"job_board_ids"`
}

type boardSeed struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// LoadEmployers reads the employer roster kept next to the app config.
func LoadEmployers(path string) ([]domain.Employer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seeds []employerSeed
	if err := yaml.Unmarshal(b, &seeds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make([]domain.Employer, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, domain.Employer{
			ID:                     s.ID,
			CompanyName:            s.CompanyName,
			Email:                  s.Email,
			ATS:                    domain.ProviderKind(s.ATS),
			ATSURLParam:            s.ATSURLParam,
			ATSKey:                 s.ATSKey,
			Remote:                 s.Remote,
			CompanyDescription:     s.CompanyDescription,
			ApplyURLTrackingParams: s.ApplyURLTrackingParams,
			Logo:                   s.Logo,
			Active:                 s.Active,
			Deleted:                s.Deleted,
			ImportJobs:             s.ImportJobs,
			JobBoardIDs:            s.JobBoardIDs,
		})
	}
	return out, nil
}

// LoadBoards reads the job board roster.
func LoadBoards(path string) ([]domain.JobBoard, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seeds []boardSeed
	if err := yaml.Unmarshal(b, &seeds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make([]domain.JobBoard, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, domain.JobBoard{ID: s.ID, Name: s.Name})
	}
	return out, nil
}
