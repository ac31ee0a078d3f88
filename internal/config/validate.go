package config

import (
	"fmt"
	"strings"

	"boardfeed-engine/internal/domain"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Validate sanity-checks the loaded config. Defaults are already applied,
// so anything out of range here came from the file itself.
func Validate(cfg Config) Validation {
	var res Validation

	if cfg.Import.EmployersFile == "" {
		res.addErr("import.employers_file is required")
	}
	if cfg.Import.Workers > 64 {
		res.addWarn("import.workers is very high (%d); provider hosts may throttle.", cfg.Import.Workers)
	}
	if cfg.Import.IntervalMinutes < 5 {
		res.addWarn("import.interval_minutes is very low (%d); runs may overlap their sources.", cfg.Import.IntervalMinutes)
	}

	if cfg.Notify.SMTPHost != "" {
		if cfg.Notify.From == "" {
			res.addErr("notify.from is required when notify.smtp_host is set")
		}
		if len(cfg.Notify.To) == 0 {
			res.addErr("notify.to is required when notify.smtp_host is set")
		}
	}

	checkRules := func(section string, rules []Rule) {
		for i, r := range rules {
			if strings.TrimSpace(r.Label) == "" {
				res.addErr("taxonomy.%s[%d] has no label", section, i)
			}
			if len(r.Any) == 0 {
				res.addWarn("taxonomy.%s[%d] (%s) has no keywords and will never match.", section, i, r.Label)
			}
		}
	}
	checkRules("job_types", cfg.Taxonomy.JobTypes)
	checkRules("experience_levels", cfg.Taxonomy.ExperienceLevels)

	return res
}

// ValidateEmployers sanity-checks the roster before a run uses it.
func ValidateEmployers(employers []domain.Employer) Validation {
	var res Validation

	known := map[domain.ProviderKind]bool{
		domain.KindLever: true, domain.KindGreenhouse: true, domain.KindWorkable: true,
		domain.KindAshby: true, domain.KindRecruitee: true, domain.KindSyncHR: true,
		domain.KindClearCompany: true, domain.KindBreezyHR: true, domain.KindJazzHR: true,
		domain.KindPersonio: true, domain.KindJobvite: true, domain.KindPolymer: true,
		domain.KindJobScore: true, domain.KindWorkday: true, domain.KindTeamTailor: true,
		domain.KindRippling: true, domain.KindBambooHR: true, domain.KindICIMS: true,
	}

	seen := map[int64]bool{}
	for _, emp := range employers {
		if emp.ID == 0 {
			res.addErr("employer %q has no id", emp.CompanyName)
		}
		if seen[emp.ID] {
			res.addErr("duplicate employer id %d", emp.ID)
		}
		seen[emp.ID] = true

		if !emp.Eligible() {
			continue
		}
		if !known[emp.ATS] {
			res.addErr("employer %q: unknown ats %q", emp.CompanyName, emp.ATS)
		}
		if emp.ATSURLParam == "" {
			res.addErr("employer %q: ats_url_param is required for %s", emp.CompanyName, emp.ATS)
		}
		if emp.ATS == domain.KindJazzHR && emp.ATSKey == "" {
			res.addErr("employer %q: jazz_hr needs an api key", emp.CompanyName)
		}
		if len(emp.JobBoardIDs) == 0 {
			res.addWarn("employer %q has no boards; its jobs will never be listed.", emp.CompanyName)
		}
	}
	return res
}

// ValidateBoards cross-checks the board roster against the employer roster.
func ValidateBoards(employers []domain.Employer, boards []domain.JobBoard) Validation {
	var res Validation

	known := map[int64]bool{}
	for _, b := range boards {
		if b.ID == 0 {
			res.addErr("board %q has no id", b.Name)
		}
		if known[b.ID] {
			res.addErr("duplicate board id %d", b.ID)
		}
		known[b.ID] = true
	}

	for _, emp := range employers {
		if !emp.Eligible() {
			continue
		}
		for _, id := range emp.JobBoardIDs {
			if !known[id] {
				res.addWarn("employer %q references unknown board %d.", emp.CompanyName, id)
			}
		}
	}
	return res
}
