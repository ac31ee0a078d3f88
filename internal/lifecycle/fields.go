package lifecycle

import (
	"strings"

	"boardfeed-engine/internal/config"
	"boardfeed-engine/internal/domain"
)

// Tagger fills in custom-field taxonomy on freshly imported jobs from the
// configured keyword tables.
type Tagger struct {
	Taxonomy config.Taxonomy
}

// Apply derives job_type and experience_level for a job and reports whether
// anything changed. Provider-supplied values win; keywords only fill gaps.
// Job type falls back to the title when the provider sent nothing usable.
func (t Tagger) Apply(job *domain.Job) bool {
	if job.CustomFields == nil {
		job.CustomFields = map[string]any{}
	}
	changed := false

	if jobTypeMissing(job.CustomFields) {
		if label := matchRules(t.Taxonomy.JobTypes, job.Title); label != "" {
			job.CustomFields["job_type"] = label
			changed = true
		}
	}

	if _, ok := job.CustomFields["experience_level"]; !ok {
		if label := matchRules(t.Taxonomy.ExperienceLevels, job.Title); label != "" {
			job.CustomFields["experience_level"] = map[string]any{"seniority": label}
			changed = true
		}
	}

	return changed
}

func jobTypeMissing(fields map[string]any) bool {
	v, ok := fields["job_type"]
	if !ok {
		return true
	}
	s, isString := v.(string)
	return isString && strings.TrimSpace(s) == ""
}

func matchRules(rules []config.Rule, text string) string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, needle := range r.Any {
			if strings.Contains(lower, strings.ToLower(needle)) {
				return r.Label
			}
		}
	}
	return ""
}
