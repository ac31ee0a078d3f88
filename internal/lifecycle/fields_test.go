package lifecycle

import "boardfeed-engine/internal/config"

func taxonomyFixture() config.Taxonomy {
	return config.Taxonomy{
		JobTypes: []config.Rule{
			{Label: "Part-time", Any: []string{"part-time", "part time"}},
			{Label: "Contract", Any: []string{"contract", "contractor"}},
		},
		ExperienceLevels: []config.Rule{
			{Label: "Senior", Any: []string{"senior", "staff", "principal"}},
			{Label: "Junior", Any: []string{"junior", "entry level"}},
		},
	}
}
