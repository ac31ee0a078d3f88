package domain

// ProviderKind identifies which ATS an employer's feed comes from.
type ProviderKind string

const (
	KindLever        ProviderKind = "lever"
	KindGreenhouse   ProviderKind = "greenhouse"
	KindWorkable     ProviderKind = "workable"
	KindAshby        ProviderKind = "ashby"
	KindRecruitee    ProviderKind = "recruitee"
	KindSyncHR       ProviderKind = "sync_hr"
	KindClearCompany ProviderKind = "clear_company"
	KindBreezyHR     ProviderKind = "breezy_hr"
	KindJazzHR       ProviderKind = "jazz_hr"
	KindPersonio     ProviderKind = "personio"
	KindJobvite      ProviderKind = "jobvite"
	KindPolymer      ProviderKind = "polymer"
	KindJobScore     ProviderKind = "jobscore"
	KindWorkday      ProviderKind = "workday"
	KindTeamTailor   ProviderKind = "team_tailor"
	KindRippling     ProviderKind = "rippling"
	KindBambooHR     ProviderKind = "bamboo_hr"
	KindICIMS        ProviderKind = "icims"
)

type Employer struct {
	ID                     int64
	CompanyName            string
	Email                  string
	ATS                    ProviderKind
	ATSURLParam            string // slug/tenant used to build feed URLs
	ATSKey                 string // API key for key-authenticated feeds
	Remote                 bool   // default-remote employer
	CompanyDescription     string // fallback when a posting has no body
	ApplyURLTrackingParams string
	Logo                   string
	Active                 bool
	Deleted                bool
	ImportJobs             bool
	JobBoardIDs            []int64
}

// Eligible reports whether the employer participates in the import run.
func (e Employer) Eligible() bool {
	return e.Active && !e.Deleted && e.ImportJobs && e.ATS != ""
}
