package domain

// PostedByImport tags every job produced by the automated feed import.
// It is how imported rows are told apart from manually posted ones.
const PostedByImport = "Job Auto Import"

// CanonicalJob is the normalized record every provider adapter produces.
// Records are transient: they live for one import run and are consumed by
// the store's upsert.
type CanonicalJob struct {
	Title        string
	Description  string // sanitized HTML
	HowToApply   string // apply URL, tracking params already appended
	EmployerID   int64
	EmployerName string
	EmployerLogo string
	Location     string // empty means unspecified/remote
	Remote       bool
	ATSID        string // globally unique, stable across runs; dedup key
	PostedBy     string
	CustomFields map[string]any
}
