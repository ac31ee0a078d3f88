package domain

import "time"

// Job is the persisted row a CanonicalJob becomes once upserted. Activation
// bookkeeping and derived custom fields live here, not on the transient
// canonical record.
type Job struct {
	ID             int64
	ATSID          string
	Title          string
	Description    string
	HowToApply     string
	EmployerID     int64
	EmployerName   string
	EmployerLogo   string
	Location       string
	Remote         bool
	PostedBy       string
	CustomFields   map[string]any
	History        ActivationHistory
	ActivationDate *time.Time
	ExpirationDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
