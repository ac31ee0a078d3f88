package domain

import "time"

// DateRange is one continuous period a job was active on the site.
// To == nil marks the currently open period.
type DateRange struct {
	From time.Time  `json:"from"`
	To   *time.Time `json:"to"`
}

// ActivationHistory is the ordered activation record attached to a job.
// Invariants: at most one open range, and ranges never move backwards in time.
type ActivationHistory struct {
	DateRanges []DateRange `json:"date_ranges"`
}
