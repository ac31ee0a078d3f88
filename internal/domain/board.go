package domain

type JobBoard struct {
	ID   int64
	Name string
}

// Membership links one persisted job to one board. Active=false suppresses
// the job from that board without deleting the row.
type Membership struct {
	JobID      int64
	JobBoardID int64
	Active     bool
}
