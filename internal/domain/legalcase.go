package domain

import "time"

// Case is the owning legal matter for a set of hearings.
// NextHearing is a materialized view over the case's hearings: the earliest
// effective future date across them, or nil. It is written exclusively by
// the next-hearing propagator and must never be hand-edited.
type Case struct {
	ID         string
	Owner      string
	CaseNumber string
	ClientName string
	Status     CaseStatus

	NextHearing *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayID returns the best short identifier for display: the case number
// when present, otherwise the ID truncated to 8 characters.
func (c *Case) DisplayID() string {
	if c.CaseNumber != "" {
		return c.CaseNumber
	}
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}
