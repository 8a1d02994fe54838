package domain

import "time"

// Hearing is a single court appearance on one attorney's calendar.
// HearingDate, HearingTime, Timezone and DurationMin are the scheduling
// source of truth; StartAt/EndAt are derived absolute instants and must be
// recomputed whenever any of the four source fields change.
type Hearing struct {
	ID     string
	CaseID string
	Owner  string

	// Source-of-truth local scheduling fields
	HearingDate string // calendar date, "2006-01-02"
	HearingTime string // wall-clock time, 24-hour or 12-hour+meridiem
	Timezone    string // IANA zone identifier
	DurationMin int

	// Derived instants, invariant StartAt < EndAt
	StartAt time.Time
	EndAt   time.Time

	Status HearingStatus

	// ResourceScope narrows which other hearings count as conflicting
	// (e.g. court, judge). Empty means any time overlap on the owner's
	// calendar already conflicts.
	ResourceScope map[string]string

	// Optional follow-up hint, an alternate source for the owning case's
	// derived next-hearing value.
	NextHearingDate string
	NextHearingTime string

	// Present only if the hearing was written despite detected conflicts.
	Override *ConflictOverride

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConflictOverride records an explicit, reasoned decision to schedule a
// hearing despite detected conflicts.
type ConflictOverride struct {
	Allowed             bool
	Reason              string
	OverriddenBy        string
	OverriddenAt        time.Time
	ConflictingHearings []string
}

// Conflictable reports whether this hearing participates in conflict
// detection. Only scheduled hearings block other hearings.
func (h *Hearing) Conflictable() bool {
	return h.Status == HearingScheduled
}

// Overlaps reports whether the half-open interval [start, end) intersects
// this hearing's derived interval.
func (h *Hearing) Overlaps(start, end time.Time) bool {
	return h.StartAt.Before(end) && start.Before(h.EndAt)
}
