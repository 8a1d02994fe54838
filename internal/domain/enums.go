package domain

type HearingStatus string

const (
	HearingScheduled HearingStatus = "scheduled"
	HearingCompleted HearingStatus = "completed"
	HearingAdjourned HearingStatus = "adjourned"
	HearingCancelled HearingStatus = "cancelled"
)

// ValidHearingStatuses is the canonical set of accepted hearing status strings.
var ValidHearingStatuses = map[string]bool{
	"scheduled": true, "completed": true, "adjourned": true, "cancelled": true,
}

type CaseStatus string

const (
	CaseOpen     CaseStatus = "open"
	CaseClosed   CaseStatus = "closed"
	CaseArchived CaseStatus = "archived"
)

type ConflictReason string

const (
	// ReasonTimeOverlap marks a plain interval collision on the owner's calendar.
	ReasonTimeOverlap ConflictReason = "time_overlap"
	// ReasonResourceClash marks a double-booking of the same resource
	// (same court, same judge, ...). Reported instead of ReasonTimeOverlap
	// when both hearings carry a matching resource scope entry.
	ReasonResourceClash ConflictReason = "resource_double_booking"
)
