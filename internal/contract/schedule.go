package contract

import (
	"time"

	"github.com/avikbasu/docket/internal/schedule"
)

// ConflictRecord is the caller-facing shape of one detected collision.
type ConflictRecord = schedule.ConflictRecord

// OverrideRequest carries an explicit decision to schedule despite
// conflicts. The reason is mandatory and is persisted trimmed.
type OverrideRequest struct {
	Reason string
}

// ScheduleRequest creates a hearing, or updates one when HearingID is set.
// HearingDate, HearingTime, Timezone and DurationMin are the local
// scheduling source of truth; absolute instants are derived server-side.
type ScheduleRequest struct {
	HearingID string // empty for create
	CaseID    string
	Owner     string
	ActorID   string // defaults to Owner

	HearingDate string
	HearingTime string
	Timezone    string
	DurationMin int

	Status          string // defaults to scheduled
	ResourceScope   map[string]string
	NextHearingDate string
	NextHearingTime string

	Override *OverrideRequest

	// Now pins "current time" for deterministic tests; nil means wall clock.
	Now *time.Time
}

// NewScheduleRequest returns a create request with engine defaults applied.
func NewScheduleRequest(caseID, owner string) ScheduleRequest {
	return ScheduleRequest{
		CaseID:      caseID,
		Owner:       owner,
		Timezone:    "UTC",
		DurationMin: schedule.DefaultDurationMin,
	}
}

// CheckConflictRequest asks whether a proposed interval collides with the
// owner's existing scheduled hearings.
type CheckConflictRequest struct {
	Owner            string
	StartAt          time.Time
	EndAt            time.Time
	ResourceScope    map[string]string
	ExcludeHearingID string
}

// CheckConflictResponse reports the conflict set for a proposed interval.
type CheckConflictResponse struct {
	HasConflict bool
	Conflicts   []ConflictRecord
}

type ScheduleErrorCode string

const (
	ErrValidation ScheduleErrorCode = "VALIDATION_ERROR"
	ErrConflict   ScheduleErrorCode = "CONFLICT"
	ErrInternal   ScheduleErrorCode = "INTERNAL_ERROR"
)

// ScheduleError is the coded error surface of the scheduling engine.
// CONFLICT errors carry the full conflict set so the caller can choose
// between editing the time and overriding.
type ScheduleError struct {
	Code      ScheduleErrorCode
	Message   string
	Conflicts []ConflictRecord
}

func (e *ScheduleError) Error() string {
	return string(e.Code) + ": " + e.Message
}
