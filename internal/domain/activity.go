package domain

import "time"

// ActivityEntry is one audit-trail record. Activity logging is
// observability, not a correctness invariant: writers treat failures as
// non-fatal.
type ActivityEntry struct {
	ID         string
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	Detail     string
	CreatedAt  time.Time
}

// Audit actions emitted by the scheduling engine.
const (
	ActionHearingScheduled  = "hearing_scheduled"
	ActionHearingUpdated    = "hearing_updated"
	ActionHearingDeleted    = "hearing_deleted"
	ActionConflictOverride  = "conflict_override"
	ActionNextHearingUpdate = "next_hearing_recomputed"
)
