package schedule

import (
	"errors"
	"strings"
	"time"

	"github.com/avikbasu/docket/internal/domain"
)

var (
	// ErrReasonRequired rejects an override with an empty or
	// whitespace-only reason.
	ErrReasonRequired = errors.New("override reason is required")
	// ErrNoConflicts rejects an override applied to an empty conflict
	// set: with nothing to override, the write must proceed unmarked.
	ErrNoConflicts = errors.New("override without conflicts is a no-op")
)

// BuildOverride validates an explicit override decision and constructs the
// metadata stamped onto the hearing being written. This is the only path by
// which a hearing may be scheduled while conflicts exist.
func BuildOverride(conflicts []ConflictRecord, reason, actorID string, now time.Time) (*domain.ConflictOverride, error) {
	if len(conflicts) == 0 {
		return nil, ErrNoConflicts
	}
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return nil, ErrReasonRequired
	}

	return &domain.ConflictOverride{
		Allowed:             true,
		Reason:              trimmed,
		OverriddenBy:        actorID,
		OverriddenAt:        now,
		ConflictingHearings: ConflictIDs(conflicts),
	}, nil
}
