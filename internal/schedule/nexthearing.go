package schedule

import (
	"time"

	"github.com/avikbasu/docket/internal/domain"
)

// NextHearing reduces a case's full hearing set to its derived next-hearing
// value: the minimum effective future date across all hearings, or nil when
// none exists. Re-running over the same set always yields the same result;
// the reducer reads full state rather than applying deltas, so concurrent
// recomputations are order-independent.
func NextHearing(hearings []*domain.Hearing, now time.Time) *time.Time {
	var next *time.Time
	for _, h := range hearings {
		eff := EffectiveFutureDate(h, now)
		if eff == nil {
			continue
		}
		if next == nil || eff.Before(*next) {
			next = eff
		}
	}
	return next
}

// EffectiveFutureDate returns the instant a hearing contributes to its
// case's next-hearing value: the hearing's own follow-up date when present
// and not in the past, otherwise its scheduled start when the hearing is
// still scheduled and not in the past. Nil when neither applies.
//
// Follow-up dates are resolved in the hearing's own timezone; a follow-up
// without a time lands on local midnight.
func EffectiveFutureDate(h *domain.Hearing, now time.Time) *time.Time {
	if h.NextHearingDate != "" {
		if t, err := resolveLocal(h.NextHearingDate, h.NextHearingTime, h.Timezone); err == nil && !t.Before(now) {
			return &t
		}
	}
	if h.Status == domain.HearingScheduled && !h.StartAt.Before(now) {
		start := h.StartAt
		return &start
	}
	return nil
}
