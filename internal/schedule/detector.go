package schedule

import (
	"sort"
	"time"

	"github.com/avikbasu/docket/internal/domain"
)

// Candidate is a joined view of a hearing with its case number, the shape
// the detector needs to build caller-renderable conflict records.
type Candidate struct {
	Hearing    *domain.Hearing
	CaseNumber string
}

// ConflictRecord describes one existing hearing that collides with a
// proposed interval. It carries everything a caller needs to render a
// resolution UI without further lookups.
type ConflictRecord struct {
	HearingID  string
	CaseNumber string
	StartAt    time.Time
	EndAt      time.Time
	Reason     domain.ConflictReason
}

// FindConflicts returns the candidates whose intervals intersect the
// proposed half-open window [start, end), sorted ascending by candidate
// start for determinism. Only scheduled hearings participate, and the
// hearing identified by excludeID never conflicts with itself.
//
// When the proposed scope and a candidate's scope are both non-empty, the
// candidate additionally must match under the given matcher; an empty
// scope on either side means a pure time overlap already conflicts.
// A resource match is reported as the more specific reason.
func FindConflicts(start, end time.Time, scope map[string]string, candidates []Candidate, excludeID string, match ScopeMatcher) []ConflictRecord {
	if match == nil {
		match = AnyPairMatch
	}

	var out []ConflictRecord
	for _, c := range candidates {
		h := c.Hearing
		if h.ID == excludeID || !h.Conflictable() || !h.Overlaps(start, end) {
			continue
		}

		scoped := len(scope) > 0 && len(h.ResourceScope) > 0
		if scoped && !match(scope, h.ResourceScope) {
			continue
		}

		reason := domain.ReasonTimeOverlap
		if scoped {
			reason = domain.ReasonResourceClash
		}
		out = append(out, ConflictRecord{
			HearingID:  h.ID,
			CaseNumber: c.CaseNumber,
			StartAt:    h.StartAt,
			EndAt:      h.EndAt,
			Reason:     reason,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].HearingID < out[j].HearingID
	})
	return out
}

// ConflictIDs extracts the hearing IDs from a conflict set, preserving order.
func ConflictIDs(conflicts []ConflictRecord) []string {
	ids := make([]string, len(conflicts))
	for i, c := range conflicts {
		ids[i] = c.HearingID
	}
	return ids
}
