package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avikbasu/docket/internal/domain"
	"github.com/google/uuid"
)

var caseNumberCounter atomic.Int64

// Case options
type CaseOption func(*domain.Case)

func WithCaseNumber(n string) CaseOption {
	return func(c *domain.Case) { c.CaseNumber = n }
}

func WithCaseStatus(s domain.CaseStatus) CaseOption {
	return func(c *domain.Case) { c.Status = s }
}

func WithClientName(name string) CaseOption {
	return func(c *domain.Case) { c.ClientName = name }
}

// NewTestCase builds a persisted-ready open case for the given owner.
func NewTestCase(owner string, opts ...CaseOption) *domain.Case {
	now := time.Now().UTC()
	c := &domain.Case{
		ID:         uuid.New().String(),
		Owner:      owner,
		CaseNumber: fmt.Sprintf("CASE-%04d", caseNumberCounter.Add(1)),
		ClientName: "Test Client",
		Status:     domain.CaseOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hearing options
type HearingOption func(*domain.Hearing)

func WithHearingStatus(s domain.HearingStatus) HearingOption {
	return func(h *domain.Hearing) { h.Status = s }
}

func WithResourceScope(scope map[string]string) HearingOption {
	return func(h *domain.Hearing) { h.ResourceScope = scope }
}

func WithFollowUp(date, localTime string) HearingOption {
	return func(h *domain.Hearing) {
		h.NextHearingDate = date
		h.NextHearingTime = localTime
	}
}

func WithDuration(minutes int) HearingOption {
	return func(h *domain.Hearing) {
		h.DurationMin = minutes
		h.EndAt = h.StartAt.Add(time.Duration(minutes) * time.Minute)
	}
}

// NewTestHearing builds a scheduled hearing starting at the given UTC
// instant with a one-hour duration. The local source fields are derived
// from the instant so resolver round-trips agree with StartAt.
func NewTestHearing(caseID, owner string, startAt time.Time, opts ...HearingOption) *domain.Hearing {
	now := time.Now().UTC()
	start := startAt.UTC()
	h := &domain.Hearing{
		ID:          uuid.New().String(),
		CaseID:      caseID,
		Owner:       owner,
		HearingDate: start.Format("2006-01-02"),
		HearingTime: start.Format("15:04"),
		Timezone:    "UTC",
		DurationMin: 60,
		StartAt:     start,
		EndAt:       start.Add(time.Hour),
		Status:      domain.HearingScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
