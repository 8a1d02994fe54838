package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/avikbasu/docket/internal/domain"
	"github.com/avikbasu/docket/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func sampleHearing() *domain.Hearing {
	return &domain.Hearing{
		ID:          "7f3a9c21-aaaa-bbbb-cccc-000000000001",
		CaseID:      "case-1",
		Owner:       "u1",
		HearingDate: "2025-06-01",
		HearingTime: "10:00",
		Timezone:    "Asia/Kolkata",
		DurationMin: 60,
		StartAt:     time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC),
		EndAt:       time.Date(2025, 6, 1, 5, 30, 0, 0, time.UTC),
		Status:      domain.HearingScheduled,
	}
}

func TestFormatLocalSlot(t *testing.T) {
	got := FormatLocalSlot(sampleHearing())
	assert.Equal(t, "2025-06-01 10:00 Asia/Kolkata (60m)", got)
}

func TestFormatHearingList_ShowsSlotAndStatus(t *testing.T) {
	out := FormatHearingList([]*domain.Hearing{sampleHearing()})
	assert.Contains(t, out, "2025-06-01 10:00 Asia/Kolkata")
	assert.Contains(t, out, "scheduled")
	assert.Contains(t, out, "7f3a9c21")
}

func TestFormatHearingInspect_IncludesOverride(t *testing.T) {
	h := sampleHearing()
	h.Override = &domain.ConflictOverride{
		Allowed:             true,
		Reason:              "Emergency hearing",
		OverriddenBy:        "u1",
		OverriddenAt:        time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		ConflictingHearings: []string{"other"},
	}
	out := FormatHearingInspect(h, "CASE-0001")
	assert.Contains(t, out, "CASE-0001")
	assert.Contains(t, out, "Emergency hearing")
	assert.Contains(t, out, "past 1 hearing(s)")
}

func TestFormatConflicts_RendersReasons(t *testing.T) {
	out := FormatConflicts([]schedule.ConflictRecord{
		{
			HearingID:  "abc",
			CaseNumber: "CASE-0007",
			StartAt:    time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC),
			EndAt:      time.Date(2025, 6, 1, 5, 30, 0, 0, time.UTC),
			Reason:     domain.ReasonResourceClash,
		},
	})
	assert.Contains(t, out, "CASE-0007")
	assert.Contains(t, out, "double-booked")
}

func TestFormatCaseList_NextHearingFallback(t *testing.T) {
	next := time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC)
	out := FormatCaseList([]*domain.Case{
		{CaseNumber: "CASE-0001", ClientName: "Acme", Status: domain.CaseOpen, NextHearing: &next},
		{CaseNumber: "CASE-0002", ClientName: "Beta", Status: domain.CaseOpen},
	})
	assert.Contains(t, out, "2025-06-01 04:30")
	assert.Contains(t, out, "CASE-0002")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "Long header"}, [][]string{{"x", "y"}, {"longer cell", "z"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "A")
	assert.Contains(t, lines[1], "─")
}
