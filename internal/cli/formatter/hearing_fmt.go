package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avikbasu/docket/internal/domain"
	"github.com/avikbasu/docket/internal/schedule"
)

// FormatLocalSlot renders a hearing's slot in its own timezone,
// e.g. "2025-06-01 10:00 Asia/Kolkata (60m)".
func FormatLocalSlot(h *domain.Hearing) string {
	t := h.HearingTime
	if t == "" {
		t = "00:00"
	}
	return fmt.Sprintf("%s %s %s (%dm)", h.HearingDate, t, h.Timezone, h.DurationMin)
}

// FormatInstant renders an absolute instant in UTC.
func FormatInstant(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func formatScope(scope map[string]string) string {
	if len(scope) == 0 {
		return Dim("—")
	}
	keys := make([]string, 0, len(scope))
	for k := range scope {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+scope[k])
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatHearingList renders hearings as a table, one row per hearing.
func FormatHearingList(hearings []*domain.Hearing) string {
	headers := []string{"ID", "When", "Status", "Resources", "Case"}
	rows := make([][]string, 0, len(hearings))
	for _, h := range hearings {
		rows = append(rows, []string{
			Dim(shortID(h.ID)),
			FormatLocalSlot(h),
			StatusBadge(h.Status),
			formatScope(h.ResourceScope),
			shortID(h.CaseID),
		})
	}
	return RenderTable(headers, rows)
}

// FormatHearingInspect renders the full detail view for one hearing.
func FormatHearingInspect(h *domain.Hearing, caseNumber string) string {
	var b strings.Builder
	b.WriteString(Header("Hearing " + shortID(h.ID)))
	b.WriteString("\n")

	write := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value))
	}

	write("Case", caseNumber)
	write("Local", FormatLocalSlot(h))
	write("Starts", FormatInstant(h.StartAt))
	write("Ends", FormatInstant(h.EndAt))
	write("Status", StatusBadge(h.Status))
	write("Resources", formatScope(h.ResourceScope))
	if h.NextHearingDate != "" {
		next := h.NextHearingDate
		if h.NextHearingTime != "" {
			next += " " + h.NextHearingTime
		}
		write("Follow-up", next)
	}
	if h.Override != nil && h.Override.Allowed {
		write("Override", fmt.Sprintf("%s %s",
			StyleYellow.Render("allowed"),
			Dim(fmt.Sprintf("by %s at %s", h.Override.OverriddenBy, FormatInstant(h.Override.OverriddenAt)))))
		write("", fmt.Sprintf("%q, past %d hearing(s)", h.Override.Reason, len(h.Override.ConflictingHearings)))
	}
	return b.String()
}

// FormatConflicts renders a detected conflict set as a table.
func FormatConflicts(conflicts []schedule.ConflictRecord) string {
	headers := []string{"Hearing", "Case", "Starts", "Ends", "Reason"}
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			Dim(shortID(c.HearingID)),
			c.CaseNumber,
			FormatInstant(c.StartAt),
			FormatInstant(c.EndAt),
			ConflictBadge(c.Reason),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCaseList renders cases with their next-hearing projection.
func FormatCaseList(cases []*domain.Case) string {
	headers := []string{"Case", "Client", "Status", "Next hearing"}
	rows := make([][]string, 0, len(cases))
	for _, c := range cases {
		next := Dim("—")
		if c.NextHearing != nil {
			next = FormatInstant(*c.NextHearing)
		}
		rows = append(rows, []string{
			Bold(c.CaseNumber),
			c.ClientName,
			string(c.Status),
			next,
		})
	}
	return RenderTable(headers, rows)
}

// FormatActivityList renders audit-trail entries, newest first.
func FormatActivityList(entries []*domain.ActivityEntry) string {
	headers := []string{"At", "Actor", "Action", "Detail"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			Dim(e.CreatedAt.UTC().Format("2006-01-02 15:04")),
			e.Actor,
			StyleBlue.Render(e.Action),
			e.Detail,
		})
	}
	return RenderTable(headers, rows)
}
