package formatter

import (
	"fmt"
	"strings"

	"github.com/avikbasu/docket/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the lipgloss style for a hearing status.
func StatusStyle(status domain.HearingStatus) lipgloss.Style {
	switch status {
	case domain.HearingScheduled:
		return StyleBlue
	case domain.HearingCompleted:
		return StyleGreen
	case domain.HearingAdjourned:
		return StyleYellow
	case domain.HearingCancelled:
		return StyleDim
	default:
		return StyleDim
	}
}

// StatusBadge returns a colored status string such as "● scheduled".
func StatusBadge(status domain.HearingStatus) string {
	return StatusStyle(status).Render("● " + string(status))
}

// ConflictBadge renders a conflict reason in its alarm color.
func ConflictBadge(reason domain.ConflictReason) string {
	if reason == domain.ReasonResourceClash {
		return StyleRed.Render("double-booked")
	}
	return StyleYellow.Render("overlap")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
