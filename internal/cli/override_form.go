package cli

import (
	"fmt"
	"strings"

	"github.com/avikbasu/docket/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// docketHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func docketHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// promptOverrideReason asks whether to schedule past the detected conflicts
// and, if confirmed, collects the mandatory override reason. Returns ok=false
// when the user backs out.
func promptOverrideReason(conflictCount int) (reason string, ok bool, err error) {
	var confirm bool
	var text string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Schedule anyway, past %d conflict(s)?", conflictCount)).
				Affirmative("Override").
				Negative("Back out").
				Value(&confirm),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Override reason").
				Placeholder("Emergency hearing ordered by court").
				Value(&text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a reason is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return !confirm }),
	).WithTheme(docketHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", false, err
	}
	if !confirm {
		return "", false, nil
	}
	return strings.TrimSpace(text), true, nil
}
