package cli

import (
	"fmt"
	"os"

	"github.com/avikbasu/docket/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Hearings service.HearingService
	Cases    service.CaseService
	Activity service.ActivityService

	// IsInteractive reports whether stdin is a terminal; interactive-only
	// flows (override prompt, agenda TUI) are gated on it.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "docket" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "docket",
		Short: "Hearing calendar with conflict detection",
	}

	root.PersistentFlags().String("owner", "", "Calendar owner (defaults to $DOCKET_OWNER, then $USER)")

	root.AddCommand(
		newCaseCmd(app),
		newHearingCmd(app),
		newConflictsCmd(app),
		newActivityCmd(app),
		newAgendaCmd(app),
	)

	return root
}

// resolveOwner picks the calendar owner: --owner flag, then DOCKET_OWNER,
// then the login user.
func resolveOwner(cmd *cobra.Command) (string, error) {
	owner, _ := cmd.Flags().GetString("owner")
	if owner != "" {
		return owner, nil
	}
	if env := os.Getenv("DOCKET_OWNER"); env != "" {
		return env, nil
	}
	if user := os.Getenv("USER"); user != "" {
		return user, nil
	}
	return "", fmt.Errorf("owner is required (use --owner or set DOCKET_OWNER)")
}
