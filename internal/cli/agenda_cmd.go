package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newAgendaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "agenda",
		Short: "Browse the calendar interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("agenda needs an interactive terminal; use `docket hearing list` instead")
			}

			program := tea.NewProgram(newAgendaModel(app, owner))
			_, err = program.Run()
			return err
		},
	}
}
