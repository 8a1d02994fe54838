package cli

import (
	"context"
	"fmt"

	"github.com/avikbasu/docket/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	var hearingID string
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			entries, err := app.Activity.ListRecent(ctx, limit)
			if hearingID != "" {
				entries, err = app.Activity.ListByEntity(ctx, "hearing", hearingID)
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No activity recorded.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatActivityList(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&hearingID, "hearing", "", "Limit to one hearing")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")

	return cmd
}
