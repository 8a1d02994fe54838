package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avikbasu/docket/internal/cli/formatter"
	"github.com/avikbasu/docket/internal/contract"
	"github.com/avikbasu/docket/internal/schedule"
	"github.com/spf13/cobra"
)

func newConflictsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Probe the calendar for conflicts",
	}
	cmd.AddCommand(newConflictsCheckCmd(app))
	return cmd
}

func newConflictsCheckCmd(app *App) *cobra.Command {
	var date, clock, tz, exclude string
	var duration int
	var resources []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a proposed slot without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}

			start, end, err := schedule.ResolveWindow(date, clock, tz, duration)
			if err != nil {
				return err
			}

			var scope map[string]string
			if len(resources) > 0 {
				scope = make(map[string]string, len(resources))
				for _, r := range resources {
					parts := strings.SplitN(r, "=", 2)
					if len(parts) != 2 {
						return fmt.Errorf("invalid --resource format %q, expected key=value", r)
					}
					scope[parts[0]] = parts[1]
				}
			}

			resp, err := app.Hearings.CheckConflict(context.Background(), contract.CheckConflictRequest{
				Owner:            owner,
				StartAt:          start,
				EndAt:            end,
				ResourceScope:    scope,
				ExcludeHearingID: exclude,
			})
			if err != nil {
				return err
			}

			if !resp.HasConflict {
				fmt.Printf("%s %s is free\n",
					formatter.StyleGreen.Render("✔"),
					formatter.Bold(fmt.Sprintf("%s–%s", formatter.FormatInstant(start), formatter.FormatInstant(end))))
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatConflicts(resp.Conflicts))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&clock, "time", "", "Local time (HH:MM or H:MM AM/PM)")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "IANA timezone")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (default 60)")
	cmd.Flags().StringArrayVar(&resources, "resource", nil, "Resource claim (key=value, repeatable)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Hearing ID to ignore (when probing a move)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}
