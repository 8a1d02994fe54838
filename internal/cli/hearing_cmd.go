package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avikbasu/docket/internal/cli/formatter"
	"github.com/avikbasu/docket/internal/contract"
	"github.com/avikbasu/docket/internal/domain"
	"github.com/spf13/cobra"
)

func newHearingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hearing",
		Short: "Manage hearings",
	}

	cmd.AddCommand(
		newHearingScheduleCmd(app),
		newHearingUpdateCmd(app),
		newHearingListCmd(app),
		newHearingInspectCmd(app),
		newHearingStatusCmd(app, "complete", domain.HearingCompleted),
		newHearingStatusCmd(app, "adjourn", domain.HearingAdjourned),
		newHearingStatusCmd(app, "cancel", domain.HearingCancelled),
		newHearingRemoveCmd(app),
	)

	return cmd
}

// hearingFlags is the shared flag set for schedule and update.
type hearingFlags struct {
	date, clock, tz string
	duration        int
	resources       []string
	followUpDate    string
	followUpTime    string
	overrideReason  string
}

func (f *hearingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Hearing date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.clock, "time", "", "Local time (HH:MM or H:MM AM/PM)")
	cmd.Flags().StringVar(&f.tz, "tz", "", "IANA timezone (default UTC)")
	cmd.Flags().IntVar(&f.duration, "duration", 0, "Duration in minutes (default 60)")
	cmd.Flags().StringArrayVar(&f.resources, "resource", nil, "Resource claim (key=value, repeatable)")
	cmd.Flags().StringVar(&f.followUpDate, "follow-up-date", "", "Next hearing date noted at this hearing (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.followUpTime, "follow-up-time", "", "Next hearing local time")
	cmd.Flags().StringVar(&f.overrideReason, "override-reason", "", "Schedule despite conflicts, recording this reason")
}

func (f *hearingFlags) apply(req *contract.ScheduleRequest) error {
	req.HearingDate = f.date
	req.HearingTime = f.clock
	if f.tz != "" {
		req.Timezone = f.tz
	}
	if f.duration != 0 {
		req.DurationMin = f.duration
	}
	req.NextHearingDate = f.followUpDate
	req.NextHearingTime = f.followUpTime

	if len(f.resources) > 0 {
		scope := make(map[string]string, len(f.resources))
		for _, r := range f.resources {
			parts := strings.SplitN(r, "=", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid --resource format %q, expected key=value", r)
			}
			scope[parts[0]] = parts[1]
		}
		req.ResourceScope = scope
	}

	if f.overrideReason != "" {
		req.Override = &contract.OverrideRequest{Reason: f.overrideReason}
	}
	return nil
}

// submitSchedule runs the schedule request, rendering conflicts and offering
// an interactive override when the engine rejects with CONFLICT.
func submitSchedule(app *App, req contract.ScheduleRequest) error {
	ctx := context.Background()

	h, err := app.Hearings.Schedule(ctx, req)
	if err == nil {
		printScheduled(h)
		return nil
	}

	var schedErr *contract.ScheduleError
	if !errors.As(err, &schedErr) || schedErr.Code != contract.ErrConflict {
		return err
	}

	fmt.Println(formatter.StyleYellow.Render("Conflicts detected:"))
	fmt.Printf("%s\n", formatter.FormatConflicts(schedErr.Conflicts))

	if !app.interactive() {
		return fmt.Errorf("%d conflict(s); re-run with --override-reason to schedule anyway", len(schedErr.Conflicts))
	}

	reason, ok, formErr := promptOverrideReason(len(schedErr.Conflicts))
	if formErr != nil {
		return formErr
	}
	if !ok {
		fmt.Println(formatter.Dim("Not scheduled."))
		return nil
	}

	req.Override = &contract.OverrideRequest{Reason: reason}
	h, err = app.Hearings.Schedule(ctx, req)
	if err != nil {
		return err
	}
	printScheduled(h)
	return nil
}

func printScheduled(h *domain.Hearing) {
	mark := formatter.StyleGreen.Render("✔")
	fmt.Printf("%s %s %s\n", mark, formatter.Bold(formatter.FormatLocalSlot(h)), formatter.Dim(h.ID))
	if h.Override != nil && h.Override.Allowed {
		fmt.Printf("  %s\n", formatter.StyleYellow.Render(
			fmt.Sprintf("override recorded past %d hearing(s)", len(h.Override.ConflictingHearings))))
	}
}

func newHearingScheduleCmd(app *App) *cobra.Command {
	var caseRef string
	var flags hearingFlags

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a hearing",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}

			c, err := resolveCase(context.Background(), app, owner, caseRef)
			if err != nil {
				return err
			}

			req := contract.NewScheduleRequest(c.ID, owner)
			if err := flags.apply(&req); err != nil {
				return err
			}
			return submitSchedule(app, req)
		},
	}

	cmd.Flags().StringVar(&caseRef, "case", "", "Case number or ID")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("case")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newHearingUpdateCmd(app *App) *cobra.Command {
	var flags hearingFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Reschedule or amend a hearing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}

			req := contract.ScheduleRequest{HearingID: args[0], Owner: owner}
			if err := flags.apply(&req); err != nil {
				return err
			}
			return submitSchedule(app, req)
		},
	}

	flags.register(cmd)
	return cmd
}

func newHearingListCmd(app *App) *cobra.Command {
	var caseRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hearings",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()

			var hearings []*domain.Hearing
			if caseRef != "" {
				c, err := resolveCase(ctx, app, owner, caseRef)
				if err != nil {
					return err
				}
				hearings, err = app.Hearings.ListByCase(ctx, c.ID, owner)
				if err != nil {
					return err
				}
			} else {
				hearings, err = app.Hearings.ListByOwner(ctx, owner)
				if err != nil {
					return err
				}
			}

			if len(hearings) == 0 {
				fmt.Println("No hearings found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatHearingList(hearings))
			return nil
		},
	}

	cmd.Flags().StringVar(&caseRef, "case", "", "Limit to one case (number or ID)")
	return cmd
}

func newHearingInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show hearing details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			h, err := app.Hearings.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			caseNumber := h.CaseID
			if c, err := app.Cases.GetByID(ctx, h.CaseID); err == nil {
				caseNumber = c.CaseNumber
			}

			fmt.Printf("%s\n", formatter.FormatHearingInspect(h, caseNumber))
			return nil
		},
	}
}

func newHearingStatusCmd(app *App, verb string, status domain.HearingStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " ID",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " a scheduled hearing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}

			h, err := app.Hearings.SetStatus(context.Background(), args[0], owner, status)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", formatter.StatusBadge(h.Status), formatter.FormatLocalSlot(h))
			return nil
		},
	}
}

func newHearingRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a hearing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}

			if err := app.Hearings.Delete(context.Background(), args[0], owner); err != nil {
				return err
			}
			fmt.Printf("Removed hearing %s\n", args[0])
			return nil
		},
	}
}
