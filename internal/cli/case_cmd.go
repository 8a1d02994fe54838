package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avikbasu/docket/internal/cli/formatter"
	"github.com/avikbasu/docket/internal/domain"
	"github.com/spf13/cobra"
)

// resolveCase looks a case up by case number (case-insensitive), full UUID,
// or unambiguous UUID prefix.
func resolveCase(ctx context.Context, app *App, owner, input string) (*domain.Case, error) {
	if input == "" {
		return nil, fmt.Errorf("case reference is required")
	}

	if c, err := app.Cases.GetByNumber(ctx, owner, strings.ToUpper(input)); err == nil {
		return c, nil
	}

	cases, err := app.Cases.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	for _, c := range cases {
		if c.ID == input {
			return c, nil
		}
	}

	var matches []*domain.Case
	for _, c := range cases {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("case not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("case reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newCaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Manage cases",
	}

	cmd.AddCommand(
		newCaseAddCmd(app),
		newCaseListCmd(app),
		newCaseInspectCmd(app),
		newCaseUpdateCmd(app),
		newCaseRemoveCmd(app),
	)

	return cmd
}

func newCaseAddCmd(app *App) *cobra.Command {
	var number, client string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new case",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}

			c := &domain.Case{
				Owner:      owner,
				CaseNumber: strings.ToUpper(number),
				ClientName: client,
				Status:     domain.CaseOpen,
			}
			if err := app.Cases.Create(context.Background(), c); err != nil {
				return err
			}

			fmt.Printf("Created case %s for %s\n", c.CaseNumber, c.ClientName)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Case number (e.g. CRL-2025-0142)")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func newCaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cases with their next hearing",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}

			cases, err := app.Cases.ListByOwner(context.Background(), owner)
			if err != nil {
				return err
			}
			if len(cases) == 0 {
				fmt.Println("No cases found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatCaseList(cases))
			return nil
		},
	}
}

func newCaseInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect CASE",
		Short: "Show a case and its hearings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()

			c, err := resolveCase(ctx, app, owner, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatCaseList([]*domain.Case{c}))

			hearings, err := app.Hearings.ListByCase(ctx, c.ID, owner)
			if err != nil {
				return err
			}
			if len(hearings) == 0 {
				fmt.Println(formatter.Dim("No hearings scheduled."))
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatHearingList(hearings))
			return nil
		},
	}
}

func newCaseUpdateCmd(app *App) *cobra.Command {
	var client, status string

	cmd := &cobra.Command{
		Use:   "update CASE",
		Short: "Update a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()

			c, err := resolveCase(ctx, app, owner, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("client") {
				c.ClientName = client
			}
			if cmd.Flags().Changed("status") {
				c.Status = domain.CaseStatus(status)
			}

			if err := app.Cases.Update(ctx, c); err != nil {
				return err
			}

			fmt.Printf("Updated case %s\n", c.CaseNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&status, "status", "", "Case status (open|closed|archived)")

	return cmd
}

func newCaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CASE",
		Short: "Remove a case and all its hearings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()

			c, err := resolveCase(ctx, app, owner, args[0])
			if err != nil {
				return err
			}
			if err := app.Cases.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Printf("Removed case %s\n", c.CaseNumber)
			return nil
		},
	}
}
