package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avikbasu/docket/internal/cli"
	"github.com/avikbasu/docket/internal/db"
	"github.com/avikbasu/docket/internal/repository"
	"github.com/avikbasu/docket/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.docket/docket.db
	dbPath := os.Getenv("DOCKET_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".docket", "docket.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	caseRepo := repository.NewSQLiteCaseRepo(database)
	hearingRepo := repository.NewSQLiteHearingRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)

	// Unit of work for the check-then-write scheduling transaction.
	uow := db.NewSQLiteUnitOfWork(database)

	var hearingOpts []service.HearingOption
	if os.Getenv("DOCKET_LOG") != "" {
		hearingOpts = append(hearingOpts, service.WithObserver(service.NewLogUseCaseObserver(os.Stderr)))
	}

	app := &cli.App{
		Hearings: service.NewHearingService(hearingRepo, caseRepo, activityRepo, uow, hearingOpts...),
		Cases:    service.NewCaseService(caseRepo, hearingRepo),
		Activity: service.NewActivityService(activityRepo),
	}

	// Detect interactive terminal for prompt-driven flows.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
