package main

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/invoicer/internal/app"
	"github.com/MrJamesThe3rd/invoicer/internal/config"
	"github.com/MrJamesThe3rd/invoicer/internal/database"
)

// env is loaded once before any subcommand runs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
}

func (e *env) open() (*sql.DB, error) {
	if e.db != nil {
		return e.db, nil
	}

	db, err := database.New(e.cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	e.db = db

	return db, nil
}

func (e *env) app() (*app.App, error) {
	db, err := e.open()
	if err != nil {
		return nil, err
	}

	return app.New(db, e.logger), nil
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Administer the invoice ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			e.cfg = cfg
			e.logger = cfg.NewLogger(os.Stderr)
			slog.SetDefault(e.logger)

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.db != nil {
				_ = e.db.Close()
			}
		},
	}

	root.AddCommand(
		newMigrateCmd(e),
		newSetupCmd(e),
		newSweepCmd(e),
		newReportCmd(e),
		newRemindersCmd(e),
		newTokenCmd(e),
	)

	return root
}
