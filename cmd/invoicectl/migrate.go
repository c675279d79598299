package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/invoicer/internal/database"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}

			n, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)

			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert the latest migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}

			return database.Rollback(cmd.Context(), db)
		},
	}, &cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}

			v, err := database.Version(cmd.Context(), db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)

			return nil
		},
	})

	return cmd
}
