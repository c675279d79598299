package main

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/invoicer/internal/jobs"
)

func newSweepCmd(e *env) *cobra.Command {
	var enqueue bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark past-due invoices as overdue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if enqueue {
				info, err := jobs.Enqueue(cmd.Context(), asynq.RedisClientOpt{Addr: e.cfg.Redis.Addr})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s on %s\n", info.ID, info.Queue)

				return nil
			}

			a, err := e.app()
			if err != nil {
				return err
			}

			n, err := a.Invoices.SweepOverdue(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d invoice(s) updated\n", n)

			return nil
		},
	}

	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "hand the sweep to the worker instead of running it here")

	return cmd
}
