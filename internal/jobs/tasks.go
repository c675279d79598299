// Package jobs runs the invoice background tasks on asynq.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	QueueDefault = "default"
	// TaskSweepOverdue re-evaluates every open invoice and persists the ones that became overdue.
	TaskSweepOverdue = "invoices:sweep_overdue"
)

type Sweeper interface {
	SweepOverdue(ctx context.Context) (int, error)
}

func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TaskSweepOverdue, nil, asynq.Queue(QueueDefault), asynq.MaxRetry(3))
}

// HandleSweep returns the handler for TaskSweepOverdue.
func HandleSweep(s Sweeper, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := s.SweepOverdue(ctx)
		if err != nil {
			return fmt.Errorf("sweeping overdue invoices: %w", err)
		}

		logger.Info("overdue sweep finished", "updated", n)

		return nil
	}
}
