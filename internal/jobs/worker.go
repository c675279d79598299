package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Worker runs the asynq server and, when a cron spec is set, the scheduler that enqueues the sweep.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

type WorkerConfig struct {
	Redis     asynq.RedisConnOpt
	Logger    *slog.Logger
	Sweeper   Sweeper
	SweepCron string
}

func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Sweeper == nil {
		return nil, errors.New("worker: sweeper is required")
	}

	srv := asynq.NewServer(cfg.Redis, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{QueueDefault: 1},
		Logger:      &slogAdapter{cfg.Logger},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskSweepOverdue, HandleSweep(cfg.Sweeper, cfg.Logger))

	w := &Worker{server: srv, mux: mux, logger: cfg.Logger}

	if cfg.SweepCron != "" {
		w.scheduler = asynq.NewScheduler(cfg.Redis, &asynq.SchedulerOpts{Location: time.UTC})

		if _, err := w.scheduler.Register(cfg.SweepCron, NewSweepTask()); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
		defer w.scheduler.Shutdown()
	}

	if err := w.server.Start(w.mux); err != nil {
		return err
	}

	<-ctx.Done()
	w.server.Shutdown()

	return ctx.Err()
}

// Enqueue submits a one-off sweep.
func Enqueue(ctx context.Context, redis asynq.RedisConnOpt) (*asynq.TaskInfo, error) {
	client := asynq.NewClient(redis)
	defer client.Close()

	return client.EnqueueContext(ctx, NewSweepTask())
}

type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Debug(args ...any) { a.logger.Debug(sprint(args)) }
func (a *slogAdapter) Info(args ...any)  { a.logger.Info(sprint(args)) }
func (a *slogAdapter) Warn(args ...any)  { a.logger.Warn(sprint(args)) }
func (a *slogAdapter) Error(args ...any) { a.logger.Error(sprint(args)) }
func (a *slogAdapter) Fatal(args ...any) { a.logger.Error(sprint(args)) }

func sprint(args []any) string {
	return fmt.Sprint(args...)
}
