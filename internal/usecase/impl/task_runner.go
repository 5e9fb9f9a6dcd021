package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"

	"go.uber.org/fx"
)

const defaultTaskTimeout = 15 * time.Second

// TaskRunner executes side effects that the caller does not wait for.
// Tasks outlive the request context but are bounded by a timeout, and their
// outcome is only logged.
type TaskRunner struct {
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// TaskRunnerParams holds dependencies for TaskRunner, injected by Fx.
type TaskRunnerParams struct {
	fx.In

	Lc     fx.Lifecycle `optional:"true"`
	Config *config.Config
	Logger *slog.Logger
}

// NewTaskRunner builds a TaskRunner and drains pending tasks on shutdown.
func NewTaskRunner(params TaskRunnerParams) *TaskRunner {
	timeout := defaultTaskTimeout
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.NotificationTimeout > 0 {
		timeout = params.Config.Auth.NotificationTimeout
	}

	runner := &TaskRunner{timeout: timeout, logger: params.Logger}

	if params.Lc != nil {
		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				runner.WaitContext(ctx)

				return nil
			},
		})
	}

	return runner
}

// Dispatch runs fn in its own goroutine with a context detached from ctx's cancellation.
// Request-scoped values such as the logger and request ID stay available to fn.
func (r *TaskRunner) Dispatch(ctx context.Context, name string, fn func(ctx context.Context) error) {
	taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	logger := deliverycontext.GetLoggerOrDefault(ctx, r.logger)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Background task panicked", slog.String("task", name), slog.Any("panic", rec))
			}
		}()

		start := time.Now()
		if err := fn(taskCtx); err != nil {
			logger.Error("Background task failed", slog.String("task", name), slog.Any("error", err))

			return
		}

		logger.Debug("Background task completed", slog.String("task", name), slog.Duration("elapsed", time.Since(start)))
	}()
}

// Wait blocks until every dispatched task has returned.
func (r *TaskRunner) Wait() {
	r.wg.Wait()
}

// WaitContext blocks until every dispatched task has returned or ctx is done.
func (r *TaskRunner) WaitContext(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		r.logger.Warn("Shutdown reached before background tasks finished")
	}
}
