package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/runbook/internal/errors"
	"github.com/felixgeelhaar/runbook/internal/log"
	"github.com/felixgeelhaar/runbook/internal/task"
)

// Executor drives a registry of tasks to completion in dependency order.
//
// Scheduling is a fixed-point sweep over the pending set: on every pass the
// executor runs, one at a time and in registration order, each pending task
// whose dependencies are all completed. A task's dependency list is checked
// against the live completed set on every sweep rather than via an upfront
// topological sort, so the same check catches ordinary sequencing, references
// to ids that were never registered, and cycles. Sweeping is O(n²) in the
// worst case, which is fine for workflow-sized graphs.
//
// Execution is strictly sequential; the executor waits for one action to
// finish before evaluating the next. Concurrency inside an action is the
// action's own business.
type Executor struct {
	// Observer receives lifecycle notifications; nil means no notifications
	Observer Observer

	// Logger is used for per-task debug logging; nil falls back to the default
	Logger *log.Logger

	// RunID identifies the run; empty means a fresh uuid per Run call
	RunID string
}

// New creates an executor with no observer and the default logger
func New() *Executor {
	return &Executor{}
}

// Run executes every task in the registry in dependency order.
//
// It returns a Result describing the terminal outcome. The error is nil only
// when every registered task completed; otherwise it carries either the failed
// task's error (EXEC-001) or a dependency-resolution failure (EXEC-002). An
// empty registry succeeds immediately. Run never rolls back completed tasks.
func (e *Executor) Run(ctx context.Context, reg *task.Registry) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := e.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	observer := e.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	runID := e.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	result := &Result{
		RunID:     runID,
		Durations: make(map[string]time.Duration, reg.Len()),
		StartTime: time.Now(),
	}

	logger.Debug("run starting", "run_id", result.RunID, "tasks", reg.Len())

	ids := reg.IDs()
	completed := make(map[string]struct{}, len(ids))
	pending := len(ids)

	for pending > 0 {
		progress := false

		for _, id := range ids {
			if _, done := completed[id]; done {
				continue
			}

			if err := ctx.Err(); err != nil {
				return e.abort(logger, observer, result, StatusCancelled,
					errors.Wrap(errors.ErrCodeExecCancelled, "run cancelled", err))
			}

			t, _ := reg.Lookup(id)
			if !ready(t, completed) {
				continue
			}

			logger.Debug("task starting", "run_id", result.RunID, "task_id", id, "name", t.Name)
			observer.TaskStarted(id)

			started := time.Now()
			err := t.Action.Run(ctx)
			result.Durations[id] = time.Since(started)

			if err != nil {
				observer.TaskFailed(id, err)
				result.FailedTask = id
				return e.abort(logger, observer, result, StatusTaskFailed,
					errors.NewTaskFailedError(id, err))
			}

			completed[id] = struct{}{}
			result.CompletionOrder = append(result.CompletionOrder, id)
			pending--
			progress = true

			logger.Debug("task completed", "run_id", result.RunID, "task_id", id,
				"duration", result.Durations[id])
			observer.TaskSucceeded(id)
		}

		if !progress {
			stuck := make([]string, 0, pending)
			for _, id := range ids {
				if _, done := completed[id]; !done {
					stuck = append(stuck, id)
				}
			}
			depErr := errors.NewDependencyError(stuck)
			result.Unsatisfied = depErr.UnsatisfiedIDs
			return e.abort(logger, observer, result, StatusDependencyError, depErr)
		}
	}

	result.Status = StatusAllCompleted
	result.EndTime = time.Now()

	logger.Info("run completed", "run_id", result.RunID,
		"tasks", len(result.CompletionOrder), "duration", result.Duration())
	observer.RunCompleted(result)

	return result, nil
}

func (e *Executor) abort(logger *log.Logger, observer Observer, result *Result, status Status, err error) (*Result, error) {
	result.Status = status
	result.EndTime = time.Now()

	logger.WithError(err).Error("run aborted", "run_id", result.RunID)
	observer.RunAborted(result, err)

	return result, err
}

// ready reports whether every dependency of t is in the completed set
func ready(t task.Task, completed map[string]struct{}) bool {
	for _, dep := range t.DependsOn {
		if _, done := completed[dep]; !done {
			return false
		}
	}
	return true
}
