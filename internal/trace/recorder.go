package trace

import (
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/runbook/internal/engine"
)

// Recorder is an engine.Observer that turns run lifecycle notifications into
// trace events.
type Recorder struct {
	logger *Logger

	mu      sync.Mutex
	started map[string]time.Time
}

// NewRecorder creates a recorder emitting to the given trace logger
func NewRecorder(logger *Logger) *Recorder {
	return &Recorder{
		logger:  logger,
		started: make(map[string]time.Time),
	}
}

// RunStarted records the start of a run. The executor has no run-start
// notification, so the CLI calls this right before handing off to it.
func (r *Recorder) RunStarted(name string, taskCount int, fingerprint string) {
	event := NewEvent(EventTypeRunStart, r.logger.RunID(), fmt.Sprintf("Run started: %s", name)).
		WithData("runbook", name).
		WithData("tasks", taskCount)
	if fingerprint != "" {
		event.WithData("fingerprint", fingerprint)
	}
	r.log(event)
}

// TaskStarted implements engine.Observer
func (r *Recorder) TaskStarted(id string) {
	r.mu.Lock()
	r.started[id] = time.Now()
	r.mu.Unlock()

	r.log(NewEvent(EventTypeTaskStart, r.logger.RunID(), fmt.Sprintf("Task started: %s", id)).
		WithTaskID(id))
}

// TaskSucceeded implements engine.Observer
func (r *Recorder) TaskSucceeded(id string) {
	event := NewEvent(EventTypeTaskComplete, r.logger.RunID(), fmt.Sprintf("Task completed: %s", id)).
		WithTaskID(id)

	r.mu.Lock()
	if started, ok := r.started[id]; ok {
		event.WithDuration(time.Since(started))
	}
	r.mu.Unlock()

	r.log(event)
}

// TaskFailed implements engine.Observer
func (r *Recorder) TaskFailed(id string, err error) {
	event := NewEvent(EventTypeTaskFail, r.logger.RunID(), fmt.Sprintf("Task failed: %s", id)).
		WithTaskID(id).
		WithError(err)

	r.mu.Lock()
	if started, ok := r.started[id]; ok {
		event.WithDuration(time.Since(started))
	}
	r.mu.Unlock()

	r.log(event)
}

// RunCompleted implements engine.Observer
func (r *Recorder) RunCompleted(result *engine.Result) {
	r.log(NewEvent(EventTypeRunComplete, r.logger.RunID(), "Run completed").
		WithData("tasks_completed", len(result.CompletionOrder)).
		WithDuration(result.Duration()))
}

// RunAborted implements engine.Observer
func (r *Recorder) RunAborted(result *engine.Result, err error) {
	event := NewEvent(EventTypeRunAbort, r.logger.RunID(), "Run aborted").
		WithData("status", string(result.Status)).
		WithData("tasks_completed", len(result.CompletionOrder)).
		WithError(err)

	if result.FailedTask != "" {
		event.WithTaskID(result.FailedTask)
	}
	if len(result.Unsatisfied) > 0 {
		event.WithData("unsatisfied", result.Unsatisfied)
	}

	r.log(event)
}

func (r *Recorder) log(event *Event) {
	// Trace failures never fail the run itself.
	_ = r.logger.Log(event)
}

var _ engine.Observer = (*Recorder)(nil)
