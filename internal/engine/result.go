package engine

import "time"

// Status is the terminal outcome of a run
type Status string

const (
	// StatusAllCompleted means every registered task completed successfully
	StatusAllCompleted Status = "all_completed"

	// StatusTaskFailed means a task's action failed and the run was aborted
	StatusTaskFailed Status = "task_failed"

	// StatusDependencyError means a sweep made no progress: the remaining
	// tasks wait on a missing reference or form a cycle
	StatusDependencyError Status = "dependency_error"

	// StatusCancelled means the run's context was cancelled between tasks
	StatusCancelled Status = "cancelled"
)

// Result describes the outcome of one executor run.
//
// On an aborted run the completion data retains whatever finished before the
// abort; completed tasks are never rolled back.
type Result struct {
	// RunID uniquely identifies this run
	RunID string `json:"run_id"`

	// Status is the terminal outcome
	Status Status `json:"status"`

	// CompletionOrder lists task ids in the order they completed
	CompletionOrder []string `json:"completion_order"`

	// Durations holds per-task wall-clock execution time
	Durations map[string]time.Duration `json:"durations"`

	// FailedTask is the id of the task that failed, for StatusTaskFailed
	FailedTask string `json:"failed_task,omitempty"`

	// Unsatisfied lists the stuck task ids, for StatusDependencyError
	Unsatisfied []string `json:"unsatisfied,omitempty"`

	// StartTime and EndTime bound the run
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Completed reports whether the given task finished successfully during the run
func (r *Result) Completed(id string) bool {
	for _, done := range r.CompletionOrder {
		if done == id {
			return true
		}
	}
	return false
}

// Duration returns the total wall-clock time of the run
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
