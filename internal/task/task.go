package task

import "context"

// Action is the unit of work a task carries. The executor invokes it exactly
// once per run and only after all of the task's dependencies have completed.
//
// An Action may do anything internally (spawn goroutines, call out to other
// processes); the executor's contract is only that Run eventually returns
// nil on success or an error on failure.
type Action interface {
	Run(ctx context.Context) error
}

// ActionFunc adapts a plain function to the Action interface
type ActionFunc func(ctx context.Context) error

// Run implements Action
func (f ActionFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Task is a uniquely identified unit of work with zero or more dependencies.
//
// Tasks are registered before a run starts and are immutable thereafter.
// DependsOn ids do not have to be registered at the time the task is added;
// the executor resolves them lazily at run time.
type Task struct {
	// ID is the unique identifier of the task, the graph's node key
	ID string

	// Name is a human-readable label used for logging only
	Name string

	// DependsOn lists the ids of tasks that must complete before this one starts
	DependsOn []string

	// Action is the caller-supplied work the executor invokes
	Action Action
}
