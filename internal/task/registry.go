package task

import (
	"github.com/felixgeelhaar/runbook/internal/errors"
)

// Registry holds the declared set of tasks keyed by id.
//
// Insertion order is preserved: the executor sweeps tasks in the order they
// were registered, which makes run output deterministic. A Registry is
// populated entirely before a run starts and is read-only during the run,
// so it carries no locking.
type Registry struct {
	tasks map[string]Task
	ids   []string
}

// NewRegistry creates an empty task registry
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]Task),
	}
}

// Register adds a task to the registry.
//
// It fails with a TASK-001 error if the id is already taken, leaving the
// registry unchanged. Dependency targets are not validated here; the
// executor checks them lazily at run time.
func (r *Registry) Register(t Task) error {
	if _, exists := r.tasks[t.ID]; exists {
		return errors.NewDuplicateTaskError(t.ID)
	}

	r.tasks[t.ID] = t
	r.ids = append(r.ids, t.ID)
	return nil
}

// Lookup returns the task for a known id
func (r *Registry) Lookup(id string) (Task, bool) {
	t, ok := r.tasks[id]
	return t, ok
}

// IDs returns all registered task ids in registration order
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.ids))
	copy(ids, r.ids)
	return ids
}

// Len returns the number of registered tasks
func (r *Registry) Len() int {
	return len(r.ids)
}
