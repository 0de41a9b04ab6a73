package runbook

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/runbook/internal/errors"
)

// Validate statically checks dependency references and cycles.
//
// The executor detects both conditions lazily at run time with a single
// no-progress check; Validate exists for fast feedback before a run starts
// and pinpoints the exact broken reference or cycle path, which the lazy
// check cannot.
func (rb *Runbook) Validate() error {
	ids := make(map[string]bool, len(rb.Tasks))
	for _, step := range rb.Tasks {
		ids[step.ID] = true
	}

	for _, step := range rb.Tasks {
		for _, dep := range step.DependsOn {
			if !ids[dep] {
				err := errors.New(errors.ErrCodeRunbookDependency,
					fmt.Sprintf("task %q depends on %q, which is not defined", step.ID, dep)).
					WithSuggestion("Add the missing task or fix the depends_on reference")
				err.TaskID = step.ID
				return err
			}
		}
	}

	return rb.checkCircularDependencies()
}

// checkCircularDependencies detects cycles in the dependency graph via DFS
func (rb *Runbook) checkCircularDependencies() error {
	graph := make(map[string][]string, len(rb.Tasks))
	for _, step := range rb.Tasks {
		graph[step.ID] = step.DependsOn
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var hasCycle func(id string, path []string) error
	hasCycle = func(id string, path []string) error {
		visited[id] = true
		recStack[id] = true
		path = append(path, id)

		for _, dep := range graph[id] {
			if !visited[dep] {
				if err := hasCycle(dep, path); err != nil {
					return err
				}
			} else if recStack[dep] {
				cyclePath := append(path, dep)
				err := errors.New(errors.ErrCodeRunbookDependency,
					fmt.Sprintf("circular dependency: %s", strings.Join(cyclePath, " -> "))).
					WithSuggestion("Break the cycle by removing one of the depends_on edges")
				err.TaskID = id
				return err
			}
		}

		recStack[id] = false
		return nil
	}

	for _, step := range rb.Tasks {
		if !visited[step.ID] {
			if err := hasCycle(step.ID, nil); err != nil {
				return err
			}
		}
	}

	return nil
}
