package runbook

import (
	"github.com/felixgeelhaar/runbook/internal/task"
)

// Step is one task entry in a runbook file
type Step struct {
	// ID is the unique task id within the runbook
	ID string `yaml:"id" json:"id"`

	// Name is an optional human-readable label
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// DependsOn lists step ids that must complete before this step runs
	DependsOn []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`

	// Run is the shell command the step executes
	Run string `yaml:"run" json:"run"`

	// Env holds extra environment variables for the command
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`

	// Workdir is the working directory for the command, relative to the
	// runbook file unless absolute
	Workdir string `yaml:"workdir,omitempty" json:"workdir,omitempty"`
}

// DisplayName returns the step's label, falling back to its id
func (s Step) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Runbook is a parsed runbook file: a named set of steps with dependencies
type Runbook struct {
	// Version is the runbook schema version
	Version int `yaml:"version" json:"version"`

	// Name identifies the runbook
	Name string `yaml:"name" json:"name"`

	// Tasks lists the steps in file order
	Tasks []Step `yaml:"tasks" json:"tasks"`
}

// ActionFactory builds the executable action for a step. It decouples the
// runbook format from how steps are actually run (shell, dry-run, test stub).
type ActionFactory func(step Step) task.Action

// ToRegistry builds a task registry from the runbook in file order
func (rb *Runbook) ToRegistry(factory ActionFactory) (*task.Registry, error) {
	reg := task.NewRegistry()

	for _, step := range rb.Tasks {
		t := task.Task{
			ID:        step.ID,
			Name:      step.DisplayName(),
			DependsOn: step.DependsOn,
			Action:    factory(step),
		}
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
