package runbook

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/runbook/internal/errors"
)

// SupportedVersion is the runbook schema version this build understands
const SupportedVersion = 1

// Load reads and parses a runbook from a YAML file
func Load(path string) (*Runbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewRunbookNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeRunbookNotFound,
			fmt.Sprintf("read runbook file: %s", path), err)
	}

	rb, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return rb, nil
}

// Parse parses runbook YAML and checks its structure.
//
// Structural checks happen here (schema version, step ids, commands,
// duplicates). Dependency references and cycles are checked separately by
// Validate: the executor detects both lazily anyway, so reference validation
// is advisory preflight, not a parse concern.
func Parse(data []byte) (*Runbook, error) {
	var rb Runbook
	if err := yaml.Unmarshal(data, &rb); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRunbookUnmarshal, "parse runbook YAML", err).
			WithSuggestion("Check the file for YAML syntax errors")
	}

	if rb.Version > SupportedVersion {
		return nil, errors.New(errors.ErrCodeRunbookInvalid,
			fmt.Sprintf("unsupported runbook version %d (this build supports up to %d)",
				rb.Version, SupportedVersion)).
			WithSuggestion("Upgrade runbook or lower the version field")
	}

	seen := make(map[string]bool, len(rb.Tasks))
	for i, step := range rb.Tasks {
		if strings.TrimSpace(step.ID) == "" {
			return nil, errors.New(errors.ErrCodeRunbookInvalid,
				fmt.Sprintf("task at index %d has no id", i))
		}
		if strings.TrimSpace(step.Run) == "" {
			return nil, errors.New(errors.ErrCodeRunbookInvalid,
				fmt.Sprintf("task %q has no run command", step.ID))
		}
		if seen[step.ID] {
			err := errors.New(errors.ErrCodeRunbookDuplicate,
				fmt.Sprintf("duplicate task id %q at index %d", step.ID, i)).
				WithSuggestion("Give every task a unique id")
			err.TaskID = step.ID
			return nil, err
		}
		seen[step.ID] = true
	}

	return &rb, nil
}
