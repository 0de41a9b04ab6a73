package runbook

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"
)

// Canonicalize returns a canonical JSON representation of the runbook with
// stable key ordering for consistent hashing
func (rb *Runbook) Canonicalize() ([]byte, error) {
	tasks := make([]map[string]interface{}, len(rb.Tasks))
	for i, step := range rb.Tasks {
		stepMap := map[string]interface{}{
			"id":  step.ID,
			"run": step.Run,
		}
		if step.Name != "" {
			stepMap["name"] = step.Name
		}
		if len(step.DependsOn) > 0 {
			stepMap["depends_on"] = step.DependsOn
		}
		if len(step.Env) > 0 {
			stepMap["env"] = step.Env
		}
		if step.Workdir != "" {
			stepMap["workdir"] = step.Workdir
		}
		tasks[i] = stepMap
	}

	data := map[string]interface{}{
		"version": rb.Version,
		"name":    rb.Name,
		"tasks":   tasks,
	}

	return json.Marshal(sortKeys(data))
}

// Fingerprint computes the blake3 hash of the canonicalized runbook.
// It identifies the exact runbook definition in trace metadata and output.
func (rb *Runbook) Fingerprint() (string, error) {
	canonical, err := rb.Canonicalize()
	if err != nil {
		return "", fmt.Errorf("canonicalize runbook: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash runbook: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

// sortKeys recursively sorts map keys for stable JSON output
func sortKeys(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sorted := make(map[string]interface{}, len(val))
		for _, k := range keys {
			sorted[k] = sortKeys(val[k])
		}
		return sorted

	case []interface{}:
		for i, item := range val {
			val[i] = sortKeys(item)
		}
		return val

	case []map[string]interface{}:
		for i, item := range val {
			val[i] = sortKeys(item).(map[string]interface{})
		}
		return val

	default:
		return v
	}
}
