package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/runbook/internal/errors"
	"github.com/felixgeelhaar/runbook/internal/runbook"
)

func writeRunbook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// execute runs the CLI with the given args and returns combined output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flags are package-level; reset what tests touch.
	runDryRun = false
	runNoPreflight = false
	runTraceDir = ""
	graphFormat = "text"
	showFormat = "text"
	flagNoColor = true

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunExecutesTasksInDependencyOrder(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: ordered
tasks:
  - id: second
    depends_on: [first]
    run: "true"
  - id: first
    run: "true"
`)

	out, err := execute(t, "run", path)
	require.NoError(t, err)

	first := bytes.Index([]byte(out), []byte("✓ first"))
	second := bytes.Index([]byte(out), []byte("✓ second"))
	require.GreaterOrEqual(t, first, 0, "output: %s", out)
	require.GreaterOrEqual(t, second, 0, "output: %s", out)
	assert.Less(t, first, second, "first must complete before second")
	assert.Contains(t, out, "Run completed: 2 task(s)")
}

func TestRunFailingTask(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: failing
tasks:
  - id: ok
    run: "true"
  - id: bad
    depends_on: [ok]
    run: "exit 7"
  - id: never
    depends_on: [bad]
    run: "true"
`)

	out, err := execute(t, "run", path)
	require.Error(t, err)

	assert.True(t, errors.IsTaskFailed(err))
	assert.Contains(t, out, "✓ ok")
	assert.Contains(t, out, "✗ bad")
	assert.NotContains(t, out, "never")
}

func TestRunMissingDependencyCaughtByPreflight(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: broken
tasks:
  - id: stuck
    depends_on: [ghost]
    run: "true"
`)

	_, err := execute(t, "run", path)
	require.Error(t, err)

	var rbErr *errors.RunbookError
	require.True(t, errors.As(err, &rbErr))
	assert.Equal(t, errors.ErrCodeRunbookDependency, rbErr.Code)
}

func TestRunMissingDependencyWithoutPreflight(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: broken
tasks:
  - id: stuck
    depends_on: [ghost]
    run: "true"
`)

	_, err := execute(t, "run", "--no-preflight", path)
	require.Error(t, err)

	// Without preflight the executor's lazy check reports it instead.
	assert.True(t, errors.IsDependencyError(err))
}

func TestRunDryRun(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: dry
tasks:
  - id: danger
    run: "rm -rf /tmp/nothing"
`)

	out, err := execute(t, "run", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "would run: rm -rf /tmp/nothing")
}

func TestRunWritesTrace(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: traced
tasks:
  - id: solo
    run: "true"
`)
	traceDir := t.TempDir()

	out, err := execute(t, "run", "--trace-dir", traceDir, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Trace written to")

	entries, err := os.ReadDir(traceDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "run_")
}

func TestRunMissingFile(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var rbErr *errors.RunbookError
	require.True(t, errors.As(err, &rbErr))
	assert.Equal(t, errors.ErrCodeRunbookNotFound, rbErr.Code)
}

func TestValidateOK(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: fine
tasks:
  - id: a
    run: "true"
  - id: b
    depends_on: [a]
    run: "true"
`)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 task(s), no issues found")
}

func TestValidateCycle(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: cyclic
tasks:
  - id: a
    depends_on: [b]
    run: "true"
  - id: b
    depends_on: [a]
    run: "true"
`)

	_, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestGraphText(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: pipeline
tasks:
  - id: root
    run: "true"
  - id: left
    depends_on: [root]
    run: "true"
  - id: right
    depends_on: [root]
    run: "true"
  - id: join
    depends_on: [left, right]
    run: "true"
`)

	out, err := execute(t, "graph", path)
	require.NoError(t, err)

	assert.Contains(t, out, "join <- left, right")
	assert.Contains(t, out, "1: root")
	assert.Contains(t, out, "2: left, right")
	assert.Contains(t, out, "3: join")
}

func TestGraphJSON(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: pipeline
tasks:
  - id: a
    run: "true"
`)

	out, err := execute(t, "graph", "-o", "json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"waves"`)
}

func TestShow(t *testing.T) {
	path := writeRunbook(t, `version: 1
name: demo
tasks:
  - id: a
    name: First step
    run: "true"
`)

	out, err := execute(t, "show", path)
	require.NoError(t, err)

	assert.Contains(t, out, "demo (version 1)")
	assert.Contains(t, out, "fingerprint:")
	assert.Contains(t, out, "a (First step)")
}

func TestWavesMatchExecutorReadiness(t *testing.T) {
	rb := &runbook.Runbook{Tasks: []runbook.Step{
		{ID: "c", Run: "true", DependsOn: []string{"a", "b"}},
		{ID: "a", Run: "true"},
		{ID: "b", Run: "true", DependsOn: []string{"a"}},
	}}
	require.NoError(t, rb.Validate())

	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, waves(rb))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "runbook")
}
