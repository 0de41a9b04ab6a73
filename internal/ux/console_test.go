package ux

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/runbook/internal/engine"
)

func TestConsoleTaskEvents(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, PlainStyles())

	console.TaskStarted("build")
	console.TaskSucceeded("build")
	console.TaskFailed("deploy", fmt.Errorf("exit status 1"))

	out := buf.String()
	assert.Contains(t, out, "→ build")
	assert.Contains(t, out, "✓ build")
	assert.Contains(t, out, "✗ deploy: exit status 1")
}

func TestConsoleRunCompleted(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, PlainStyles())

	now := time.Now()
	console.RunCompleted(&engine.Result{
		Status:          engine.StatusAllCompleted,
		CompletionOrder: []string{"a", "b"},
		StartTime:       now,
		EndTime:         now.Add(1500 * time.Millisecond),
	})

	assert.Contains(t, buf.String(), "Run completed: 2 task(s) in 1.5s")
}

func TestConsoleRunAborted(t *testing.T) {
	tests := []struct {
		name   string
		result *engine.Result
		want   []string
	}{
		{
			name: "task failure with prior completions",
			result: &engine.Result{
				Status:          engine.StatusTaskFailed,
				FailedTask:      "deploy",
				CompletionOrder: []string{"build"},
			},
			want: []string{"task deploy failed", "1 task(s) had completed"},
		},
		{
			name: "dependency error",
			result: &engine.Result{
				Status:      engine.StatusDependencyError,
				Unsatisfied: []string{"a", "b"},
			},
			want: []string{"unsatisfiable dependencies (a, b)"},
		},
		{
			name:   "cancelled",
			result: &engine.Result{Status: engine.StatusCancelled},
			want:   []string{"Run cancelled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			console := NewConsole(&buf, PlainStyles())

			console.RunAborted(tt.result, fmt.Errorf("boom"))

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml", ""} {
		_, err := NewFormatter(format, nil)
		assert.NoError(t, err, "format %q", format)
	}

	_, err := NewFormatter("xml", nil)
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"name": "demo"}))
	assert.Contains(t, buf.String(), `"name": "demo"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"name": "demo"}))
	assert.Contains(t, buf.String(), "name: demo")
}

func TestTextFormatterRequiresStringer(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format("plain line"))
	assert.Equal(t, "plain line\n", buf.String())

	err = f.Format(struct{ X int }{1})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "String()"))
}
