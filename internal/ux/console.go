package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/runbook/internal/engine"
)

// Console is an engine.Observer that narrates a run for a human watching the
// terminal: one line per task event plus a closing summary.
type Console struct {
	w      io.Writer
	styles Styles
}

// NewConsole creates a console observer writing to w
func NewConsole(w io.Writer, styles Styles) *Console {
	return &Console{w: w, styles: styles}
}

// TaskStarted implements engine.Observer
func (c *Console) TaskStarted(id string) {
	fmt.Fprintf(c.w, "%s %s\n", c.styles.Running.Render("→"), id)
}

// TaskSucceeded implements engine.Observer
func (c *Console) TaskSucceeded(id string) {
	fmt.Fprintf(c.w, "%s %s\n", c.styles.Success.Render("✓"), id)
}

// TaskFailed implements engine.Observer
func (c *Console) TaskFailed(id string, err error) {
	fmt.Fprintf(c.w, "%s %s: %v\n", c.styles.Error.Render("✗"), id, err)
}

// RunCompleted implements engine.Observer
func (c *Console) RunCompleted(result *engine.Result) {
	summary := fmt.Sprintf("Run completed: %d task(s) in %s",
		len(result.CompletionOrder), result.Duration().Round(durationPrecision))
	fmt.Fprintln(c.w, c.styles.Summary.Render(c.styles.Success.Render(summary)))
}

// RunAborted implements engine.Observer
func (c *Console) RunAborted(result *engine.Result, err error) {
	var b strings.Builder

	switch result.Status {
	case engine.StatusDependencyError:
		b.WriteString(fmt.Sprintf("Run aborted: unsatisfiable dependencies (%s)",
			strings.Join(result.Unsatisfied, ", ")))
	case engine.StatusCancelled:
		b.WriteString("Run cancelled")
	default:
		b.WriteString(fmt.Sprintf("Run aborted: task %s failed", result.FailedTask))
	}

	if len(result.CompletionOrder) > 0 {
		b.WriteString(fmt.Sprintf("; %d task(s) had completed", len(result.CompletionOrder)))
	}

	fmt.Fprintln(c.w, c.styles.Summary.Render(c.styles.Error.Render(b.String())))
}

var _ engine.Observer = (*Console)(nil)
