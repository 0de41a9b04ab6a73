package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Task errors (TASK-001 to TASK-099)
	ErrCodeTaskDuplicate ErrorCode = "TASK-001"
	ErrCodeTaskNotFound  ErrorCode = "TASK-002"

	// Execution errors (EXEC-001 to EXEC-099)
	ErrCodeExecTaskFailed ErrorCode = "EXEC-001"
	ErrCodeExecDependency ErrorCode = "EXEC-002"
	ErrCodeExecCancelled  ErrorCode = "EXEC-003"

	// Runbook file errors (RUNBOOK-001 to RUNBOOK-099)
	ErrCodeRunbookNotFound   ErrorCode = "RUNBOOK-001"
	ErrCodeRunbookUnmarshal  ErrorCode = "RUNBOOK-002"
	ErrCodeRunbookInvalid    ErrorCode = "RUNBOOK-003"
	ErrCodeRunbookDuplicate  ErrorCode = "RUNBOOK-004"
	ErrCodeRunbookDependency ErrorCode = "RUNBOOK-005"
)

// RunbookError represents an enhanced error with code, suggestions, and documentation
type RunbookError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error

	// TaskID is the task the error is about, when the error concerns a
	// single task (duplicate registration, execution failure).
	TaskID string

	// UnsatisfiedIDs lists the tasks that could never become ready, when the
	// error is a dependency-resolution failure.
	UnsatisfiedIDs []string
}

// Error implements the error interface
func (e *RunbookError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *RunbookError) Unwrap() error {
	return e.Cause
}

// New creates a new RunbookError
func New(code ErrorCode, message string) *RunbookError {
	return &RunbookError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new RunbookError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *RunbookError {
	return &RunbookError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *RunbookError) WithSuggestion(suggestion string) *RunbookError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *RunbookError) WithSuggestions(suggestions ...string) *RunbookError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *RunbookError) WithDocs(url string) *RunbookError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewDuplicateTaskError reports a second registration of an already known task id
func NewDuplicateTaskError(id string) *RunbookError {
	err := New(ErrCodeTaskDuplicate, fmt.Sprintf("task %q is already registered", id)).
		WithSuggestion("Give every task a unique id").
		WithSuggestion("Check the runbook file for a repeated task entry").
		WithDocs("https://github.com/felixgeelhaar/runbook#task-ids")
	err.TaskID = id
	return err
}

// NewTaskNotFoundError reports a lookup of an unregistered task id
func NewTaskNotFoundError(id string) *RunbookError {
	err := New(ErrCodeTaskNotFound, fmt.Sprintf("task %q is not registered", id))
	err.TaskID = id
	return err
}

// NewTaskFailedError reports a task whose action returned an error
func NewTaskFailedError(id string, cause error) *RunbookError {
	err := Wrap(ErrCodeExecTaskFailed, fmt.Sprintf("task %q failed", id), cause).
		WithSuggestion("Inspect the task's output above for the underlying failure").
		WithSuggestion("Re-run with --log-level debug for per-task details").
		WithDocs("https://github.com/felixgeelhaar/runbook#task-failures")
	err.TaskID = id
	return err
}

// NewDependencyError reports a run that made no progress over a full sweep.
// The unsatisfied set covers both missing references and cycles: neither can
// ever become satisfiable, so the executor does not distinguish them.
func NewDependencyError(unsatisfied []string) *RunbookError {
	ids := make([]string, len(unsatisfied))
	copy(ids, unsatisfied)
	sort.Strings(ids)

	err := New(ErrCodeExecDependency,
		fmt.Sprintf("dependencies cannot be satisfied for tasks: %s", strings.Join(ids, ", "))).
		WithSuggestion("Check for a dependency on a task id that was never registered").
		WithSuggestion("Check for a dependency cycle between the listed tasks").
		WithSuggestion("Run 'runbook validate' to pinpoint the broken reference or cycle").
		WithDocs("https://github.com/felixgeelhaar/runbook#dependency-errors")
	err.UnsatisfiedIDs = ids
	return err
}

// NewRunbookNotFoundError reports a missing runbook file
func NewRunbookNotFoundError(path string) *RunbookError {
	return New(ErrCodeRunbookNotFound, fmt.Sprintf("runbook file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Pass an explicit path: 'runbook run <file>'").
		WithDocs("https://github.com/felixgeelhaar/runbook#runbook-files")
}

// NewRunbookInvalidError reports a runbook that failed static validation
func NewRunbookInvalidError(details string) *RunbookError {
	return New(ErrCodeRunbookInvalid, fmt.Sprintf("invalid runbook: %s", details)).
		WithSuggestion("Run 'runbook validate <file>' to see all validation errors").
		WithDocs("https://github.com/felixgeelhaar/runbook#runbook-files")
}

// As is a convenience re-export of errors.As for callers that already import
// this package under the errors name.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is a convenience re-export of errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// IsDuplicateTask reports whether err is a duplicate task registration error
func IsDuplicateTask(err error) bool {
	return hasCode(err, ErrCodeTaskDuplicate)
}

// IsTaskFailed reports whether err is a task execution failure
func IsTaskFailed(err error) bool {
	return hasCode(err, ErrCodeExecTaskFailed)
}

// IsDependencyError reports whether err is a dependency-resolution failure
func IsDependencyError(err error) bool {
	return hasCode(err, ErrCodeExecDependency)
}

func hasCode(err error, code ErrorCode) bool {
	var rbErr *RunbookError
	if !As(err, &rbErr) {
		return false
	}
	return rbErr.Code == code
}
