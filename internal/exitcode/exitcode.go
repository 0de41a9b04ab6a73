package exitcode

import (
	"os"

	"github.com/felixgeelhaar/runbook/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// TaskFailed indicates a task's action failed and the run was aborted
	TaskFailed = 3

	// DependencyError indicates the run got stuck on unsatisfiable dependencies
	DependencyError = 4

	// ValidationError indicates the runbook file failed static validation
	ValidationError = 5

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var rbErr *errors.RunbookError
	if !errors.As(err, &rbErr) {
		return GeneralError
	}

	switch rbErr.Code {
	case errors.ErrCodeExecTaskFailed:
		return TaskFailed
	case errors.ErrCodeExecDependency:
		return DependencyError
	case errors.ErrCodeExecCancelled:
		return Interrupted
	case errors.ErrCodeRunbookNotFound,
		errors.ErrCodeRunbookUnmarshal,
		errors.ErrCodeRunbookInvalid,
		errors.ErrCodeRunbookDuplicate,
		errors.ErrCodeRunbookDependency:
		return ValidationError
	default:
		return GeneralError
	}
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case TaskFailed:
		return "Task execution failed"
	case DependencyError:
		return "Unsatisfiable task dependencies"
	case ValidationError:
		return "Runbook validation failed"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
