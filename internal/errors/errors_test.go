package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeRunbookNotFound, "test error message")

	if err.Code != ErrCodeRunbookNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeRunbookNotFound, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeExecTaskFailed, "task failed", cause)

	if err.Code != ErrCodeExecTaskFailed {
		t.Errorf("expected code %s, got %s", ErrCodeExecTaskFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *RunbookError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeRunbookInvalid, "invalid runbook"),
			wantCode: "RUNBOOK-003",
			wantMsg:  "invalid runbook",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeExecTaskFailed, "task failed", fmt.Errorf("exit status 1")),
			wantCode: "EXEC-001",
			wantMsg:  "exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain message '%s', got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrCodeRunbookInvalid, "invalid runbook").
		WithSuggestion("first suggestion").
		WithSuggestion("second suggestion")

	if len(err.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(err.Suggestions))
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "first suggestion") || !strings.Contains(errStr, "second suggestion") {
		t.Errorf("error string should contain both suggestions, got: %s", errStr)
	}
}

func TestNewDuplicateTaskError(t *testing.T) {
	err := NewDuplicateTaskError("build")

	if err.Code != ErrCodeTaskDuplicate {
		t.Errorf("expected code %s, got %s", ErrCodeTaskDuplicate, err.Code)
	}
	if err.TaskID != "build" {
		t.Errorf("expected task id 'build', got %q", err.TaskID)
	}
	if !IsDuplicateTask(err) {
		t.Errorf("IsDuplicateTask should match")
	}
}

func TestNewDependencyError(t *testing.T) {
	err := NewDependencyError([]string{"deploy", "build"})

	if err.Code != ErrCodeExecDependency {
		t.Errorf("expected code %s, got %s", ErrCodeExecDependency, err.Code)
	}

	// Unsatisfied ids are reported sorted for stable output.
	if len(err.UnsatisfiedIDs) != 2 || err.UnsatisfiedIDs[0] != "build" || err.UnsatisfiedIDs[1] != "deploy" {
		t.Errorf("expected sorted unsatisfied ids [build deploy], got %v", err.UnsatisfiedIDs)
	}

	if !IsDependencyError(err) {
		t.Errorf("IsDependencyError should match")
	}
	if IsTaskFailed(err) {
		t.Errorf("IsTaskFailed should not match a dependency error")
	}
}

func TestCodeMatchingThroughWrapping(t *testing.T) {
	inner := NewTaskFailedError("train", fmt.Errorf("exit status 2"))
	outer := fmt.Errorf("run aborted: %w", inner)

	if !IsTaskFailed(outer) {
		t.Errorf("IsTaskFailed should see through fmt.Errorf wrapping")
	}
}
