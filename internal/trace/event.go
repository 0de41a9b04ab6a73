package trace

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of trace event
type EventType string

const (
	// EventTypeRunStart indicates a run started
	EventTypeRunStart EventType = "run_start"

	// EventTypeRunComplete indicates a run finished with every task completed
	EventTypeRunComplete EventType = "run_complete"

	// EventTypeRunAbort indicates a run was aborted
	EventTypeRunAbort EventType = "run_abort"

	// EventTypeTaskStart indicates a task started
	EventTypeTaskStart EventType = "task_start"

	// EventTypeTaskComplete indicates a task completed successfully
	EventTypeTaskComplete EventType = "task_complete"

	// EventTypeTaskFail indicates a task failed
	EventTypeTaskFail EventType = "task_fail"

	// EventTypeInfo indicates an informational event
	EventTypeInfo EventType = "info"
)

// Event represents a single trace event
type Event struct {
	// ID is a unique identifier for this event
	ID string `json:"id"`

	// Type is the event type
	Type EventType `json:"type"`

	// Timestamp is when the event occurred
	Timestamp time.Time `json:"timestamp"`

	// RunID identifies the run this event belongs to
	RunID string `json:"run_id"`

	// TaskID identifies the task (if applicable)
	TaskID string `json:"task_id,omitempty"`

	// Message is a human-readable description
	Message string `json:"message"`

	// Level indicates severity (info, error)
	Level string `json:"level"`

	// Data contains event-specific structured data
	Data map[string]interface{} `json:"data,omitempty"`

	// Duration tracks how long an operation took (for start/complete pairs)
	Duration *time.Duration `json:"duration,omitempty"`

	// Error contains error details if applicable
	Error string `json:"error,omitempty"`
}

// ToJSON converts the event to JSON
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON parses an event from JSON
func FromJSON(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// NewEvent creates a new trace event with common fields populated
func NewEvent(eventType EventType, runID string, message string) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		RunID:     runID,
		Message:   message,
		Level:     inferLevel(eventType),
	}
}

// WithTaskID sets the task ID
func (e *Event) WithTaskID(taskID string) *Event {
	e.TaskID = taskID
	return e
}

// WithData adds data to the event
func (e *Event) WithData(key string, value interface{}) *Event {
	if e.Data == nil {
		e.Data = make(map[string]interface{})
	}
	e.Data[key] = value
	return e
}

// WithError sets the error field
func (e *Event) WithError(err error) *Event {
	if err != nil {
		e.Error = err.Error()
		e.Level = "error"
	}
	return e
}

// WithDuration sets the duration
func (e *Event) WithDuration(duration time.Duration) *Event {
	e.Duration = &duration
	return e
}

// inferLevel infers the log level from event type
func inferLevel(eventType EventType) string {
	switch eventType {
	case EventTypeTaskFail, EventTypeRunAbort:
		return "error"
	default:
		return "info"
	}
}
