package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends trace events for one run to a JSONL file.
//
// When disabled it still captures events in memory, which keeps observers
// wired identically with and without --trace-dir and makes runs inspectable
// in tests.
type Logger struct {
	runID   string
	logDir  string
	logFile *os.File
	mu      sync.Mutex
	enabled bool
	events  []*Event
}

// Config contains logger configuration
type Config struct {
	// RunID identifies the run
	RunID string

	// LogDir is the directory for trace files
	LogDir string

	// Enabled controls whether events are written to disk
	Enabled bool
}

// NewLogger creates a new trace logger
func NewLogger(config Config) (*Logger, error) {
	if !config.Enabled {
		return &Logger{
			runID:   config.RunID,
			enabled: false,
		}, nil
	}

	if err := os.MkdirAll(config.LogDir, 0750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}

	logPath := filepath.Join(config.LogDir, fmt.Sprintf("run_%s.jsonl", config.RunID))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}

	logger := &Logger{
		runID:   config.RunID,
		logDir:  config.LogDir,
		logFile: logFile,
		enabled: true,
	}

	// First line is run metadata; every following line is one event.
	metadata := map[string]interface{}{
		"run_id":     config.RunID,
		"started_at": time.Now(),
		"version":    "runbook/v1",
	}
	metadataJSON, _ := json.Marshal(metadata)
	fmt.Fprintf(logFile, "%s\n", metadataJSON)

	return logger, nil
}

// Log records a trace event
func (l *Logger) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)

	if !l.enabled {
		return nil
	}

	eventJSON, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	if _, err := fmt.Fprintf(l.logFile, "%s\n", eventJSON); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	return nil
}

// Close syncs and closes the trace file
func (l *Logger) Close() error {
	if !l.enabled || l.logFile == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.logFile.Sync(); err != nil {
		return err
	}

	return l.logFile.Close()
}

// Path returns the path to the trace file, or "" when disabled
func (l *Logger) Path() string {
	if !l.enabled {
		return ""
	}
	return filepath.Join(l.logDir, fmt.Sprintf("run_%s.jsonl", l.runID))
}

// RunID returns the run ID
func (l *Logger) RunID() string {
	return l.runID
}

// Events returns all logged events (from memory)
func (l *Logger) Events() []*Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := make([]*Event, len(l.events))
	copy(events, l.events)
	return events
}
