package framework

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"
)

// EventType categorizes telemetry events.
type EventType string

const (
	EventFeatureAdded   EventType = "feature_added"
	EventFeatureExists  EventType = "feature_exists"
	EventSnapshotSaved  EventType = "snapshot_saved"
	EventSnapshotFailed EventType = "snapshot_failed"
	EventFileAnalyzed   EventType = "file_analyzed"
	EventFileMissing    EventType = "file_missing"
	EventFileFailed     EventType = "file_failed"
)

// Event captures structured telemetry data.
type Event struct {
	Type      EventType              `json:"type"`
	Subject   string                 `json:"subject,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Telemetry receives lifecycle events from the registry and the analyzer.
type Telemetry interface {
	Emit(event Event)
}

// Emit forwards event to t when t is set, stamping the time if missing.
func Emit(t Telemetry, event Event) {
	if t == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	t.Emit(event)
}

// MultiplexTelemetry broadcasts events to multiple sinks.
type MultiplexTelemetry struct {
	Sinks []Telemetry
}

// Emit forwards the event to all registered sinks.
func (m MultiplexTelemetry) Emit(event Event) {
	for _, s := range m.Sinks {
		if s != nil {
			s.Emit(event)
		}
	}
}

// JSONFileTelemetry writes events as newline-delimited JSON to a file.
type JSONFileTelemetry struct {
	path string
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewJSONFileTelemetry opens (or creates) the events file in append mode.
func NewJSONFileTelemetry(path string) (*JSONFileTelemetry, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, NewPathError("open", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	return &JSONFileTelemetry{
		path: path,
		file: f,
		enc:  enc,
	}, nil
}

// Path reports the file backing the sink.
func (j *JSONFileTelemetry) Path() string {
	return j.path
}

// Emit writes the JSON record.
func (j *JSONFileTelemetry) Emit(event Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.enc != nil {
		_ = j.enc.Encode(event)
	}
}

// Close releases the file handle.
func (j *JSONFileTelemetry) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	j.enc = nil
	return err
}

// LoggerTelemetry emits events as debug records on a slog logger.
type LoggerTelemetry struct {
	Logger *slog.Logger
}

// Emit logs the event.
func (t LoggerTelemetry) Emit(event Event) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{slog.String("event", string(event.Type))}
	if event.Subject != "" {
		attrs = append(attrs, slog.String("subject", event.Subject))
	}
	for k, v := range event.Metadata {
		attrs = append(attrs, slog.Any(k, v))
	}
	logger.Debug(event.Message, attrs...)
}
