// Package trace records engine events for debugging. Events are mirrored to
// a structured logger and kept in a bounded in-memory buffer so recent
// history can be dumped when an invariant trips.
package trace

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Field is one key/value attached to a trace event.
type Field struct {
	Key   string
	Value string
}

// F builds a field, formatting the value with %v.
func F(key string, value any) Field {
	return Field{Key: key, Value: fmt.Sprintf("%v", value)}
}

// Event is a recorded engine event.
type Event struct {
	Message string
	Fields  []Field
}

// Recorder collects engine events. A nil logger disables log mirroring but
// still buffers events. Recorder is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	logger *zap.Logger
	events []Event
	limit  int
}

// NewRecorder creates a recorder keeping at most limit recent events.
func NewRecorder(logger *zap.Logger, limit int) *Recorder {
	if limit <= 0 {
		limit = 256
	}
	return &Recorder{logger: logger, limit: limit}
}

// Event records one event, evicting the oldest entry when the buffer is
// full.
func (r *Recorder) Event(message string, fields ...Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Message: message, Fields: fields})
	if len(r.events) > r.limit {
		r.events = r.events[len(r.events)-r.limit:]
	}
	if r.logger != nil {
		zapFields := make([]zap.Field, len(fields))
		for i, f := range fields {
			zapFields[i] = zap.String(f.Key, f.Value)
		}
		r.logger.Debug(message, zapFields...)
	}
}

// Recent returns a copy of the buffered events, oldest first.
func (r *Recorder) Recent() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Clear drops all buffered events.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
