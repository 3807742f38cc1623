package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventKind distinguishes progress narration from final payload delivery.
type EventKind string

const (
	// EventKindStatus is a progress narration event.
	EventKindStatus EventKind = "status"
	// EventKindArtifact carries the final payload of a completed task.
	EventKindArtifact EventKind = "artifact"
)

// Event is one observable unit pushed to a sink while a task runs. Events for
// a given task are emitted and must be consumed in the order produced; no
// reordering or coalescing is permitted. After emission an Event should be
// treated as immutable.
type Event struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	ContextID string    `json:"context_id"`
	Kind      EventKind `json:"kind"`
	State     TaskState `json:"state,omitempty"`
	Content   Part      `json:"-"`
	Final     bool      `json:"final"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates a bare event bound to a task. Prefer the semantic
// constructors below.
func NewEvent(taskID, contextID string, kind EventKind) Event {
	return Event{
		ID:        NewID(),
		TaskID:    taskID,
		ContextID: contextID,
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusEvent constructs a progress event narrating a state change.
func NewStatusEvent(taskID, contextID string, state TaskState, message string, final bool) Event {
	e := NewEvent(taskID, contextID, EventKindStatus)
	e.State = state
	e.Content = TextPart{Text: message}
	e.Final = final
	return e
}

// NewArtifactEvent constructs the final payload event of a completed task.
// Artifact events are always final.
func NewArtifactEvent(taskID, contextID string, content Part) Event {
	e := NewEvent(taskID, contextID, EventKindArtifact)
	e.State = TaskStateCompleted
	e.Content = content
	e.Final = true
	return e
}

// IsTaskComplete reports whether this event marks the task's successful end.
func (e Event) IsTaskComplete() bool {
	return e.Kind == EventKindArtifact || e.State == TaskStateCompleted
}

// RequireUserInput reports whether the task is paused on the caller.
func (e Event) RequireUserInput() bool {
	return e.Kind == EventKindStatus && e.State == TaskStateInputRequired
}

// MarshalJSON emits the wire shape consumed by sinks: alongside the envelope
// fields, content is flattened to a string or object and annotated with
// response_type, is_task_complete and require_user_input.
func (e Event) MarshalJSON() ([]byte, error) {
	type envelope Event
	return json.Marshal(struct {
		envelope
		Content          any    `json:"content,omitempty"`
		ResponseType     string `json:"response_type"`
		IsTaskComplete   bool   `json:"is_task_complete"`
		RequireUserInput bool   `json:"require_user_input"`
	}{
		envelope:         envelope(e),
		Content:          partValue(e.Content),
		ResponseType:     ResponseType(e.Content),
		IsTaskComplete:   e.IsTaskComplete(),
		RequireUserInput: e.RequireUserInput(),
	})
}

// EventSink receives lifecycle events in emission order. Implementations are
// caller supplied (push notification channels, response streams). A sink
// error never mutates task state; delivery policy lives in package relay.
type EventSink interface {
	Send(event Event) error
}

// NewID generates a new unique identifier for tasks and events.
func NewID() string { return uuid.NewString() }
