package core

import (
	"time"
)

// TaskState enumerates the bounded task lifecycle. Transitions follow
//
//	submitted -> working -> {input_required, completed, failed}
//	input_required -> working (caller supplied more input)
//
// completed and failed are terminal; a terminal task never transitions again.
type TaskState string

const (
	// TaskStateSubmitted is the initial state of a freshly created task.
	TaskStateSubmitted TaskState = "submitted"
	// TaskStateWorking indicates the task is actively being processed.
	TaskStateWorking TaskState = "working"
	// TaskStateInputRequired indicates the task is paused awaiting caller input.
	TaskStateInputRequired TaskState = "input_required"
	// TaskStateCompleted is the successful terminal state.
	TaskStateCompleted TaskState = "completed"
	// TaskStateFailed is the unsuccessful terminal state.
	TaskStateFailed TaskState = "failed"
)

// Terminal reports whether the state permits no further transitions.
func (s TaskState) Terminal() bool {
	return s == TaskStateCompleted || s == TaskStateFailed
}

// transitions encodes the lifecycle graph as a closed adjacency set.
var transitions = map[TaskState][]TaskState{
	TaskStateSubmitted:     {TaskStateWorking, TaskStateFailed},
	TaskStateWorking:       {TaskStateInputRequired, TaskStateCompleted, TaskStateFailed},
	TaskStateInputRequired: {TaskStateWorking, TaskStateFailed},
}

// CanTransition reports whether moving from s to next follows the graph.
func (s TaskState) CanTransition(next TaskState) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Task is one unit of conversational work tracked from submission to a
// terminal outcome. It is mutated exclusively through Transition so the
// monotonicity invariant cannot be bypassed.
type Task struct {
	ID        string    `json:"id"`
	ContextID string    `json:"context_id"`
	State     TaskState `json:"state"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// NewTask creates a task in the submitted state. Empty identifiers are
// generated so first-contact callers need not assign them.
func NewTask(id, contextID string) *Task {
	if id == "" {
		id = NewID()
	}
	if contextID == "" {
		contextID = NewID()
	}
	now := time.Now().UTC()
	return &Task{ID: id, ContextID: contextID, State: TaskStateSubmitted, Created: now, Updated: now}
}

// Transition moves the task to next, enforcing terminality and the lifecycle
// graph. Returns ErrTaskTerminal or ErrInvalidTransition on violation.
func (t *Task) Transition(next TaskState) error {
	if t.State.Terminal() {
		return ErrTaskTerminal
	}
	if !t.State.CanTransition(next) {
		return ErrInvalidTransition
	}
	t.State = next
	t.Updated = time.Now().UTC()
	return nil
}

// Clone returns a copy safe for external mutation.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// TaskStore persists tasks keyed by context id. Implementations must be safe
// for concurrent use. The interface deliberately has no delete operation:
// retention is an external collaborator's concern, the core never removes a
// task.
type TaskStore interface {
	// Get returns the task for a context id, or ErrTaskNotFound.
	Get(contextID string) (*Task, error)

	// Save stores a snapshot of the task.
	Save(task *Task) error
}
