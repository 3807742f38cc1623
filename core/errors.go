package core

import "errors"

var (
	// ErrInvalidInput indicates a caller-supplied request failed basic
	// validation (e.g. an empty query). Surfaced immediately, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedOperation is returned for operations the protocol does
	// not implement, such as mid-flight task cancellation. Callers must
	// receive an explicit rejection rather than a silent accept.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrTaskTerminal is returned when a transition is attempted on a task
	// that already reached completed or failed.
	ErrTaskTerminal = errors.New("task is in a terminal state")

	// ErrInvalidTransition is returned when a transition does not follow the
	// lifecycle graph (e.g. submitted -> completed without working).
	ErrInvalidTransition = errors.New("invalid task state transition")

	// ErrTaskNotFound is returned by TaskStore implementations when no task
	// exists for the requested context.
	ErrTaskNotFound = errors.New("task not found")
)
