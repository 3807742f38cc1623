package calendar

import "errors"

var (
	// ErrCorruptStorage is returned when persisted calendar state cannot be
	// parsed. It is fatal for the operation in progress: a corrupt record is
	// never skipped, since skipping could hide a real conflict.
	ErrCorruptStorage = errors.New("corrupt calendar storage")
)
