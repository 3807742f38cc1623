package testutil

import (
	"fmt"

	"github.com/hupe1980/a2acal/calendar"
)

// MeetingBuilder provides a fluent helper for constructing calendar events in
// tests. Example:
//
//	ev := NewMeeting("alice", "2024-01-01T10:00:00").Duration(60).Build()
//
// Chain only the parts you need; sensible defaults are applied.
type MeetingBuilder struct {
	requester string
	start     string
	duration  int
	message   string
	cancelled bool
}

// NewMeeting creates a builder with a default duration of 60 minutes.
func NewMeeting(requester, start string) *MeetingBuilder {
	return &MeetingBuilder{requester: requester, start: start, duration: 60}
}

// Duration sets the meeting length in minutes (chainable).
func (b *MeetingBuilder) Duration(minutes int) *MeetingBuilder { b.duration = minutes; return b }

// Message sets the free text accompanying the request (chainable).
func (b *MeetingBuilder) Message(msg string) *MeetingBuilder { b.message = msg; return b }

// Cancelled marks the event as cancelled (chainable).
func (b *MeetingBuilder) Cancelled() *MeetingBuilder { b.cancelled = true; return b }

// Build returns the calendar.Event. An unparseable start panics; builders run
// in tests with literal timestamps.
func (b *MeetingBuilder) Build() calendar.Event {
	start, err := calendar.ParseStart(b.start)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad start %q: %v", b.start, err))
	}
	ev := calendar.Event{
		Requester: b.requester,
		Start:     start,
		Duration:  b.duration,
		Message:   b.message,
	}
	if b.cancelled {
		ev.Status = calendar.StatusCancelled
	}
	return ev
}
