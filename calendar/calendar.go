// Package calendar implements the meeting-booking conflict engine: a durable
// ordered collection of booked intervals and a booking service that commits a
// requested interval only when it overlaps no existing active booking.
// Intervals use half-open semantics [start, start+duration); two events
// conflict when they share at least one instant.
package calendar

import (
	"time"
)

// EventStatus is the booking lifecycle of a calendar event. Cancellation is a
// status change, never a physical removal, preserving historical
// auditability.
type EventStatus string

const (
	// StatusActive marks an event that occupies its interval.
	StatusActive EventStatus = "active"
	// StatusCancelled marks an event released from its interval but retained.
	StatusCancelled EventStatus = "cancelled"
)

// Event is one booked interval. Duration is in minutes and must be positive
// for the event to be bookable. A zero Status is treated as active so events
// loaded from the baseline persisted format (which has no status field)
// behave as permanently active.
type Event struct {
	Requester string
	Start     time.Time
	Duration  int
	Message   string
	Status    EventStatus
}

// End returns the exclusive end instant of the event's interval.
func (e Event) End() time.Time {
	return e.Start.Add(time.Duration(e.Duration) * time.Minute)
}

// Active reports whether the event currently occupies its interval.
func (e Event) Active() bool {
	return e.Status == "" || e.Status == StatusActive
}

// Overlaps reports whether the two half-open intervals share an instant.
// Abutting intervals (one ends exactly where the other starts) do not
// overlap.
func (e Event) Overlaps(other Event) bool {
	return e.Start.Before(other.End()) && e.End().After(other.Start)
}

// Calendar is the ordered collection of events for one owner and the sole
// arbiter of the no-overlap invariant among its active events.
type Calendar struct {
	Events []Event
}

// Conflict returns the first active event overlapping candidate, or nil.
// The scan short-circuits on the first hit; there is no best-effort partial
// booking.
func (c Calendar) Conflict(candidate Event) *Event {
	for i := range c.Events {
		if !c.Events[i].Active() {
			continue
		}
		if candidate.Overlaps(c.Events[i]) {
			return &c.Events[i]
		}
	}
	return nil
}

// Active returns the active events in stored order.
func (c Calendar) Active() []Event {
	var active []Event
	for _, e := range c.Events {
		if e.Active() {
			active = append(active, e)
		}
	}
	return active
}

// ByRequester returns all events booked by the given requester in stored order.
func (c Calendar) ByRequester(requester string) []Event {
	var matched []Event
	for _, e := range c.Events {
		if e.Requester == requester {
			matched = append(matched, e)
		}
	}
	return matched
}

// Cancel flips the status of the first active event matching requester and
// start. Returns false when no such event exists.
func (c *Calendar) Cancel(requester string, start time.Time) bool {
	for i := range c.Events {
		e := &c.Events[i]
		if e.Active() && e.Requester == requester && e.Start.Equal(start) {
			e.Status = StatusCancelled
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe for external mutation.
func (c Calendar) Clone() Calendar {
	events := make([]Event, len(c.Events))
	copy(events, c.Events)
	return Calendar{Events: events}
}

// startLayouts are the accepted timestamp encodings for persisted and
// caller-supplied start values, tried in order.
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseStart parses an ISO-8601 start timestamp, with or without a zone
// offset. Zone-less values are interpreted as UTC.
func ParseStart(value string) (time.Time, error) {
	var err error
	for _, layout := range startLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// formatStart renders a start timestamp for persistence. UTC instants keep
// the zone-less encoding of the baseline document format; zoned instants
// carry their offset so no information is lost on round trip.
func formatStart(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format(startLayouts[1])
	}
	return t.Format(time.RFC3339)
}
