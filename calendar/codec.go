package calendar

import (
	"encoding/json"
	"fmt"
)

// document is the persisted calendar shape: a single JSON object with an
// unordered sequence of event records. Start is kept as its ISO-8601 string
// so that per-record parse failures surface as ErrCorruptStorage instead of
// being coerced silently. Status is omitted for plain-active events, keeping
// the baseline format byte-compatible with documents that predate
// cancellation support.
type document struct {
	Events []record `json:"events"`
}

type record struct {
	Requester string      `json:"requester"`
	Start     string      `json:"start"`
	Duration  int         `json:"duration"`
	Message   string      `json:"message"`
	Status    EventStatus `json:"status,omitempty"`
}

// MarshalCalendar encodes the full event set as an indented JSON document.
// All persistent backends share this format so a calendar can be moved
// between them byte for byte.
func MarshalCalendar(cal Calendar) ([]byte, error) {
	doc := document{Events: make([]record, 0, len(cal.Events))}
	for _, e := range cal.Events {
		rec := record{
			Requester: e.Requester,
			Start:     formatStart(e.Start),
			Duration:  e.Duration,
			Message:   e.Message,
		}
		if e.Status == StatusCancelled {
			rec.Status = e.Status
		}
		doc.Events = append(doc.Events, rec)
	}

	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return raw, nil
}

// UnmarshalCalendar decodes a persisted document. An unparseable document,
// or any record whose start timestamp cannot be parsed, fails with
// ErrCorruptStorage.
func UnmarshalCalendar(raw []byte) (Calendar, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Calendar{}, fmt.Errorf("%w: decode document: %v", ErrCorruptStorage, err)
	}

	events := make([]Event, 0, len(doc.Events))
	for i, rec := range doc.Events {
		start, err := ParseStart(rec.Start)
		if err != nil {
			return Calendar{}, fmt.Errorf("%w: event %d start %q: %v", ErrCorruptStorage, i, rec.Start, err)
		}
		events = append(events, Event{
			Requester: rec.Requester,
			Start:     start,
			Duration:  rec.Duration,
			Message:   rec.Message,
			Status:    rec.Status,
		})
	}
	return Calendar{Events: events}, nil
}
