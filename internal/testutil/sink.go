package testutil

import (
	"fmt"
	"sync"

	"github.com/hupe1980/a2acal/core"
)

// RecordingSink collects delivered events in order. FailAfter injects
// delivery failures: every Send beyond the first FailAfter calls returns an
// error (zero means never fail).
type RecordingSink struct {
	FailAfter int

	mu     sync.Mutex
	events []core.Event
	sends  int
}

// Send implements core.EventSink.
func (s *RecordingSink) Send(ev core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sends++
	if s.FailAfter > 0 && s.sends > s.FailAfter {
		return fmt.Errorf("sink rejected delivery %d", s.sends)
	}
	s.events = append(s.events, ev)
	return nil
}

// Events returns a copy of the collected events in delivery order.
func (s *RecordingSink) Events() []core.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Event(nil), s.events...)
}

// Sends reports how many deliveries were attempted, including rejected ones.
func (s *RecordingSink) Sends() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sends
}
