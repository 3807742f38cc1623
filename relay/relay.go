// Package relay forwards task lifecycle events to a caller-supplied sink.
// Events are delivered synchronously in emission order with at-least-once
// attempted delivery. A sink failure never aborts the task it reports on:
// the source of truth for task state is the lifecycle itself, not sink
// acknowledgment.
package relay

import (
	"github.com/hupe1980/a2acal/core"
	"github.com/hupe1980/a2acal/logging"
)

// Options holds configuration overrides for New.
type Options struct {
	Logger logging.Logger
}

// Relay delivers events to one sink preserving order. It is not safe for
// concurrent use by multiple producers; each task has a single logical flow
// of control and therefore a single producer.
type Relay struct {
	sink   core.EventSink
	logger logging.Logger
}

// New creates a relay over the given sink.
func New(sink core.EventSink, optFns ...func(o *Options)) *Relay {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Relay{sink: sink, logger: opts.Logger}
}

// Deliver attempts delivery of one event. Failures are logged and swallowed:
// a failed non-final delivery must not abort the task, and a failed final
// delivery must not mask the outcome it was reporting. The task is still
// considered locally terminal.
func (r *Relay) Deliver(ev core.Event) {
	if err := r.sink.Send(ev); err != nil {
		r.logger.Warn("event delivery failed",
			"event_id", ev.ID,
			"task_id", ev.TaskID,
			"kind", string(ev.Kind),
			"final", ev.Final,
			"error", err)
	}
}
