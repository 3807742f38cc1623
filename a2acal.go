// Package a2acal provides a high-level façade over the task runner and the
// meeting-booking services. Most applications interact with this package by:
//  1. Creating an Agent via New() (optionally overriding stores, model, tools)
//  2. Submitting queries with Submit, collecting events through a sink
//  3. Inspecting the returned task for its resting state
//
// The façade delegates orchestration to runner.Runner while keeping setup
// ergonomics concise. All defaults are safe for local development and testing;
// deployments typically supply a real model provider, a durable calendar
// store and a structured logger.
package a2acal

import (
	"context"

	"github.com/hupe1980/a2acal/calendar"
	"github.com/hupe1980/a2acal/core"
	"github.com/hupe1980/a2acal/logging"
	"github.com/hupe1980/a2acal/model"
	"github.com/hupe1980/a2acal/runner"
	"github.com/hupe1980/a2acal/task"
	"github.com/hupe1980/a2acal/tool"
)

// Options configures the Agent instance.
type Options struct {
	// Name identifies the agent in status narration.
	Name string

	// Instructions are the system instructions passed to the model.
	Instructions string

	// MaxToolCalls bounds the tool execution loop per task turn.
	MaxToolCalls int

	// Stream toggles streaming generation where the provider supports it.
	Stream bool

	// TaskStore persists task lifecycle state (defaults to in-memory).
	TaskStore core.TaskStore

	// CalendarStore persists the booking calendar (defaults to in-memory).
	CalendarStore calendar.Store

	// Tools overrides the tool registry. When nil, a registry holding the
	// request_meeting tool over CalendarStore is installed.
	Tools *tool.Registry

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Agent is the high-level façade aggregating the runner and booking services.
type Agent struct {
	opts    Options
	runner  *runner.Runner
	booking *calendar.BookingService
}

// New creates a new Agent over a model with optional overrides. Any unset
// store is initialized with an in-memory implementation.
func New(llm model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Name:          "calendar-agent",
		MaxToolCalls:  10,
		TaskStore:     task.NewInMemoryStore(),
		CalendarStore: calendar.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	booking := calendar.NewBookingService(opts.CalendarStore, func(o *calendar.Options) {
		o.Logger = opts.Logger
	})

	if opts.Tools == nil {
		opts.Tools = tool.NewRegistry()
		opts.Tools.Register(tool.NewRequestMeetingTool(booking, func(o *tool.FunctionToolOptions) {
			o.Logger = opts.Logger
		}))
	}

	r := runner.New(llm, opts.TaskStore, func(o *runner.Options) {
		o.Name = opts.Name
		o.Instructions = opts.Instructions
		o.Tools = opts.Tools
		o.MaxToolCalls = opts.MaxToolCalls
		o.Stream = opts.Stream
		o.Logger = opts.Logger
	})

	return &Agent{opts: opts, runner: r, booking: booking}
}

// Booking exposes the underlying booking service for direct calendar access.
func (a *Agent) Booking() *calendar.BookingService { return a.booking }

// Submit runs one task turn for the query, pushing events through sink, and
// returns the task in its resting state.
func (a *Agent) Submit(ctx context.Context, query, contextID, taskID string, sink core.EventSink) (*core.Task, error) {
	return a.runner.Execute(ctx, runner.Request{
		Query:     query,
		ContextID: contextID,
		TaskID:    taskID,
	}, sink)
}

// SubmitSync is a synchronous helper that collects all emitted events in
// order alongside the resting task.
func (a *Agent) SubmitSync(ctx context.Context, query, contextID, taskID string) (*core.Task, []core.Event, error) {
	sink := &collectingSink{}
	t, err := a.Submit(ctx, query, contextID, taskID, sink)
	return t, sink.events, err
}

// Cancel rejects mid-flight cancellation; the lifecycle does not support it.
func (a *Agent) Cancel(taskID string) error { return a.runner.Cancel(taskID) }

type collectingSink struct {
	events []core.Event
}

func (s *collectingSink) Send(ev core.Event) error {
	s.events = append(s.events, ev)
	return nil
}
