// Package task implements the task lifecycle execution protocol: a state
// machine per unit of work that tracks progress from submission to a
// terminal outcome, emitting ordered status and artifact events for every
// transition. Completion chunks are interpreted by package classify; events
// leave through package relay.
package task

import (
	"errors"
	"fmt"

	"github.com/hupe1980/a2acal/classify"
	"github.com/hupe1980/a2acal/core"
	"github.com/hupe1980/a2acal/logging"
	"github.com/hupe1980/a2acal/relay"
)

// maxErrorLength bounds the error text surfaced to sinks on failure,
// protecting downstream consumers from oversized messages. Full detail still
// goes to the log.
const maxErrorLength = 500

// Options holds dependency overrides for NewManager.
type Options struct {
	// Name prefixes status narration; empty for no prefix.
	Name       string
	Classifier *classify.Classifier
	Logger     logging.Logger
}

// Manager creates and resumes lifecycles against a TaskStore. Tasks are
// keyed by context id: the first query for an unknown context creates a
// task, later queries resume it.
type Manager struct {
	store      core.TaskStore
	classifier *classify.Classifier
	name       string
	logger     logging.Logger
}

// NewManager constructs a Manager with optional overrides.
func NewManager(store core.TaskStore, optFns ...func(o *Options)) *Manager {
	opts := Options{
		Classifier: classify.New(),
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{store: store, classifier: opts.Classifier, name: opts.Name, logger: opts.Logger}
}

// Start begins (or resumes) the lifecycle for a context. If no task exists
// for contextID one is created in submitted state and immediately advanced
// to working; an existing input_required task is moved back to working. In
// both cases an initial status event is emitted before any chunk is
// processed. An empty query fails with core.ErrInvalidInput; a task already
// in a terminal state fails with core.ErrTaskTerminal.
func (m *Manager) Start(query, contextID, taskID string, r *relay.Relay) (*Lifecycle, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", core.ErrInvalidInput)
	}

	t, err := m.store.Get(contextID)
	switch {
	case errors.Is(err, core.ErrTaskNotFound):
		t = core.NewTask(taskID, contextID)
	case err != nil:
		return nil, fmt.Errorf("load task for context %s: %w", contextID, err)
	}

	if t.State.Terminal() {
		return nil, core.ErrTaskTerminal
	}

	lc := &Lifecycle{
		task:       t,
		store:      m.store,
		classifier: m.classifier,
		relay:      r,
		logger:     m.logger,
	}

	if t.State != core.TaskStateWorking {
		if err := lc.transition(core.TaskStateWorking); err != nil {
			return nil, err
		}
	} else if err := m.store.Save(t); err != nil {
		return nil, err
	}
	announcement := "Starting task..."
	if m.name != "" {
		announcement = m.name + ": " + announcement
	}
	lc.emit(core.NewStatusEvent(t.ID, t.ContextID, core.TaskStateWorking, announcement, false))

	m.logger.Info("task started", "task_id", t.ID, "context_id", t.ContextID)
	return lc, nil
}

// Lifecycle drives one task through the state machine. It is bound to a
// single logical flow of control: the lifecycle advances step by step as
// completion chunks arrive, with no parallel execution within one task.
type Lifecycle struct {
	task       *core.Task
	store      core.TaskStore
	classifier *classify.Classifier
	relay      *relay.Relay
	logger     logging.Logger
}

// Task returns a snapshot of the underlying task.
func (l *Lifecycle) Task() *core.Task { return l.task.Clone() }

// Advance feeds one completion chunk through the classifier and applies the
// mapped transition. The returned done flag reports whether this turn is
// over: true for input_required (the caller must supply more input) and for
// completion, false while the task keeps working.
func (l *Lifecycle) Advance(chunk string) (bool, error) {
	if l.task.State.Terminal() {
		return true, core.ErrTaskTerminal
	}

	c := l.classifier.Classify(chunk)
	switch c.Outcome {
	case classify.OutcomeInputRequired:
		if err := l.transition(core.TaskStateInputRequired); err != nil {
			return true, err
		}
		question := ""
		if tp, ok := c.Content.(core.TextPart); ok {
			question = tp.Text
		}
		l.emit(core.NewStatusEvent(l.task.ID, l.task.ContextID, core.TaskStateInputRequired, question, true))
		return true, nil

	case classify.OutcomeFinal:
		if err := l.transition(core.TaskStateCompleted); err != nil {
			return true, err
		}
		l.emit(core.NewArtifactEvent(l.task.ID, l.task.ContextID, c.Content))
		return true, nil

	default:
		l.emit(core.NewStatusEvent(l.task.ID, l.task.ContextID, core.TaskStateWorking, chunk, false))
		return false, nil
	}
}

// Fail moves the task to the failed terminal state and emits a final status
// event whose text is the error message truncated to a bounded length. The
// emission is best effort; the original error is always returned so the
// invoking collaborator can propagate it. Failing an already terminal task
// returns core.ErrTaskTerminal without mutating state.
func (l *Lifecycle) Fail(cause error) error {
	if l.task.State.Terminal() {
		return core.ErrTaskTerminal
	}

	l.logger.Error("task failed", "task_id", l.task.ID, "context_id", l.task.ContextID, "error", cause)

	if err := l.transition(core.TaskStateFailed); err != nil {
		// State could not be persisted; the original failure still wins.
		l.logger.Error("failed-state transition error", "task_id", l.task.ID, "error", err)
		return cause
	}

	l.emit(core.NewStatusEvent(l.task.ID, l.task.ContextID, core.TaskStateFailed, truncateError(cause), true))
	return cause
}

// transition applies a state change and persists the task. Every transition
// is paired with an event emission by the caller; a transition with no event
// is a protocol violation.
func (l *Lifecycle) transition(next core.TaskState) error {
	if err := l.task.Transition(next); err != nil {
		return err
	}
	if err := l.store.Save(l.task); err != nil {
		return fmt.Errorf("persist task %s: %w", l.task.ID, err)
	}
	l.logger.Debug("task transition", "task_id", l.task.ID, "state", string(next))
	return nil
}

func (l *Lifecycle) emit(ev core.Event) {
	l.relay.Deliver(ev)
}

func truncateError(err error) string {
	msg := "Error: " + err.Error()
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength] + "..."
	}
	return msg
}
