// Package runner coordinates one task execution end to end: it starts the
// task lifecycle, streams completion chunks from the language-model
// collaborator, executes tool calls through a registry, feeds replies through
// the classifier-driven lifecycle and converts upstream failures into the
// failed terminal state. Each task is a single logical flow of control; the
// runner never processes chunks of one task in parallel.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hupe1980/a2acal/core"
	"github.com/hupe1980/a2acal/logging"
	"github.com/hupe1980/a2acal/model"
	"github.com/hupe1980/a2acal/relay"
	"github.com/hupe1980/a2acal/task"
	"github.com/hupe1980/a2acal/tool"
)

// ErrUpstreamFailure marks errors originating from the language-model
// collaborator. They are caught at the task boundary and converted into a
// failed terminal state; the raw error never reaches the transport layer.
var ErrUpstreamFailure = errors.New("upstream model failure")

// progressPlaceholder is the narration emitted while the model is still
// producing output. The classifier recognizes it as an in-progress chunk.
const progressPlaceholder = "Processing Request..."

// Request identifies one unit of work submitted to the runner.
type Request struct {
	Query     string
	ContextID string
	TaskID    string
}

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Name identifies the agent in status narration.
	Name string
	// Instructions are the system instructions passed to the model.
	Instructions string
	// Tools exposes callable capabilities to the model.
	Tools *tool.Registry
	// MaxToolCalls bounds the tool execution loop per task turn.
	MaxToolCalls int
	// Stream toggles streaming generation where the provider supports it.
	Stream bool
	// Manager overrides the default lifecycle manager.
	Manager *task.Manager
	// Logger receives runner diagnostics.
	Logger logging.Logger
}

// Runner drives tasks against one model. Public methods are safe for
// concurrent use across distinct tasks.
type Runner struct {
	llm          model.Model
	manager      *task.Manager
	tools        *tool.Registry
	name         string
	instructions string
	maxToolCalls int
	stream       bool
	logger       logging.Logger
}

// New constructs a Runner over a model and task store with optional overrides.
func New(llm model.Model, store core.TaskStore, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Name:         "agent",
		Tools:        tool.NewRegistry(),
		MaxToolCalls: 10,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Manager == nil {
		opts.Manager = task.NewManager(store, func(o *task.Options) {
			o.Name = opts.Name
			o.Logger = opts.Logger
		})
	}
	return &Runner{
		llm:          llm,
		manager:      opts.Manager,
		tools:        opts.Tools,
		name:         opts.Name,
		instructions: opts.Instructions,
		maxToolCalls: opts.MaxToolCalls,
		stream:       opts.Stream,
		logger:       opts.Logger,
	}
}

// Execute runs one task turn to its resting state: completed, failed, or
// input_required awaiting the caller. All progress is pushed through the
// sink in emission order. Validation failures surface synchronously; model
// failures are converted via the lifecycle and returned wrapped in
// ErrUpstreamFailure.
func (r *Runner) Execute(ctx context.Context, req Request, sink core.EventSink) (*core.Task, error) {
	rel := relay.New(sink, func(o *relay.Options) { o.Logger = r.logger })

	lc, err := r.manager.Start(req.Query, req.ContextID, req.TaskID, rel)
	if err != nil {
		return nil, err
	}

	messages := []model.Message{{Role: "user", Text: req.Query}}
	toolDefs := r.toolDefinitions()

	for calls := 0; ; {
		final, err := r.generate(ctx, lc, messages, toolDefs)
		if err != nil {
			return lc.Task(), lc.Fail(fmt.Errorf("%w: %v", ErrUpstreamFailure, err))
		}

		if len(final.ToolCalls) == 0 {
			if _, err := lc.Advance(final.Text); err != nil {
				return lc.Task(), err
			}
			return lc.Task(), nil
		}

		calls += len(final.ToolCalls)
		if calls > r.maxToolCalls {
			return lc.Task(), lc.Fail(fmt.Errorf("tool call budget of %d exceeded", r.maxToolCalls))
		}

		results := r.executeToolCalls(ctx, final.ToolCalls)
		messages = append(messages,
			model.Message{Role: "assistant", Text: final.Text, ToolCalls: final.ToolCalls},
			model.Message{Role: "tool", ToolResults: results},
		)
	}
}

// Cancel rejects mid-flight cancellation. The lifecycle does not support it;
// an explicit request must be refused rather than silently accepted.
func (r *Runner) Cancel(taskID string) error {
	r.logger.Info("cancellation rejected", "task_id", taskID)
	return fmt.Errorf("%w: task cancellation", core.ErrUnsupportedOperation)
}

// generate consumes one model turn, narrating partial chunks through the
// lifecycle and returning the final response.
func (r *Runner) generate(
	ctx context.Context,
	lc *task.Lifecycle,
	messages []model.Message,
	toolDefs []model.ToolDefinition,
) (*model.Response, error) {
	respCh, errCh := r.llm.Generate(ctx, model.Request{
		Instructions: r.instructions,
		Messages:     messages,
		Tools:        toolDefs,
		Stream:       r.stream,
	})

	var final *model.Response
	for resp := range respCh {
		if resp.Partial {
			if _, err := lc.Advance(r.name + ": " + progressPlaceholder); err != nil {
				return nil, err
			}
			continue
		}
		f := resp
		final = &f
	}

	if err := <-errCh; err != nil {
		return nil, err
	}
	if final == nil {
		return nil, fmt.Errorf("model produced no final response")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return final, nil
}

// executeToolCalls runs each surfaced call through the registry in order.
// Failures become error results handed back to the model; they do not fail
// the task, the model decides how to react.
func (r *Runner) executeToolCalls(ctx context.Context, calls []model.ToolCall) []model.ToolResult {
	results := make([]model.ToolResult, 0, len(calls))
	for _, call := range calls {
		results = append(results, r.executeToolCall(ctx, call))
	}
	return results
}

func (r *Runner) executeToolCall(ctx context.Context, call model.ToolCall) model.ToolResult {
	t, ok := r.tools.Get(call.Name)
	if !ok {
		r.logger.Warn("unknown tool requested", "tool", call.Name)
		return model.ToolResult{
			CallID:  call.ID,
			Name:    call.Name,
			Content: fmt.Sprintf("unknown tool %q", call.Name),
			IsError: true,
		}
	}

	args, err := decodeArgs(call.Arguments)
	if err != nil {
		return model.ToolResult{
			CallID:  call.ID,
			Name:    call.Name,
			Content: fmt.Sprintf("invalid tool arguments: %v", err),
			IsError: true,
		}
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		return model.ToolResult{CallID: call.ID, Name: call.Name, Content: err.Error(), IsError: true}
	}
	return model.ToolResult{CallID: call.ID, Name: call.Name, Content: stringifyResult(result)}
}

// decodeArgs parses the JSON argument string surfaced with a tool call.
// An empty string means the call takes no arguments.
func decodeArgs(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	return args, nil
}

// stringifyResult renders a tool result for the model. Strings pass through
// unchanged, everything else is JSON encoded.
func stringifyResult(result any) string {
	if s, ok := result.(string); ok {
		return s
	}
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(b)
}

func (r *Runner) toolDefinitions() []model.ToolDefinition {
	tools := r.tools.All()
	defs := make([]model.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}
