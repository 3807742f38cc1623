package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/a2acal/calendar"
	"github.com/hupe1980/a2acal/core"
	"github.com/hupe1980/a2acal/internal/testutil"
	"github.com/hupe1980/a2acal/model"
	"github.com/hupe1980/a2acal/task"
	"github.com/hupe1980/a2acal/tool"
)

// failingModel errors on every generation attempt.
type failingModel struct{}

func (failingModel) Generate(_ context.Context, _ model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response)
	errCh := make(chan error, 1)
	close(out)
	errCh <- errors.New("provider unavailable")
	close(errCh)
	return out, errCh
}

func (failingModel) Info() model.Info { return model.Info{Name: "failing", Provider: "mock"} }

func bookingRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	svc := calendar.NewBookingService(calendar.NewInMemoryStore())
	return tool.NewRegistry(tool.NewRequestMeetingTool(svc))
}

func TestRunner_BookingFlow(t *testing.T) {
	llm := model.NewMockModel("scripted")
	llm.AddScript("book alice at 10",
		model.Response{
			FinishReason: "tool_calls",
			ToolCalls: []model.ToolCall{{
				ID:        "c1",
				Name:      "request_meeting",
				Arguments: `{"requester":"alice","start":"2024-01-01T10:00:00","duration":60,"message":"sync"}`,
			}},
		},
	)
	llm.AddScript("SUCCESS",
		model.Response{Text: `{"status": "success", "message": "Meeting booked."}`, FinishReason: "stop"},
	)

	r := New(llm, task.NewInMemoryStore(), func(o *Options) {
		o.Tools = bookingRegistry(t)
	})

	sink := &testutil.RecordingSink{}
	got, err := r.Execute(context.Background(), Request{Query: "book alice at 10", ContextID: "c1"}, sink)
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateCompleted, got.State)

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, core.EventKindStatus, events[0].Kind)
	assert.Equal(t, core.EventKindArtifact, events[1].Kind)
	assert.True(t, events[1].Final)

	dp, ok := events[1].Content.(core.DataPart)
	require.True(t, ok)
	assert.Equal(t, "Meeting booked.", dp.Data["message"])
}

func TestRunner_PartialChunksNarrateProgress(t *testing.T) {
	llm := model.NewMockModel("scripted")
	llm.AddScript("hello",
		model.Response{Partial: true, Text: "thinking"},
		model.Response{Partial: true, Text: " harder"},
		model.Response{Text: "All done.", FinishReason: "stop"},
	)

	r := New(llm, task.NewInMemoryStore(), func(o *Options) {
		o.Name = "booker"
	})

	sink := &testutil.RecordingSink{}
	got, err := r.Execute(context.Background(), Request{Query: "hello", ContextID: "c1"}, sink)
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateCompleted, got.State)

	events := sink.Events()
	require.Len(t, events, 4)
	start, ok := events[0].Content.(core.TextPart)
	require.True(t, ok)
	assert.Equal(t, "booker: Starting task...", start.Text)
	for _, ev := range events[1:3] {
		tp, ok := ev.Content.(core.TextPart)
		require.True(t, ok)
		assert.Equal(t, "booker: Processing Request...", tp.Text)
		assert.False(t, ev.Final)
	}
	assert.Equal(t, core.EventKindArtifact, events[3].Kind)
}

func TestRunner_InputRequired(t *testing.T) {
	llm := model.NewMockModel("scripted")
	llm.AddScript("book something",
		model.Response{Text: `{"status": "input_required", "question": "When?"}`, FinishReason: "stop"},
	)

	r := New(llm, task.NewInMemoryStore())

	sink := &testutil.RecordingSink{}
	got, err := r.Execute(context.Background(), Request{Query: "book something", ContextID: "c1"}, sink)
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateInputRequired, got.State)

	events := sink.Events()
	require.Len(t, events, 2)
	assert.True(t, events[1].RequireUserInput())
	assert.Equal(t, core.TextPart{Text: "When?"}, events[1].Content)
}

func TestRunner_EmptyQueryFailsSynchronously(t *testing.T) {
	r := New(model.NewMockModel("scripted"), task.NewInMemoryStore())

	sink := &testutil.RecordingSink{}
	_, err := r.Execute(context.Background(), Request{Query: "", ContextID: "c1"}, sink)
	require.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, sink.Events())
}

func TestRunner_UpstreamFailure(t *testing.T) {
	store := task.NewInMemoryStore()
	r := New(failingModel{}, store)

	sink := &testutil.RecordingSink{}
	got, err := r.Execute(context.Background(), Request{Query: "hello", ContextID: "c1"}, sink)
	require.ErrorIs(t, err, ErrUpstreamFailure)
	assert.Equal(t, core.TaskStateFailed, got.State)

	events := sink.Events()
	require.Len(t, events, 2)
	final := events[1]
	assert.True(t, final.Final)
	assert.Equal(t, core.TaskStateFailed, final.State)
	tp, ok := final.Content.(core.TextPart)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(tp.Text, "Error: "))
	assert.Contains(t, tp.Text, "provider unavailable")

	saved, err := store.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateFailed, saved.State)
}

func TestRunner_ToolCallBudget(t *testing.T) {
	llm := model.NewMockModel("scripted")
	call := model.Response{
		FinishReason: "tool_calls",
		ToolCalls: []model.ToolCall{{
			ID:        "c1",
			Name:      "request_meeting",
			Arguments: `{"requester":"alice","start":"2024-01-01T10:00:00","duration":60,"message":"sync"}`,
		}},
	}
	// Every turn requests another tool call; the budget must stop the loop.
	llm.AddScript("loop forever", call)
	llm.AddScript("SUCCESS", call)
	llm.AddScript("CONFLICT", call)

	r := New(llm, task.NewInMemoryStore(), func(o *Options) {
		o.Tools = bookingRegistry(t)
		o.MaxToolCalls = 2
	})

	sink := &testutil.RecordingSink{}
	got, err := r.Execute(context.Background(), Request{Query: "loop forever", ContextID: "c1"}, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
	assert.Equal(t, core.TaskStateFailed, got.State)
}

func TestRunner_UnknownToolReportedToModel(t *testing.T) {
	llm := model.NewMockModel("scripted")
	llm.AddScript("use gadget",
		model.Response{
			FinishReason: "tool_calls",
			ToolCalls:    []model.ToolCall{{ID: "c1", Name: "gadget", Arguments: `{}`}},
		},
	)
	llm.AddScript(`unknown tool "gadget"`,
		model.Response{Text: "I cannot do that.", FinishReason: "stop"},
	)

	r := New(llm, task.NewInMemoryStore())

	sink := &testutil.RecordingSink{}
	got, err := r.Execute(context.Background(), Request{Query: "use gadget", ContextID: "c1"}, sink)
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateCompleted, got.State)

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, core.TextPart{Text: "I cannot do that."}, events[1].Content)
}

func TestRunner_CancelUnsupported(t *testing.T) {
	r := New(model.NewMockModel("scripted"), task.NewInMemoryStore())
	require.ErrorIs(t, r.Cancel("t1"), core.ErrUnsupportedOperation)
}
