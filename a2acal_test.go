package a2acal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/a2acal/calendar"
	"github.com/hupe1980/a2acal/config"
	"github.com/hupe1980/a2acal/core"
	"github.com/hupe1980/a2acal/model"
)

func scriptedBooker(t *testing.T) *model.MockModel {
	t.Helper()
	llm := model.NewMockModel("scripted")
	llm.AddScript("book alice",
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
		model.Response{Text: `{"status": "success", "message": "Booked."}`, FinishReason: "stop"},
	)
	llm.AddScript("book bob",
		model.Response{
			FinishReason: "tool_calls",
			ToolCalls: []model.ToolCall{{
				ID:        "c2",
				Name:      "request_meeting",
				Arguments: `{"requester":"bob","start":"2024-01-01T10:30:00","duration":60,"message":"overlap"}`,
			}},
		},
	)
	llm.AddScript("CONFLICT",
		model.Response{Text: `{"status": "input_required", "question": "That slot is taken. Another time?"}`, FinishReason: "stop"},
	)
	return llm
}

func TestAgent_SubmitSync(t *testing.T) {
	store := calendar.NewInMemoryStore()
	agent := New(scriptedBooker(t), func(o *Options) {
		o.CalendarStore = store
	})

	got, events, err := agent.SubmitSync(context.Background(), "book alice", "ctx-alice", "")
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateCompleted, got.State)
	require.Len(t, events, 2)
	assert.Equal(t, core.EventKindArtifact, events[1].Kind)

	cal, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cal.Events, 1)
	assert.Equal(t, "alice", cal.Events[0].Requester)
}

func TestAgent_ConflictBecomesQuestion(t *testing.T) {
	store := calendar.NewInMemoryStore()
	agent := New(scriptedBooker(t), func(o *Options) {
		o.CalendarStore = store
	})

	_, _, err := agent.SubmitSync(context.Background(), "book alice", "ctx-alice", "")
	require.NoError(t, err)

	got, events, err := agent.SubmitSync(context.Background(), "book bob", "ctx-bob", "")
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateInputRequired, got.State)
	require.Len(t, events, 2)
	assert.True(t, events[1].RequireUserInput())

	// The rejected booking never reached the calendar.
	cal, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, cal.Events, 1)
}

func TestAgent_CancelUnsupported(t *testing.T) {
	agent := New(model.NewMockModel("scripted"))
	require.ErrorIs(t, agent.Cancel("t1"), core.ErrUnsupportedOperation)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Calendar.Path = "calendar.json"

	agent, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.NotNil(t, agent.Booking())

	cfg.Model.Provider = "unknown"
	_, err = NewFromConfig(cfg)
	assert.Error(t, err)
}
